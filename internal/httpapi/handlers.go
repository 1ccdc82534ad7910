package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cilok/internal/geo"
	"cilok/internal/resolve"
)

const requestTimeout = 90 * time.Second

type resolveHandler struct {
	loop *resolve.Loop
}

type resolveReq struct {
	Query string `json:"query"`
}

// Resolve handles POST /api/resolve.
func (h *resolveHandler) Resolve(c *gin.Context) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	outcome, err := h.loop.Resolve(ctx, req.Query)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, outcome)
}

type geoHandler struct {
	provider geo.Provider
}

type geocodeResponse struct {
	Coordinates geo.Coordinates `json:"coordinates"`
	Address     string          `json:"address"`
}

// Geocode handles GET /api/geocode?q=.
func (h *geoHandler) Geocode(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, http.StatusBadRequest, "missing q")
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	coords, address, err := h.provider.Geocode(ctx, q)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, geocodeResponse{Coordinates: coords, Address: address})
}

// Reverse handles GET /api/reverse?lat=&lng=.
func (h *geoHandler) Reverse(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	place, err := h.provider.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, place)
}

// Nearby handles GET /api/nearby?lat=&lng=&category=.
func (h *geoHandler) Nearby(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	category := strings.TrimSpace(c.Query("category"))

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	places, err := h.provider.NearbySearch(ctx, lat, lng, category)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": places})
}

func parseLatLng(c *gin.Context) (lat, lng float64, ok bool) {
	var err error
	if lat, err = strconv.ParseFloat(c.Query("lat"), 64); err != nil {
		writeError(c, http.StatusBadRequest, "invalid lat")
		return 0, 0, false
	}
	if lng, err = strconv.ParseFloat(c.Query("lng"), 64); err != nil {
		writeError(c, http.StatusBadRequest, "invalid lng")
		return 0, 0, false
	}
	return lat, lng, true
}

func contextWithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}
