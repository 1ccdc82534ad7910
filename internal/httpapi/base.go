// Package httpapi exposes the resolver and geocoding providers over a
// small JSON API. The endpoints mirror what the interactive session can
// do, minus the rendering.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cilok/internal/ai"
	"cilok/internal/geo"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, geo.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, geo.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ai.ErrService):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
