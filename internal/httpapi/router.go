package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cilok/internal/geo"
	"cilok/internal/resolve"
)

// Deps carries the already-wired collaborators for the API.
type Deps struct {
	Loop     *resolve.Loop
	Geo      geo.Provider
	Backend  string
	Provider string
	Logger   *slog.Logger
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(deps Deps) http.Handler {
	engine := gin.New()
	engine.Use(recovery(deps.Logger), logging(deps.Logger))

	rh := &resolveHandler{loop: deps.Loop}
	gh := &geoHandler{provider: deps.Geo}

	api := engine.Group("/api")
	api.POST("/resolve", rh.Resolve)
	api.GET("/geocode", gh.Geocode)
	api.GET("/reverse", gh.Reverse)
	api.GET("/nearby", gh.Nearby)

	engine.GET("/health", func(c *gin.Context) {
		writeJSON(c, http.StatusOK, gin.H{
			"status":   "ok",
			"backend":  deps.Backend,
			"provider": deps.Provider,
		})
	})

	return engine
}
