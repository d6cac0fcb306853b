package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/service"
)

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, info Info, leadSvc service.LeadService) {
	h := NewHealthHandler(repo, info)

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewLeadHandler(leadSvc).Register(api)
	}
}

// NewEngine builds a gin engine with recovery, access logging and CORS, then mounts the routes.
func NewEngine(logger zerolog.Logger, origins []string, repo Pinger, info Info, leadSvc service.LeadService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), CORS(origins))
	Register(r, repo, info, leadSvc)
	return r
}
