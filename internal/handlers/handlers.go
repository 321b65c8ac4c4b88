package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tidewire/tidewire/internal/services"
)

type Handler struct {
	runtime *services.Runtime
	journal *services.Journal
}

// New returns the API handler. journal is nil when the run journal is
// disabled; the /runs endpoints then answer 503.
func New(runtime *services.Runtime, journal *services.Journal) *Handler {
	return &Handler{
		runtime: runtime,
		journal: journal,
	}
}

// RegisterHandlers mounts every endpoint on router.
func RegisterHandlers(router *gin.RouterGroup, h *Handler) {
	router.GET("/health", h.GetHealth)
	router.GET("/executors", h.ListExecutors)
	router.GET("/workers", h.ListWorkers)
	router.GET("/workers/:name", h.GetWorker)
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/summary", h.GetRunSummary)
	router.GET("/runs/:id", h.GetRun)
}
