// Package api exposes the local control surface for the feed pipeline.
package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"stockfeed/internal/config"
	"stockfeed/internal/pipeline"
	"stockfeed/internal/store"
)

// Handler holds the API state.
type Handler struct {
	store  *store.Store
	runner *pipeline.Runner

	mu      sync.Mutex
	cfg     *config.AppConfig
	running bool
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:  st,
		runner: pipeline.NewRunner(st),
		cfg:    cfg,
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system status
	router.GET("/status", h.GetStatus)

	// configuration
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// pipeline runs
	router.POST("/process", h.Process)
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)
	router.POST("/runs/:id/uploads/retry", h.RetryUploads)
}

// configSnapshot returns a copy of the current config for a run, so a
// concurrent PATCH cannot race the pipeline mid-flight.
func (h *Handler) configSnapshot() *config.AppConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := *h.cfg
	return &cp
}

// tryStartRun flips the running flag; false means a run is in flight.
func (h *Handler) tryStartRun() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return false
	}
	h.running = true
	return true
}

func (h *Handler) endRun() {
	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
}
