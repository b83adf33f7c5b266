package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"stockfeed/internal/config"
	"stockfeed/internal/store"
)

// StatusResponse summarizes the application state for the UI.
type StatusResponse struct {
	Running        bool             `json:"running"`
	ArticlesReady  bool             `json:"articlesReady"`
	WarehouseReady bool             `json:"warehouseReady"`
	LastRun        *store.RunRecord `json:"lastRun,omitempty"`
}

// GetStatus reports whether a run is in flight, whether the source files
// are in place, and the most recent run.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	h.mu.Lock()
	running := h.running
	articles := h.cfg.Inputs.ArticlesFile
	warehouse := h.cfg.Inputs.WarehouseFile
	h.mu.Unlock()

	resp := StatusResponse{
		Running:        running,
		ArticlesReady:  fileExists(config.ResolvePath(articles)),
		WarehouseReady: fileExists(config.ResolvePath(warehouse)),
	}

	if runs, err := h.store.ListRuns(1); err == nil && len(runs) > 0 {
		resp.LastRun = &runs[0]
	}

	c.JSON(http.StatusOK, resp)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
