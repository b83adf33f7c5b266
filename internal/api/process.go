package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockfeed/internal/pipeline"
)

// ProcessRequest carries the per-run overrides.
type ProcessRequest struct {
	SkipUpload bool `json:"skipUpload"`
}

// Process starts a pipeline run and streams its progress as SSE until it
// finishes. Only one run may be in flight at a time.
// POST /api/process
func (h *Handler) Process(c *gin.Context) {
	var req ProcessRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	if !h.tryStartRun() {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	defer h.endRun()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	progress := h.runner.Run(pipeline.Options{
		Config:     h.configSnapshot(),
		SkipUpload: req.SkipUpload,
	})

	for event := range progress {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}
}
