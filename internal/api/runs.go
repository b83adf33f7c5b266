package api

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockfeed/internal/config"
	"stockfeed/internal/feed"
	"stockfeed/internal/upload"
)

// ListRuns returns the most recent runs, newest first.
// GET /api/runs?limit=N
func (h *Handler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list runs failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun returns one run with its upload attempts.
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	run, uploads, err := h.store.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get run failed"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "uploads": uploads})
}

// RetryUploads re-pushes the targets whose last attempt for this run
// failed, using the feed files still in the output folder.
// POST /api/runs/:id/uploads/retry
func (h *Handler) RetryUploads(c *gin.Context) {
	runID := c.Param("id")
	run, uploads, err := h.store.GetRun(runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get run failed"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	// Last attempt per target decides whether a retry is due.
	lastFailed := make(map[string]bool)
	for _, u := range uploads {
		lastFailed[u.Target] = u.Error != ""
	}

	cfg := h.configSnapshot()
	outDir, err := config.EnsureOutputFolder(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "output folder unavailable"})
		return
	}

	var results []upload.Result
	for _, t := range feedTargets(cfg, outDir) {
		if !lastFailed[t.name] {
			continue
		}
		res := upload.Push(t.target, t.path)
		if err := h.store.RecordUpload(runID, t.name, res); err != nil {
			log.Printf("api: record %s upload: %v", t.name, err)
		}
		results = append(results, res)
	}

	if len(results) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "nothing to retry", "uploads": []upload.Result{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": results})
}

type feedTarget struct {
	name   string
	target upload.Target
	path   string
}

func feedTargets(cfg *config.AppConfig, outDir string) []feedTarget {
	return []feedTarget{
		{
			name: "tulero",
			target: upload.Target{
				Host:     cfg.Tulero.FTP.Host,
				User:     cfg.Tulero.FTP.User,
				Password: cfg.Tulero.FTP.Password,
				Dir:      cfg.Tulero.FTP.Dir,
			},
			path: filepath.Join(outDir, feed.TuleroFileName),
		},
		{
			name: "tyre24",
			target: upload.Target{
				Host:     cfg.Tyre24.FTP.Host,
				User:     cfg.Tyre24.FTP.User,
				Password: cfg.Tyre24.FTP.Password,
				Dir:      cfg.Tyre24.FTP.Dir,
			},
			path: filepath.Join(outDir, feed.Tyre24FileName),
		},
	}
}
