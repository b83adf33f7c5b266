// Package server wires the HTTP control surface together.
package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"stockfeed/internal/api"
	"stockfeed/internal/config"
	"stockfeed/internal/store"
)

// Server is the local HTTP server.
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer builds the server with its store and API handler.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	outDir, err := config.EnsureOutputFolder(cfg)
	if err != nil {
		log.Fatalf("prepare output folder: %v", err)
	}
	dbPath := filepath.Join(outDir, "stockfeed.db")

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("initialize database: %v", err)
	}

	s := &Server{
		router: gin.Default(),
		store:  st,
		api:    api.NewHandler(st, cfg),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the server's resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// indexPage is the minimal landing page; the control surface is API-first.
var indexPage = []byte(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>stockfeed</title></head>
<body>
<h1>stockfeed</h1>
<p>Feed pipeline control API is mounted under <code>/api</code>.</p>
<ul>
<li><code>GET  /api/status</code></li>
<li><code>GET  /api/config</code> / <code>PATCH /api/config</code></li>
<li><code>POST /api/process</code> (SSE progress stream)</li>
<li><code>GET  /api/runs</code> / <code>GET /api/runs/:id</code></li>
<li><code>POST /api/runs/:id/uploads/retry</code></li>
</ul>
</body>
</html>
`)
