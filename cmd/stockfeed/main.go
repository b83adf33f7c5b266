package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"stockfeed/internal/config"
	"stockfeed/internal/pipeline"
	"stockfeed/internal/server"
	"stockfeed/internal/store"
	"stockfeed/internal/util"
)

var (
	port       = flag.Int("port", 0, "server port (overrides config.toml)")
	devMode    = flag.Bool("dev", false, "development mode")
	once       = flag.Bool("once", false, "run the pipeline once and exit, no server")
	skipUpload = flag.Bool("skip-upload", false, "with -once: skip the FTP uploads")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  stockfeed - marketplace feed builder")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("load config failed, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	if *once {
		os.Exit(runOnce(cfg))
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("serving on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("could not open a browser, visit %s\n", url)
		}
	} else {
		fmt.Printf("dev mode: visit %s\n", url)
	}

	fmt.Println("\npress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
	if err := srv.Close(); err != nil {
		log.Printf("close failed: %v", err)
	}
}

// runOnce executes a single headless pipeline run.
func runOnce(cfg *config.AppConfig) int {
	outDir, err := config.EnsureOutputFolder(cfg)
	if err != nil {
		log.Printf("prepare output folder: %v", err)
		return 1
	}

	st, err := store.New(filepath.Join(outDir, "stockfeed.db"))
	if err != nil {
		log.Printf("initialize database: %v", err)
		return 1
	}
	defer st.Close()

	runner := pipeline.NewRunner(st)
	progress := runner.Run(pipeline.Options{
		Config:     cfg,
		SkipUpload: *skipUpload,
	})

	failed := false
	for event := range progress {
		fmt.Printf("[%s] %s\n", event.Type, event.Message)
		if event.Type == "error" {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}
