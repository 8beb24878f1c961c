package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/raycaster/config"
	"github.com/lixenwraith/raycaster/stream"
)

var (
	configFlag = flag.String("config", "", "TOML config file, built-in defaults when empty")
	envFlag    = flag.String("env", ".env", "dotenv file with RAYCAST_* overrides, skipped when missing")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(*envFlag); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("env: %v", err)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		log.Fatalf("env: %v", err)
	}
	keymap, err := cfg.BuildKeymap()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// Fail at startup rather than on the first connection
	if _, err := cfg.NewLoop(); err != nil {
		log.Fatalf("config: %v", err)
	}

	streamer, err := stream.NewServer(stream.Options{
		NewLoop:        cfg.NewLoop,
		Keymap:         keymap,
		Period:         cfg.FramePeriod(),
		AllowedOrigins: cfg.Serve.AllowedOrigins,
		MaxSessions:    cfg.Serve.MaxSessions,
	})
	if err != nil {
		log.Fatalf("stream: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           streamer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		streamer.Close()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	w, h, _ := cfg.Size()
	log.Printf("Server started on %s (%dx%d, %v per frame)", cfg.Serve.Addr, w, h, cfg.FramePeriod())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("ListenAndServe:", err)
	}
}
