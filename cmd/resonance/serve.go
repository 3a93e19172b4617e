package main

import (
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/formianlabs/resonance/internal/config"
	"github.com/formianlabs/resonance/internal/conversation"
	"github.com/formianlabs/resonance/internal/feedback"
	"github.com/formianlabs/resonance/internal/metrics"
	"github.com/formianlabs/resonance/internal/resonance"
	"github.com/formianlabs/resonance/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start an HTTP server exposing /api/analyze, /api/feedback, /health and /metrics.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := log.New(os.Stdout, "[resonance] ", log.LstdFlags)

	cfg := config.Load()
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	logger.Println("Configuration loaded")

	var store conversation.Store
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = conversation.NewRedisStore(client, cfg.Redis.KeyPrefix)
		logger.Printf("Conversation store: redis (%s)", cfg.Redis.Addr)
	} else {
		store = conversation.NewMemoryStore()
		logger.Println("Conversation store: memory")
	}

	recorder, err := feedback.NewRecorder(cfg.Feedback.Directory, cfg.Feedback.RollingFile)
	if err != nil {
		return fmt.Errorf("failed to open feedback recorder: %w", err)
	}
	defer recorder.Close()

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	engine := resonance.NewEngine(store, logger)
	srv := server.New(cfg, engine, recorder, logger)

	logger.Println("=================================")
	logger.Println("Resonance Service Starting")
	logger.Println("=================================")
	return srv.Start()
}
