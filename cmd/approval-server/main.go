/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for ApprovalHub server
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/cmd/approval-server/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/neurondb/ApprovalHub/internal/api"
	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/config"
	"github.com/neurondb/ApprovalHub/internal/db"
	"github.com/neurondb/ApprovalHub/internal/enrich"
	"github.com/neurondb/ApprovalHub/internal/inference"
	"github.com/neurondb/ApprovalHub/internal/metrics"
	"github.com/neurondb/ApprovalHub/internal/notify"
	"github.com/neurondb/ApprovalHub/internal/search"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion      = flag.Bool("version", false, "Show version information")
		showVersionShort = flag.Bool("v", false, "Show version information (short)")
		configPath       = flag.String("c", "", "Path to configuration file")
		configPathLong   = flag.String("config", "", "Path to configuration file")
		showHelp         = flag.Bool("help", false, "Show help message")
		showHelpShort    = flag.Bool("h", false, "Show help message (short)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "ApprovalHub Server - Approval request lifecycle service\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    Start server with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -c config.yaml     Start server with custom config file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version          Show version information\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --help             Show this help message\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nConfiguration:\n")
		fmt.Fprintf(os.Stderr, "  Configuration can be provided via:\n")
		fmt.Fprintf(os.Stderr, "  - Command line flag: -c or --config\n")
		fmt.Fprintf(os.Stderr, "  - Environment variable: CONFIG_PATH\n")
		fmt.Fprintf(os.Stderr, "  - Environment variables (see config package for details)\n")
	}
	flag.Parse()

	/* Handle version flag */
	if *showVersion || *showVersionShort {
		fmt.Printf("approval-server version %s\n", version)
		fmt.Printf("Build date: %s\n", buildDate)
		fmt.Printf("Git commit: %s\n", gitCommit)
		os.Exit(0)
	}

	/* Handle help flag */
	if *showHelp || *showHelpShort {
		flag.Usage()
		os.Exit(0)
	}

	/* Load .env if present, ignore if missing */
	_ = godotenv.Load()

	/* Load configuration */
	cfg := config.DefaultConfig()

	/* Determine config path - command line flag takes precedence over environment variable */
	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = *configPathLong
	}
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}

	if cfgPath != "" {
		var err error
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: Failed to load config: %v\n", err)
			os.Exit(1)
		}
	} else {
		/* Load from environment variables if no config file */
		config.LoadFromEnv(cfg)
	}

	/* Initialize logging */
	metrics.InitLogging(cfg.Logging.Level, cfg.Logging.Format)

	/* Connect to database */
	database, err := db.NewDBWithRetry(cfg.Database.ConnString(), db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}, 5, 2*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to connect to database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Connection string: host=%s port=%d user=%s dbname=%s\n",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Database)
		os.Exit(1)
	}
	defer database.Close()

	/* Run migrations */
	if err := db.RunMigrations(database.DB); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Migration failed: %v\n", err)
		os.Exit(1)
	}

	/* Initialize components */
	store := db.NewStore(database.DB)
	store.SetConnInfoFunc(database.GetConnInfoString)

	inferenceClient := inference.NewClient(inference.Config{
		BaseURL:         cfg.Inference.URL,
		APIKey:          cfg.Inference.APIKey,
		EmbeddingModel:  cfg.Inference.EmbeddingModel,
		CompletionModel: cfg.Inference.CompletionModel,
		Timeout:         cfg.Inference.Timeout,
		MaxTokens:       cfg.Inference.MaxTokens,
		Temperature:     cfg.Inference.Temperature,
	})

	/* Start enrichment pipeline */
	pipeline := enrich.NewPipeline(store, inferenceClient,
		enrich.WithWorkers(cfg.Enrichment.Workers),
		enrich.WithQueueSize(cfg.Enrichment.QueueSize),
		enrich.WithTaskTimeout(cfg.Inference.Timeout),
	)
	pipeline.Start()
	defer pipeline.Stop()

	/* Wire notifications */
	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Notifications.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notifications.WebhookURL, cfg.Notifications.Timeout)
	}

	coordinator := approval.NewCoordinator(store, pipeline, notifier)
	engine := search.NewEngine(store, inferenceClient)

	/* Initialize API */
	handlers := api.NewHandlers(coordinator, engine, database, version)

	/* Setup router */
	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware)
	router.Use(api.CORSMiddleware)
	router.Use(api.LoggingMiddleware)
	router.Use(api.RecoveryMiddleware)

	/* API routes */
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/approval-requests", handlers.CreateRequest).Methods("POST")
	apiRouter.HandleFunc("/approval-requests", handlers.ListRequests).Methods("GET")
	apiRouter.HandleFunc("/approval-requests/{id}", handlers.GetRequest).Methods("GET")
	apiRouter.HandleFunc("/approval-requests/{id}/decide", handlers.DecideRequest).Methods("POST")
	apiRouter.HandleFunc("/approval-requests/{id}/approve", handlers.ApproveRequest).Methods("POST")
	apiRouter.HandleFunc("/approval-requests/{id}/reject", handlers.RejectRequest).Methods("POST")
	apiRouter.HandleFunc("/approval-requests/search", handlers.SemanticSearch).Methods("POST")

	/* Health check */
	router.HandleFunc("/health", handlers.Health).Methods("GET")

	/* Metrics endpoint */
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	/* Report pool stats to metrics periodically */
	poolStatsDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				open, idle, inUse := database.GetPoolStats()
				metrics.RecordDBPoolStats(cfg.Database.Database, open, idle, inUse)
			case <-poolStatsDone:
				return
			}
		}
	}()
	defer close(poolStatsDone)

	/* Start server */
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	/* Graceful shutdown */
	go func() {
		fmt.Printf("Server starting on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "FATAL: Server failed to start on %s: %v\n", addr, err)
			os.Exit(1)
		}
	}()

	/* Wait for interrupt signal */
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited")
}
