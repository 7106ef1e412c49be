package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/infact-news/infact/internal/api/handlers"
	"github.com/infact-news/infact/internal/images"
	"github.com/infact-news/infact/internal/jobs"
	"github.com/infact-news/infact/internal/mlclient"
	"github.com/infact-news/infact/internal/newsapi"
	"github.com/infact-news/infact/internal/repository"
	"github.com/infact-news/infact/internal/rss"
	"github.com/infact-news/infact/internal/server"
	"github.com/infact-news/infact/internal/service"
	"github.com/infact-news/infact/internal/telemetry"
)

const cleanupInterval = 24 * time.Hour

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the infact API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-cleanup", false, "Disable the periodic cluster cleanup worker")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	cfg, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)
	log.Println("connected to document store")

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Printf("index creation failed (continuing): %v", err)
	}

	articleRepo := repository.NewArticleRepository(store.Articles)
	clusterRepo := repository.NewClusterRepository(store.Clusters)
	streamSource := clusterStreamSource{repo: clusterRepo}

	articleSvc := service.NewArticleService(articleRepo)
	clusterSvc := service.NewClusterService(clusterRepo, articleRepo, articleRepo)
	ingestSvc := service.NewIngestService(articleRepo)
	trendingSvc := service.NewTrendingService(streamSource)
	digestSvc := service.NewDigestService(streamSource)

	var imageFinder service.ImageFinder
	if cfg.HasUnsplash() {
		imageFinder = images.NewService(cfg.UnsplashAccessKey)
		log.Println("image enrichment enabled")
	}
	processSvc := service.NewProcessService(mlclient.NewClient(cfg.MLServiceURL), imageFinder)

	var headlines handlers.HeadlineFetcher
	if cfg.HasNewsAPI() {
		headlines = newsapi.NewClient(cfg.NewsAPIKey)
		log.Println("news-api ingestion enabled")
	}

	routerCfg := server.RouterConfig{
		HealthHandler:    handlers.NewHealthHandler(store),
		ArticleHandler:   handlers.NewArticleHandler(articleSvc),
		ClusterHandler:   handlers.NewClusterHandler(clusterSvc),
		AnalyticsHandler: handlers.NewAnalyticsHandler(trendingSvc, digestSvc),
		IngestHandler:    handlers.NewIngestHandler(ingestSvc, rss.NewFetcher(), headlines, cfg.RSSFeeds, cfg.RSSWindowDays),
		ProcessHandler:   handlers.NewProcessHandler(processSvc),
	}

	router := server.NewRouter(routerCfg)

	var cleanupWorker *jobs.Worker
	noCleanup, _ := cmd.Flags().GetBool("no-cleanup")
	if !noCleanup {
		cleanupWorker = jobs.NewWorker(jobs.NewCleanupTask(clusterSvc, cfg.CleanupMaxAgeDays), cleanupInterval)
		go cleanupWorker.Start(ctx)
		log.Println("cleanup worker started")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if cleanupWorker != nil {
		cleanupWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
