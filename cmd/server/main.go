package main

import (
	"context"
	"log"

	"github.com/anhngq/blogary/internal/repositories"
	"github.com/anhngq/blogary/internal/router"
	"github.com/anhngq/blogary/internal/scheduler"
	"github.com/anhngq/blogary/pkg/config"
	"github.com/anhngq/blogary/pkg/storage"
	"github.com/anhngq/blogary/pkg/token"
	"github.com/anhngq/blogary/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Object storage is optional; media routes are disabled without a bucket
	var uploader *storage.S3Uploader
	if cfg.S3Bucket != "" {
		uploader, err = storage.NewS3Uploader(context.Background(), storage.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, cfg, tokens, uploader)

	// Validator
	e.Validator = validators.NewValidator()

	// Periodic jobs: scheduled publishing and refresh token cleanup
	jobs := scheduler.NewScheduler(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresSeriesRepository(db),
		repositories.NewPostgresRefreshTokenRepository(db),
	)
	if err := jobs.RegisterJobs(); err != nil {
		log.Fatalf("Failed to register periodic jobs: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
