package router

import (
	"log"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/handlers"
	"github.com/anhngq/blogary/internal/middleware"
	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/internal/repositories"
	"github.com/anhngq/blogary/pkg/config"
	"github.com/anhngq/blogary/pkg/storage"
	"github.com/anhngq/blogary/pkg/token"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, tokens *token.Manager, uploader *storage.S3Uploader) {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Post{},
		&models.Series{},
		&models.Tag{},
		&models.Comment{},
		&models.Like{},
		&models.Reaction{},
		&models.Bookmark{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	refreshTokenRepo := repositories.NewPostgresRefreshTokenRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	seriesRepo := repositories.NewPostgresSeriesRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	reactionRepo := repositories.NewPostgresReactionRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)
	countsRepo := repositories.NewPostgresCountsRepository(db)

	// --- Engagement wiring ---
	registry := engagement.NewRegistry()
	registry.Register(engagement.TargetPost, postRepo)
	registry.Register(engagement.TargetSeries, seriesRepo)
	registry.Register(engagement.TargetComment, commentRepo)

	cleaner := engagement.NewCleaner(repositories.NewCleanupRepository(commentRepo, likeRepo, reactionRepo, bookmarkRepo))
	log.Println("Engagement target registry and cascade cleaner configured.")

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, refreshTokenRepo, tokens, cfg.RefreshTokenTTL)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public read routes (viewer attached when a token is present) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalAuthMiddleware(tokens))

	postHandler := handlers.NewPostHandler(postRepo, tagRepo, countsRepo, cleaner)
	postHandler.RegisterPublicRoutes(public)

	seriesHandler := handlers.NewSeriesHandler(seriesRepo, postRepo, tagRepo, countsRepo, cleaner)
	seriesHandler.RegisterPublicRoutes(public)

	commentHandler := handlers.NewCommentHandler(commentRepo, registry, countsRepo, cleaner)
	commentHandler.RegisterPublicRoutes(public)

	tagHandler := handlers.NewTagHandler(tagRepo)
	tagHandler.RegisterPublicRoutes(public)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterPublicRoutes(public)
	log.Println("Public content routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(tokens))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler.RegisterProfileRoutes(api)
	postHandler.RegisterPostRoutes(api)
	seriesHandler.RegisterSeriesRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	tagHandler.RegisterTagRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, registry)
	likeHandler.RegisterLikeRoutes(api)

	reactionHandler := handlers.NewReactionHandler(reactionRepo, registry)
	reactionHandler.RegisterReactionRoutes(api)

	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, postRepo, seriesRepo, registry)
	bookmarkHandler.RegisterBookmarkRoutes(api)
	log.Println("Engagement routes configured.")

	if uploader != nil {
		mediaHandler := handlers.NewMediaHandler(uploader, cfg.MaxUploadSize)
		mediaHandler.RegisterMediaRoutes(api)
		log.Println("Media upload routes configured.")
	} else {
		log.Println("S3 bucket not configured, media upload routes disabled.")
	}
}
