package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"manhwahub/database"
	"manhwahub/internal/config"
	"manhwahub/internal/microservices/http-api/handler"
	"manhwahub/internal/microservices/http-api/middleware"
	"manhwahub/internal/microservices/http-api/models"
	"manhwahub/internal/microservices/http-api/realtime"
	"manhwahub/internal/microservices/http-api/repository"
	"manhwahub/internal/microservices/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// pgx pool for raw SQL paths (leaderboard, health)
	if err := database.Connect(cfg, logger); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	// GORM handle for the repositories
	gdb, err := database.OpenGorm(cfg, logger)
	if err != nil {
		log.Fatalf("failed to open gorm DB: %v", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Comment{},
		&models.Reaction{},
		&models.Notification{},
		&models.UserStats{},
		&models.ReadingProgress{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	// Redis for the reaction-count cache. Optional: the cache degrades to
	// a no-op when the connection cannot be established.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	reactionCache := repository.NewReactionCache(redisClient, cfg.CacheTTL)

	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	refreshTokenRepo := repository.NewRefreshTokenRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)
	reactionRepo := repository.NewReactionRepository(gdb)
	notificationRepo := repository.NewNotificationRepository(gdb)
	statsRepo := repository.NewUserStatsRepository(gdb)
	leaderboardRepo := repository.NewLeaderboardRepository(database.Pool)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	statsService := service.NewUserStatsService(statsRepo, leaderboardRepo)
	commentService := service.NewCommentService(commentRepo, reactionRepo, reactionCache, notificationService, statsService, logger)

	// WebSocket hub streams fresh notifications to connected users
	hub := realtime.NewHub(logger)
	go hub.Run()
	notificationService.Subscribe(hub.Push)
	notificationService.Subscribe(func(n models.Notification) {
		logger.Debug("notification_created", "type", n.Type, "user_id", n.UserID)
	})

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	commentHandler := handler.NewCommentHandler(commentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	statsHandler := handler.NewStatsHandler(statsService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/check-conn", func(c *gin.Context) {
		if err := database.Pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api.Group("/auth"))
	commentHandler.RegisterPublicRoutes(api)
	statsHandler.RegisterPublicRoutes(api)

	// Authenticated routes, with rate limiting on writes
	writeLimiter := middleware.NewRateLimiter(cfg.WriteRateLimit, cfg.WriteRateBurst)
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	authed.Use(writeLimiter.Middleware())
	commentHandler.RegisterRoutes(authed)
	notificationHandler.RegisterRoutes(authed.Group("/notifications"))
	authed.GET("/notifications/ws", realtime.Handler(hub))
	statsHandler.RegisterRoutes(authed)

	// Moderation routes
	moderation := api.Group("/moderation")
	moderation.Use(middleware.AuthMiddleware(authService))
	moderation.Use(middleware.RequireModerator())
	commentHandler.RegisterModerationRoutes(moderation)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("http_server_starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
