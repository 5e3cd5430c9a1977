package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"mangaist/database"
	"mangaist/internal/cache"
	"mangaist/internal/config"
	"mangaist/internal/http-api/handler"
	"mangaist/internal/http-api/middleware"
	"mangaist/internal/http-api/repository"
	"mangaist/internal/http-api/service"
	"mangaist/internal/storage"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
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

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	cacheClient, err := cache.New(cfg, logger)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	media, err := storage.NewMediaStore(cfg, logger)
	if err != nil {
		logger.Error("media store init failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	mangaRepo := repository.NewMangaRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	panelRepo := repository.NewPanelRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	verifier := service.NewIdentityVerifier(cfg)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, verifier, cfg)
	mangaService := service.NewMangaService(mangaRepo, cacheClient)
	catalogService := service.NewCatalogService(catalogRepo, mangaRepo, userRepo, cacheClient)
	panelService := service.NewPanelService(panelRepo)
	userService := service.NewUserService(userRepo, catalogRepo, panelRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	mangaHandler := handler.NewMangaHandler(mangaService, media)
	userHandler := handler.NewUserHandler(userService, media)
	catalogHandler := handler.NewCatalogHandler(catalogService, media)
	panelHandler := handler.NewPanelHandler(panelService, media)
	messageHandler := handler.NewMessageHandler(messageService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authHandler.RegisterRoutes(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	mangaHandler.RegisterRoutes(protected.Group("/manga"))

	users := protected.Group("/users")
	userHandler.RegisterRoutes(users)
	catalogHandler.RegisterRoutes(users)
	panelHandler.RegisterRoutes(users)

	messageHandler.RegisterRoutes(protected.Group("/messages"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
