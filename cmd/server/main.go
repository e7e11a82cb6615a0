// @title           Minimalist Developer API
// @version         1.0.0
// @description     Backend API for generating, saving and browsing images, background removals and marketing copy.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"minimalist-backend/docs"
	"minimalist-backend/internal/config"
	"minimalist-backend/internal/database"
	"minimalist-backend/internal/gateway"
	"minimalist-backend/internal/handlers"
	"minimalist-backend/internal/logger"
	"minimalist-backend/internal/middleware"
	"minimalist-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Run migrations before accepting traffic
	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	if err := migrator.Run(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		log.Warn("Failed to close migrator", zap.Error(err))
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Connect(connectCtx, cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	cancelConnect()
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	gw := gateway.New(db, log)

	// Collaborators
	mirror := services.NewAssetMirror(cfg, log)
	generateHandler := handlers.NewGenerateHandler(services.NewImageGenerator(cfg, log), log)
	imagesHandler := handlers.NewImagesHandler(gw.Images, mirror, cfg.MaxUploadSize, log)
	backgroundsHandler := handlers.NewBackgroundsHandler(services.NewBackgroundRemover(cfg, log), gw.Backgrounds, mirror, cfg.MaxUploadSize, log)
	contentHandler := handlers.NewContentHandler(services.NewContentGenerator(cfg, log), gw.Contents)

	// Setup router
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogger(log))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	corsConfig := cors.DefaultConfig()
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		log.Info("CORS_ALLOWED_ORIGINS not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.NewHealthHandler(db).Health)

	// API routes
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))

	// Images
	api.POST("/generate", generateHandler.GenerateImage)
	api.POST("/images/save", imagesHandler.SaveImage)
	api.GET("/images/history", imagesHandler.ImageHistory)
	api.DELETE("/images/:id", imagesHandler.DeleteImage)

	// Backgrounds
	api.POST("/backgrounds/remove", backgroundsHandler.RemoveBackground)
	api.POST("/backgrounds/save", backgroundsHandler.SaveBackground)
	api.GET("/backgrounds/history", backgroundsHandler.BackgroundHistory)
	api.DELETE("/backgrounds/:id", backgroundsHandler.DeleteBackground)

	// Content
	api.POST("/content/generate", contentHandler.GenerateContent)
	api.POST("/content/save", contentHandler.SaveContent)
	api.GET("/content/history", contentHandler.ContentHistory)
	api.DELETE("/content/:id", contentHandler.DeleteContent)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.GeneratorHTTPTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
