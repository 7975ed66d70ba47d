package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "evently/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"evently/internal/auth"
	"evently/internal/cache"
	"evently/internal/config"
	"evently/internal/db"
	"evently/internal/email"
	"evently/internal/handler"
	"evently/internal/model"
	"evently/internal/repository"
	"evently/internal/router"
	"evently/internal/service"
	"evently/internal/storage"
)

// @title Evently API
// @version 1.0
// @description Events platform API with email verification, JWT sessions, event signups and image uploads.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Signup{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	signupRepo := repository.NewSignupRepository(gormDB)

	// Initialize collaborators
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sender := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.VerifyURL, logger)
	uploader, err := storage.NewS3Uploader(context.Background(), storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}, logger)
	if err != nil {
		log.Fatalf("s3 init: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sender, cacheClient, logger)
	eventService := service.NewEventService(eventRepo, signupRepo)
	signupService := service.NewSignupService(signupRepo, eventRepo)
	userService := service.NewUserService(userRepo)
	uploadService := service.NewUploadService(uploader)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	signupHandler := handler.NewSignupHandler(signupService)
	userHandler := handler.NewUserHandler(userService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	authMiddleware := auth.NewMiddleware(jwtService, userRepo)

	// Register routes
	router.Register(
		e,
		authMiddleware,
		authHandler,
		eventHandler,
		signupHandler,
		userHandler,
		uploadHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
