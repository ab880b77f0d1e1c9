package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutritrack/backend/config"
	"github.com/nutritrack/backend/internal/api"
	"github.com/nutritrack/backend/internal/database"
	"github.com/nutritrack/backend/internal/middleware"
	"github.com/nutritrack/backend/internal/router"
	"github.com/nutritrack/backend/internal/server"
	"github.com/nutritrack/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Avatar uploads are optional; without a bucket the endpoint
	// responds 503.
	var avatarService *service.AvatarService
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to configure S3: %v", err)
		}
		avatarService = service.NewAvatarService(s3cfg)
	} else {
		log.Printf("S3_BUCKET_NAME not set, avatar uploads disabled")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db, redisClient)
	catalogService := service.NewCatalogService(db)
	mealLogService := service.NewMealLogService(db, catalogService)
	activityService := service.NewActivityService(db)
	waterService := service.NewWaterService(db)

	writeLimiter := middleware.NewLogWriteRateLimiter(redisClient).Middleware()

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewProfileHandler(profileService, avatarService),
		api.NewCatalogHandler(catalogService),
		api.NewMealLogHandler(mealLogService, writeLimiter),
		api.NewActivityHandler(activityService),
		api.NewWaterHandler(waterService, writeLimiter),
		api.NewDashboardHandler(profileService, mealLogService, waterService, activityService),
		authService,
	)

	srv := server.New(engine, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
