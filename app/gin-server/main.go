package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/careerlink/jobboard/config"
	"github.com/careerlink/jobboard/internal/api/handlers"
	"github.com/careerlink/jobboard/internal/api/middleware"
	"github.com/careerlink/jobboard/internal/api/routes"
	"github.com/careerlink/jobboard/internal/cache"
	"github.com/careerlink/jobboard/internal/logger"
	"github.com/careerlink/jobboard/internal/models"
	mongorepo "github.com/careerlink/jobboard/internal/repositories/mongo"
	pgrepo "github.com/careerlink/jobboard/internal/repositories/postgres"
	"github.com/careerlink/jobboard/internal/services"
	"github.com/careerlink/jobboard/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.Job{}); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	log.Info("Redis connected")

	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET environment variable is not set")
	}
	uploader, err := storage.NewGCSUploader(context.Background(), bucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer uploader.Close()

	uploadTimeout := 30 * time.Second
	if raw := os.Getenv("RESUME_UPLOAD_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			uploadTimeout = d
		}
	}

	redisCache := cache.NewRedisCache(config.RedisClient)
	appRepo := mongorepo.NewApplicationRepo(config.MongoDatabase())
	jobRepo := pgrepo.NewJobRepo(config.PostgresDB)

	appSvc := services.NewApplicationService(appRepo, jobRepo, uploader, redisCache, uploadTimeout)
	notifSvc := services.NewNotificationService(appRepo)
	jobSvc := services.NewJobService(jobRepo, redisCache)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Application:  handlers.NewApplicationHandler(appSvc),
		Notification: handlers.NewNotificationHandler(notifSvc),
		Job:          handlers.NewJobHandler(jobSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
