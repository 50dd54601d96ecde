package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"social-service/internal/config"
	"social-service/internal/database/mongo"
	"social-service/internal/database/redis"
	"social-service/internal/event"
	"social-service/internal/handlers"
	"social-service/internal/repository"
	"social-service/internal/service"
	"social-service/pkg/discovery"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/var", "log", "social_service")
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.ServiceConfig

	if err := mongo.InitMongoDB(&cfg.MongoDB); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := redis.InitRedis(&cfg.Redis); err != nil {
		log.Printf("Warning: Redis unavailable, count caching disabled: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Social Service is healthy")
	})

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(mongo.Database)
	followRepo := repository.NewFollowRepository(mongo.Database)
	goalRepo := repository.NewGoalRepository(mongo.Database)

	var cache *repository.RedisRepo
	if redis.Redis_Client != nil {
		cache = repository.NewRedisRepo(redis.Redis_Client)
	}

	// Create database indexes
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	for name, create := range map[string]func(context.Context) error{
		"profile": profileRepo.CreateIndexes,
		"follow":  followRepo.CreateIndexes,
		"goal":    goalRepo.CreateIndexes,
	} {
		if err := create(ctx); err != nil {
			log.Printf("Warning: Failed to create %s indexes: %v", name, err)
		}
	}
	cancel()

	eventPublisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		eventPublisher, _ = event.NewEventPublisher("", cfg.RabbitMQ.Exchange)
	}

	eventConsumer, err := event.NewEventConsumer(cfg.RabbitMQ.URI, profileRepo)
	if err != nil {
		log.Printf("Warning: Failed to initialize event consumer: %v", err)
	} else {
		if err := eventConsumer.Start(); err != nil {
			log.Printf("Warning: Failed to start event consumer: %v", err)
			eventConsumer.Close()
		} else {
			log.Println("Successfully started event consumer")
			defer eventConsumer.Close()
		}
	}

	// Initialize services
	profileService := service.NewProfileService(profileRepo, followRepo, goalRepo, cache, eventPublisher)
	followService := service.NewFollowService(followRepo, profileRepo, goalRepo, cache, eventPublisher)
	goalService := service.NewGoalService(goalRepo, profileRepo, followRepo, eventPublisher)

	// Initialize and register handlers
	handlers.NewProfileHandler(profileService).RegisterRoutes(app)
	handlers.NewFollowHandler(followService).RegisterRoutes(app)
	handlers.NewGoalHandler(goalService).RegisterRoutes(app)

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := app.Listen(fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if eventPublisher != nil {
		if err := eventPublisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}

	redis.CloseRedis()
	mongo.CloseDB()

	if discovery.ServiceDiscovery != nil {
		if err := discovery.ServiceDiscovery.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	<-doneChan
	log.Println("Server shutdown complete")
}
