package main

import (
	"caschools/internal/cache"
	"caschools/internal/config"
	"caschools/internal/registry"
	"caschools/internal/repository"
	"caschools/internal/service"
	"caschools/internal/transport/rest"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title CA Schools Dashboard Query API
// @version 1.0
// @description Natural-language queries over California School Dashboard data
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Intent:    %s", aiConfig.Models.Intent)
	log.Printf("  Narrative: %s", aiConfig.Models.Narrative)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:   configured ✓")
	} else {
		log.Println("  API Key:   NOT SET (pattern matching only)")
	}

	// Deployed indicator set
	reg := registry.Default()
	if len(cfg.Indicators) > 0 {
		reg = registry.Subset(cfg.Indicators...)
	}
	log.Printf("Indicators: %s", reg.LabelList())

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection, remove redis:// prefix if present
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories and caches
	schoolRepo := repository.NewSchoolRepo(db)
	answerCache := cache.NewAnswerCache(rdb)

	// Initialize services
	gemini := service.NewGeminiClient(aiConfig)
	intentSvc := service.NewIntentService(
		service.NewGeminiIntentStrategy(aiConfig, gemini, reg),
		service.NewPatternParser(reg),
	)
	explainerSvc := service.NewExplainerService(aiConfig, gemini, reg)
	querySvc := service.NewQueryService(intentSvc, schoolRepo, explainerSvc, answerCache, reg)

	// Create router with container
	container := &rest.Container{
		QueryService: querySvc,
	}
	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/query")
		log.Println("  GET  /health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
