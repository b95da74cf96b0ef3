package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wordly-app/backend/internal/config"
	"github.com/wordly-app/backend/internal/infrastructure/dynamo"
	jwtinfra "github.com/wordly-app/backend/internal/infrastructure/jwt"
	redisinfra "github.com/wordly-app/backend/internal/infrastructure/redis"
	"github.com/wordly-app/backend/internal/infrastructure/smtp"
	transporthttp "github.com/wordly-app/backend/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Redis holds pending registrations keyed by email.
	redisClient := redisinfra.NewClient(cfg)
	pendingRepo := redisinfra.NewPendingStore(redisClient, cfg.PendingRegistrationTTL)

	// Token signing is mandatory: the whole surface is cookie sessions.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider not available: %v", err)
	}

	mailer := smtp.NewMailer(cfg)

	deps := &transporthttp.Deps{
		UserRepo:     dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		CategoryRepo: dynamo.NewCategoryRepo(dynamoClient, cfg.DynamoTables.Categories),
		PendingRepo:  pendingRepo,
		Mailer:       mailer,
		JWTProvider:  jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	_ = redisClient.Close()
	log.Println("Server stopped")
}
