package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mudgalz/foodie-be/config"
	httpapi "github.com/mudgalz/foodie-be/internal/api/http"
	"github.com/mudgalz/foodie-be/internal/auth"
	"github.com/mudgalz/foodie-be/internal/imagestore"
	"github.com/mudgalz/foodie-be/internal/payment"
	"github.com/mudgalz/foodie-be/internal/service"
	"github.com/mudgalz/foodie-be/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}
	cfg := config.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		logger.Fatalw("failed to ensure schema", "error", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()
	cache := storage.NewRedisCache(rdb, cfg.CacheTTL)

	kafkaWriter := config.NewKafkaWriter(cfg.OrdersTopic)
	defer kafkaWriter.Close()
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	images, err := imagestore.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logger.Fatalw("failed to prepare upload directory", "error", err)
	}

	gateway := payment.NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret)

	users := service.NewUserService(repo)
	restaurants := service.NewRestaurantService(repo, cache, images, cfg.FrontendURL, logger)
	orders := service.NewOrderService(repo, repo, gateway, publisher, cfg.FrontendURL, cfg.Currency, logger)

	handler := httpapi.NewHandler(users, restaurants, orders,
		auth.NewVerifier(cfg.JWTSecret), gateway, logger)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.NewRouter(handler, images.Dir()),
	}

	go func() {
		logger.Infow("server starting", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorw("shutdown error", "error", err)
	}
}
