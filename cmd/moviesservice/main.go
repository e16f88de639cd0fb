// movies-service/cmd/moviesservice/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"movies-service/internal/aggregate"
	httpAPI "movies-service/internal/api"
	"movies-service/internal/clients"
	"movies-service/internal/config"
	"movies-service/internal/seed"
	"movies-service/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	validate := validator.New()

	cfg := config.Load(logger)

	// --- Инициализация хранилища фильмов ---
	// Хранилище живёт в памяти процесса; при перезапуске наполняется заново.
	movieStore := store.NewInMemoryMovieStore()
	if cfg.SeedOnStart {
		logger.Info("Seeding movie store from fixture dataset")
		count, err := seed.Load(movieStore, logger)
		if err != nil {
			logger.Error("Failed to seed movie store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Movie store seeded", slog.Int("count", count))
	}

	// --- Клиент сервиса отзывов и агрегатор ---
	reviewsClient := clients.NewReviewsHTTPClient(
		cfg.ReviewsServiceBaseURL,
		cfg.ReviewsClientTimeout,
		cfg.ReviewsClientRetries,
		logger,
	)
	aggregator := aggregate.New(movieStore, reviewsClient, logger)

	// --- Настройка и запуск HTTP сервера ---
	movieAPIHandler := httpAPI.NewMovieHandler(movieStore, aggregator, logger, validate)
	httpRouter := httpAPI.NewRouter(movieAPIHandler)
	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("MoviesService HTTP server starting",
			slog.String("port", cfg.HTTPPort),
			slog.String("reviews_service", cfg.ReviewsServiceBaseURL))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("MoviesService HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("MoviesService shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("MoviesService HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("MoviesService HTTP server gracefully stopped.")
	}
}
