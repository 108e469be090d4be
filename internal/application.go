package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jogoforca/hangman-backend/internal/config"
	"github.com/jogoforca/hangman-backend/internal/repository"
	"github.com/jogoforca/hangman-backend/internal/repository/storage"
	"github.com/jogoforca/hangman-backend/internal/service"
	"github.com/jogoforca/hangman-backend/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var store repository.SessionRepository

	switch conf.Storage {
	case "redis":
		redisClient, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		store = repository.NewRedisSessionRepository(redisClient)
	default:
		store = repository.NewMemorySessionRepository()
	}

	rnd := service.NewRand()
	words := service.NewOllamaWords(logger, rnd, conf.Ollama.BaseURL, conf.Ollama.Models, conf.Ollama.WordTimeout, conf.Ollama.HintTimeout)
	games := service.NewGameService(logger, store, words, rnd)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	server := rest.New(logger, games)
	if err := server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
