package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, games gameService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: newHandlers(games),
	}
}

// Router - builds the gin engine with the game routes. CORS is wide open,
// the same policy as the original frontend expects.
func (that *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	api := router.Group("/api/game")
	{
		api.POST("/new", that.handlers.createGame)
		api.GET("", that.handlers.listGames)
		api.GET("/:id", that.handlers.getGame)
		api.DELETE("/:id", that.handlers.deleteGame)
		api.POST("/:id/join", that.handlers.joinGame)
		api.POST("/:id/submit-word", that.handlers.submitWord)
		api.POST("/:id/guess", that.handlers.guessLetter)
		api.POST("/:id/next-round", that.handlers.nextRound)
	}

	return router
}

// Start - serves HTTP until the context is canceled, then shuts down
// gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	that.logger.Info("server stopped")

	return nil
}
