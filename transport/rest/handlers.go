package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jogoforca/hangman-backend/internal/apperror"
	"github.com/jogoforca/hangman-backend/internal/entity"
	"github.com/jogoforca/hangman-backend/internal/repository"
)

type gameService interface {
	CreateGame(ctx context.Context, mode string, players []string) (*entity.Session, error)
	JoinGame(ctx context.Context, id, playerName string) (*entity.Session, error)
	SubmitWord(ctx context.Context, id, word, hint string, generateHint bool) (*entity.Session, error)
	GuessLetter(ctx context.Context, id, letter string) (*entity.GuessResult, error)
	NextRound(ctx context.Context, id string) (*entity.Session, error)
	GetGame(ctx context.Context, id string) (*entity.Session, error)
	DeleteGame(ctx context.Context, id string) error
	ListGames(ctx context.Context) ([]string, error)
}

type handlers struct {
	games gameService
}

func newHandlers(games gameService) *handlers {
	return &handlers{games: games}
}

type createGameRequest struct {
	Mode    string   `json:"mode" binding:"required"`
	Players []string `json:"players" binding:"required"`
}

type joinGameRequest struct {
	Player string `json:"player" binding:"required"`
}

type submitWordRequest struct {
	Word         string `json:"word" binding:"required"`
	Hint         string `json:"hint"`
	GenerateHint bool   `json:"generate_hint"`
}

type guessLetterRequest struct {
	Letter string `json:"letter" binding:"required"`
}

func (that *handlers) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	session, err := that.games.CreateGame(c.Request.Context(), req.Mode, req.Players)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

func (that *handlers) joinGame(c *gin.Context) {
	var req joinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	session, err := that.games.JoinGame(c.Request.Context(), c.Param("id"), req.Player)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

func (that *handlers) submitWord(c *gin.Context) {
	var req submitWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	session, err := that.games.SubmitWord(c.Request.Context(), c.Param("id"), req.Word, req.Hint, req.GenerateHint)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

func (that *handlers) guessLetter(c *gin.Context) {
	var req guessLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := that.games.GuessLetter(c.Request.Context(), c.Param("id"), req.Letter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (that *handlers) nextRound(c *gin.Context) {
	session, err := that.games.NextRound(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

func (that *handlers) getGame(c *gin.Context) {
	session, err := that.games.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

func (that *handlers) deleteGame(c *gin.Context) {
	if err := that.games.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "game deleted"})
}

func (that *handlers) listGames(c *gin.Context) {
	ids, err := that.games.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": ids, "total": len(ids)})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case apperror.IsClientError(err):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
