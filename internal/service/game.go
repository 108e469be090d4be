package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jogoforca/hangman-backend/internal/apperror"
	"github.com/jogoforca/hangman-backend/internal/entity"
	"github.com/jogoforca/hangman-backend/internal/repository"
)

const (
	gameIDLength    = 8
	gameIDCharset   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxIDCollisions = 5
)

var ErrIDExhausted = errors.New("could not allocate a unique game id")

// WordGenerator - the external word/hint collaborator. Both calls may be
// slow; neither ever fails, a fallback value is always returned.
type WordGenerator interface {
	GenerateWord(ctx context.Context) string
	GenerateHint(ctx context.Context, word string) string
}

// GameService - the session engine: it drives the game state machine through
// the session store, one serialized mutation per operation. Word generation
// happens before the session is touched so slow collaborator calls never
// hold a session lock.
type GameService struct {
	logger *slog.Logger
	store  repository.SessionRepository
	words  WordGenerator
	rnd    entity.Rand
}

func NewGameService(logger *slog.Logger, store repository.SessionRepository, words WordGenerator, rnd entity.Rand) *GameService {
	return &GameService{
		logger: logger.With("component", "game-service"),
		store:  store,
		words:  words,
		rnd:    rnd,
	}
}

// CreateGame - validates the configuration and creates a session. PvP games
// with a single player wait for invites; PvC games get a CPU word right away.
func (that *GameService) CreateGame(ctx context.Context, mode string, players []string) (*entity.Session, error) {
	players, err := normalizePlayers(players)
	if err != nil {
		return nil, err
	}

	if err = validateGameConfig(mode, players); err != nil {
		return nil, err
	}

	session := entity.NewSession("", mode, players)

	switch mode {
	case entity.ModePvP:
		if len(players) >= 2 {
			session.AssignRoles(that.rnd)
		} else {
			session.Status = entity.StatusWaitingPlayers
		}
	case entity.ModePvC:
		session.WordCreator = entity.CPUPlayer
		session.WordGuesser = players[0]

		word := that.words.GenerateWord(ctx)
		hint := that.words.GenerateHint(ctx, word)
		session.SetSecretWord(word, hint)
	}

	if err = that.storeWithFreshID(ctx, session); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "game_id", session.ID, "mode", mode, "players", len(players))

	return session, nil
}

// JoinGame - adds a player to a waiting PvP session.
func (that *GameService) JoinGame(ctx context.Context, id, playerName string) (*entity.Session, error) {
	playerName = strings.TrimSpace(playerName)

	session, err := that.store.Update(ctx, id, func(session *entity.Session) error {
		return session.Join(playerName, that.rnd)
	})
	if err != nil {
		return nil, err
	}

	that.logger.Info("player joined", "game_id", id, "player", playerName)

	return session, nil
}

// SubmitWord - installs the creator's secret word for the current round. A
// hint may be provided directly or generated by the collaborator; generation
// happens before the session mutation.
func (that *GameService) SubmitWord(ctx context.Context, id, word, hint string, generateHint bool) (*entity.Session, error) {
	word = strings.ToUpper(strings.TrimSpace(word))

	if !entity.IsValidWord(word) {
		if length := len([]rune(word)); length < entity.MinWordLength || length > entity.MaxWordLength {
			return nil, apperror.ErrWordLength
		}
		return nil, apperror.ErrInvalidWord
	}

	session, err := that.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Mode != entity.ModePvP {
		return nil, apperror.ErrPvPOnly
	}

	if !session.IsWaitingWord() {
		return nil, apperror.ErrWordNotExpected
	}

	hint = strings.TrimSpace(hint)
	if hint == "" && generateHint {
		hint = that.words.GenerateHint(ctx, word)
	}

	return that.store.Update(ctx, id, func(session *entity.Session) error {
		if session.Mode != entity.ModePvP {
			return apperror.ErrPvPOnly
		}

		if !session.IsWaitingWord() {
			return apperror.ErrWordNotExpected
		}

		session.SetSecretWord(word, hint)

		return nil
	})
}

// GuessLetter - resolves one letter guess against the session.
func (that *GameService) GuessLetter(ctx context.Context, id, letter string) (*entity.GuessResult, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))

	var result *entity.GuessResult

	_, err := that.store.Update(ctx, id, func(session *entity.Session) error {
		guess, guessErr := session.Guess(letter)
		if guessErr != nil {
			return guessErr
		}

		result = guess

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.GameStatus == entity.StatusRoundFinished || result.GameStatus == entity.StatusGameFinished {
		that.logger.Info("round decided", "game_id", id, "winner", result.RoundWinner, "status", result.GameStatus)
	}

	return result, nil
}

// NextRound - advances a finished round: state is reset, roles rotate in
// PvP, and in PvC the CPU immediately supplies the next word.
func (that *GameService) NextRound(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = session.ConfirmNextRound(); err != nil {
		return nil, err
	}

	var word, hint string
	if session.Mode == entity.ModePvC {
		word = that.words.GenerateWord(ctx)
		hint = that.words.GenerateHint(ctx, word)
	}

	return that.store.Update(ctx, id, func(session *entity.Session) error {
		if confirmErr := session.ConfirmNextRound(); confirmErr != nil {
			return confirmErr
		}

		session.ResetRound()

		if session.Mode == entity.ModePvP {
			session.RotateRoles(that.rnd)
			return nil
		}

		session.SetSecretWord(word, hint)

		return nil
	})
}

// GetGame - returns the session by id.
func (that *GameService) GetGame(ctx context.Context, id string) (*entity.Session, error) {
	return that.store.GetByID(ctx, id)
}

// DeleteGame - removes the session.
func (that *GameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	that.logger.Info("game deleted", "game_id", id)

	return nil
}

// ListGames - currently known session ids.
func (that *GameService) ListGames(ctx context.Context) ([]string, error) {
	return that.store.List(ctx)
}

// storeWithFreshID - generates random ids until one is unclaimed, giving up
// after a bounded number of collisions.
func (that *GameService) storeWithFreshID(ctx context.Context, session *entity.Session) error {
	for attempt := 0; attempt < maxIDCollisions; attempt++ {
		session.ID = that.newGameID()

		err := that.store.Create(ctx, session)
		if errors.Is(err, repository.ErrSessionAlreadyExists) {
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		return nil
	}

	return ErrIDExhausted
}

func (that *GameService) newGameID() string {
	id := make([]byte, gameIDLength)
	for i := range id {
		id[i] = gameIDCharset[that.rnd.Intn(len(gameIDCharset))]
	}

	return string(id)
}

func normalizePlayers(players []string) ([]string, error) {
	normalized := make([]string, 0, len(players))
	seen := make(map[string]struct{}, len(players))

	for _, player := range players {
		player = strings.TrimSpace(player)
		if player == "" {
			return nil, apperror.ErrEmptyPlayerName
		}

		if _, ok := seen[player]; ok {
			return nil, apperror.ErrDuplicatePlayer
		}

		seen[player] = struct{}{}
		normalized = append(normalized, player)
	}

	return normalized, nil
}

func validateGameConfig(mode string, players []string) error {
	switch mode {
	case entity.ModePvP:
		if len(players) < 1 || len(players) > entity.MaxPlayers {
			return apperror.ErrPvPPlayerCount
		}
	case entity.ModePvC:
		if len(players) != 1 {
			return apperror.ErrPvCPlayerCount
		}
	default:
		return apperror.ErrInvalidMode
	}

	return nil
}
