package repository

import (
	"context"
	"errors"

	"github.com/jogoforca/hangman-backend/internal/entity"
)

var (
	ErrSessionNotFound      = errors.New("game not found")
	ErrSessionAlreadyExists = errors.New("game already exists")
)

// SessionRepository - the session store. Operations on different ids never
// block each other; operations on the same id are serialized, and Update
// applies its mutation atomically or not at all.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}
