package service

import (
	"math/rand"
	"time"

	"github.com/jogoforca/hangman-backend/internal/entity"
)

// NewRand - the default randomness source for role assignment and game ids.
func NewRand() entity.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game ids are not secrets
}
