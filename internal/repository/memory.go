package repository

import (
	"context"
	"sync"

	"github.com/jogoforca/hangman-backend/internal/entity"
)

// memorySessions - in-memory session store. A read-write mutex guards the
// map itself; each session carries its own lock so concurrent operations on
// different games do not contend.
type memorySessions struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *entity.Session
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessions{
		entries: make(map[string]*sessionEntry),
	}
}

func (that *memorySessions) Create(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.entries[session.ID]; ok {
		return ErrSessionAlreadyExists
	}

	that.entries[session.ID] = &sessionEntry{session: session.Clone()}

	return nil
}

func (that *memorySessions) GetByID(_ context.Context, id string) (*entity.Session, error) {
	entry, err := that.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.session.Clone(), nil
}

// Update - runs fn on a working copy under the session's lock and swaps it
// in only when fn succeeds, so a failed mutation leaves no partial effects.
func (that *memorySessions) Update(_ context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	entry, err := that.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := entry.session.Clone()
	if err = fn(working); err != nil {
		return nil, err
	}

	entry.session = working

	return working.Clone(), nil
}

func (that *memorySessions) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.entries[id]; !ok {
		return ErrSessionNotFound
	}

	delete(that.entries, id)

	return nil
}

func (that *memorySessions) List(_ context.Context) ([]string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	ids := make([]string, 0, len(that.entries))
	for id := range that.entries {
		ids = append(ids, id)
	}

	return ids, nil
}

func (that *memorySessions) entry(id string) (*sessionEntry, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return entry, nil
}
