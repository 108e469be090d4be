package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/jogoforca/hangman-backend/internal/entity"
)

const sessionKeyPrefix = "game:"

// redisSessions - redis-backed session store. Per-id serialization is done
// with in-process keyed mutexes, which scopes this store to a single
// backend instance.
type redisSessions struct {
	client *redis.Client

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessions{
		client: client,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (that *redisSessions) Create(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	created, err := that.client.SetNX(ctx, sessionKeyPrefix+session.ID, sessionJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	if !created {
		return ErrSessionAlreadyExists
	}

	return nil
}

func (that *redisSessions) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session entity.Session
	if err = json.Unmarshal([]byte(response), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *redisSessions) Update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := that.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = fn(session); err != nil {
		return nil, err
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("could not marshal session: %w", err)
	}

	if err = that.client.Set(ctx, sessionKeyPrefix+id, sessionJSON, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

func (that *redisSessions) DeleteByID(ctx context.Context, id string) error {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	deleted, err := that.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	that.mu.Lock()
	delete(that.locks, id)
	that.mu.Unlock()

	return nil
}

func (that *redisSessions) List(ctx context.Context) ([]string, error) {
	keys, err := that.client.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, sessionKeyPrefix))
	}

	return ids, nil
}

func (that *redisSessions) lockFor(id string) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[id] = lock
	}

	return lock
}
