package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/tickethub/internal/domain"
)

// ErrNotFound is returned when no session record exists for an id, whether
// it never existed, was destroyed by logout, or expired.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Store holds server-side session records keyed by opaque id. The record,
// not the client token, is authoritative: deleting it revokes the session
// immediately regardless of what the client still holds.
type Store interface {
	Create(ctx context.Context, sess *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis with the configured TTL handling
// natural expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a store over an established client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Create assigns a fresh id and writes the record with TTL.
func (s *RedisStore) Create(ctx context.Context, sess *domain.Session) error {
	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now()

	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+sess.ID, payload, s.ttl).Err()
}

// Get loads a session and slides its expiry, mirroring cookie-session
// behavior where activity keeps the session alive.
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	sess.ID = id

	_ = s.client.Expire(ctx, keyPrefix+id, s.ttl).Err()
	return &sess, nil
}

// Delete removes the record. Removing an absent record is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

// MemoryStore is an in-process Store used by tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Create(_ context.Context, sess *domain.Session) error {
	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
