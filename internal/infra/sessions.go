package infra

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore tracks active session ids in Redis so that logout revokes a
// session immediately instead of waiting for the cookie to expire. Keys
// carry the session TTL, so abandoned sessions expire on their own.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Put registers a session id for the given user.
func (s *SessionStore) Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+sessionID, userID.String(), ttl).Err()
}

// Delete revokes a session id.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// Active reports whether a session id is still registered.
func (s *SessionStore) Active(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
