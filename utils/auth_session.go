package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const authSessionPrefix = "authSession:"

// AuthSession is one live login. Keyed by the token hash so a stolen
// dump of the store never exposes usable tokens.
type AuthSession struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore keeps the allowlist of live tokens in Redis. Tokens not
// present here are treated as revoked even when their signature is
// still valid.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps a Redis client; ttl should match the token
// lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Save records a session under the token hash.
func (s *SessionStore) Save(tokenHash string, session AuthSession) error {
	session.CreatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := s.client.Set(ctx, authSessionPrefix+tokenHash, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// Get retrieves the session for a token hash, or nil when the token is
// unknown or revoked.
func (s *SessionStore) Get(tokenHash string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, authSessionPrefix+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read auth session: %w", err)
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// Delete revokes a session.
func (s *SessionStore) Delete(tokenHash string) error {
	ctx := context.Background()
	return s.client.Del(ctx, authSessionPrefix+tokenHash).Err()
}
