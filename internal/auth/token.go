package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix  = "token:"
	defaultTokenTTL = 24 * time.Hour
)

// Store manages auth tokens in Redis, mapping token -> user ID.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new token store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a new token for the user and returns it.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	key := tokenKeyPrefix + token
	if err := s.rdb.Set(ctx, key, strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// GetUserID returns the user ID the token belongs to, refreshing its TTL.
// ok is false if the token is unknown or expired.
func (s *Store) GetUserID(ctx context.Context, token string) (int64, bool) {
	key := tokenKeyPrefix + token
	v, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	userID, err := strconv.ParseInt(v, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}
	_ = s.rdb.Expire(ctx, key, s.ttl).Err()
	return userID, true
}

// Delete removes a token.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, tokenKeyPrefix+token).Err()
}

func newToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
