package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/MarcoAlber/KanMind/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyBoards    = "boards:list:"
	keyAssigned  = "tasks:assigned:"
	keyReviewing = "tasks:reviewing:"
)

// ListCache caches the per-user list endpoints (board list, assigned-to-me,
// reviewing) in Redis. Keys are scoped by user ID; any write path for a user
// invalidates all three of that user's keys.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListCache returns a new ListCache.
func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl}
}

func userKey(prefix string, userID int64) string {
	return prefix + strconv.FormatInt(userID, 10)
}

func getJSON[T any](ctx context.Context, rdb *redis.Client, key string) ([]T, error) {
	b, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []T
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func setJSON[T any](ctx context.Context, rdb *redis.Client, key string, list []T, ttl time.Duration) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// GetBoards returns the cached board list for the user, or nil on miss.
func (c *ListCache) GetBoards(ctx context.Context, userID int64) ([]dom.Board, error) {
	return getJSON[dom.Board](ctx, c.rdb, userKey(keyBoards, userID))
}

// SetBoards stores the board list for the user.
func (c *ListCache) SetBoards(ctx context.Context, userID int64, list []dom.Board) error {
	return setJSON(ctx, c.rdb, userKey(keyBoards, userID), list, c.ttl)
}

// GetAssigned returns the cached assigned-to-me list, or nil on miss.
func (c *ListCache) GetAssigned(ctx context.Context, userID int64) ([]dom.Task, error) {
	return getJSON[dom.Task](ctx, c.rdb, userKey(keyAssigned, userID))
}

// SetAssigned stores the assigned-to-me list for the user.
func (c *ListCache) SetAssigned(ctx context.Context, userID int64, list []dom.Task) error {
	return setJSON(ctx, c.rdb, userKey(keyAssigned, userID), list, c.ttl)
}

// GetReviewing returns the cached reviewing list, or nil on miss.
func (c *ListCache) GetReviewing(ctx context.Context, userID int64) ([]dom.Task, error) {
	return getJSON[dom.Task](ctx, c.rdb, userKey(keyReviewing, userID))
}

// SetReviewing stores the reviewing list for the user.
func (c *ListCache) SetReviewing(ctx context.Context, userID int64, list []dom.Task) error {
	return setJSON(ctx, c.rdb, userKey(keyReviewing, userID), list, c.ttl)
}

// InvalidateUsers removes all cached lists for the given users. Zero and
// duplicate IDs are skipped, so callers can pass owner/assignee/reviewer
// without filtering.
func (c *ListCache) InvalidateUsers(ctx context.Context, userIDs ...int64) error {
	seen := make(map[int64]bool, len(userIDs))
	var keys []string
	for _, id := range userIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys,
			userKey(keyBoards, id),
			userKey(keyAssigned, id),
			userKey(keyReviewing, id),
		)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
