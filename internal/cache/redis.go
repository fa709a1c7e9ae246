// Package cache provides the short-TTL list cache for anonymous thread
// fetches. Authenticated fetches bypass it entirely: current_user_reaction
// in the payload is per-user, so cached entries would leak one user's
// reactions into another's view.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/agoranews/comment-gateway/internal/config"
	"github.com/agoranews/comment-gateway/internal/model"
)

type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedList struct {
	Total    int                   `json:"total"`
	Comments []model.CommentRecord `json:"comments"`
}

// NewListCache connects to redis and pings it. Returns (nil, nil) when no
// REDIS_ADDR is configured — callers treat a nil cache as disabled.
func NewListCache(cfg config.CacheConfig) (*ListCache, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	db, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	ttl, err := time.ParseDuration(cfg.ListTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid LIST_CACHE_TTL: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ListCache{client: client, ttl: ttl}, nil
}

func listKey(subject string, sort model.SortMode) string {
	return fmt.Sprintf("thread:%s:%s", subject, sort)
}

// Get returns the cached list for one subject+sort, or (nil, 0, false).
// Cache errors degrade to a miss; the remote API remains the source of truth.
func (c *ListCache) Get(ctx context.Context, subject string, sort model.SortMode) ([]model.CommentRecord, int, bool) {
	if c == nil {
		return nil, 0, false
	}

	raw, err := c.client.Get(ctx, listKey(subject, sort)).Bytes()
	if err != nil {
		return nil, 0, false
	}

	var entry cachedList
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, 0, false
	}
	return entry.Comments, entry.Total, true
}

// Set stores a fetched list under the subject+sort key.
func (c *ListCache) Set(ctx context.Context, subject string, sort model.SortMode, comments []model.CommentRecord, total int) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(cachedList{Total: total, Comments: comments})
	if err != nil {
		return
	}
	c.client.Set(ctx, listKey(subject, sort), payload, c.ttl)
}

// Invalidate drops every sort variant for a subject. Called after any
// mutating action so the next anonymous fetch sees the new state.
func (c *ListCache) Invalidate(ctx context.Context, subject string) {
	if c == nil {
		return
	}

	keys := make([]string, 0, 3)
	for _, sort := range []model.SortMode{model.SortLatest, model.SortOldest, model.SortPopular} {
		keys = append(keys, listKey(subject, sort))
	}
	c.client.Del(ctx, keys...)
}

func (c *ListCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
