package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix    = "user:%d"
	projectKeyPrefix = "project:%d"
	forumKeyPrefix   = "forum:%d"
	tagsKey          = "tags"
)

const (
	UserTTL    = 5 * time.Minute
	ProjectTTL = 10 * time.Minute
	ForumTTL   = 10 * time.Minute
	TagsTTL    = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func ProjectKey(projectID uint) string {
	return fmt.Sprintf(projectKeyPrefix, projectID)
}

func ForumKey(forumID uint) string {
	return fmt.Sprintf(forumKeyPrefix, forumID)
}

func TagsKey() string {
	return tagsKey
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) on a miss.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first; on miss it calls fetch (which must populate dest),
// then stores the result with ttl. Cache failures fall through to fetch.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateProject(ctx context.Context, projectID uint) {
	Invalidate(ctx, ProjectKey(projectID))
}

func InvalidateForum(ctx context.Context, forumID uint) {
	Invalidate(ctx, ForumKey(forumID))
}

func InvalidateTags(ctx context.Context) {
	Invalidate(ctx, TagsKey())
}
