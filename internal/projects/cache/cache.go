package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

const (
	projectsKey = "projects_cache"        // JSON-serialized project list
	expiryKey   = "projects_cache_expiry" // epoch-millisecond expiry

	// TTL is how long a cached snapshot short-circuits the live
	// subscription.
	TTL = 12 * time.Hour
)

// SnapshotCache is a single process-wide slot holding the last project list
// delivered by a live subscription. It is strictly best-effort: every Redis
// or decode failure is logged and treated as a miss, never surfaced to the
// caller. Writes are last-writer-wins.
type SnapshotCache struct {
	client *redis.Client
	now    func() time.Time
}

func New(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{client: client, now: time.Now}
}

// Get returns the cached list if both keys exist, decode and the snapshot
// has not passed its expiry. Anything else is a miss.
func (c *SnapshotCache) Get(ctx context.Context) ([]domain.Project, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, projectsKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] read %s: %v", projectsKey, err)
		return nil, false
	}

	expiryRaw, err := c.client.Get(ctx, expiryKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] read %s: %v", expiryKey, err)
		}
		return nil, false
	}

	expiryMillis, err := strconv.ParseInt(expiryRaw, 10, 64)
	if err != nil {
		log.Printf("[cache] corrupt expiry %q: %v", expiryRaw, err)
		return nil, false
	}
	if c.now().UnixMilli() >= expiryMillis {
		return nil, false
	}

	var projects []domain.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		log.Printf("[cache] corrupt snapshot: %v", err)
		return nil, false
	}
	return projects, true
}

// Set stores the snapshot with a fresh TTL. Failures are logged and
// swallowed.
func (c *SnapshotCache) Set(ctx context.Context, projects []domain.Project) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(projects)
	if err != nil {
		log.Printf("[cache] marshal snapshot: %v", err)
		return
	}

	expiry := c.now().Add(TTL).UnixMilli()

	pipe := c.client.Pipeline()
	pipe.Set(ctx, projectsKey, raw, 0)
	pipe.Set(ctx, expiryKey, strconv.FormatInt(expiry, 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[cache] write snapshot: %v", err)
	}
}
