package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper is a SetNX once-guard. It keeps one-shot announcements (a task
// hitting Complete) from firing again when the same terminal state is
// re-written.
type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{rdb: rdb, ttl: ttl}
}

// AcquireOnce returns true the first time a (scope, id) pair is seen
// within the TTL. If redis is unavailable it returns true rather than
// swallow the announcement.
func (d *Deduper) AcquireOnce(ctx context.Context, scope string, id uint) bool {
	key := fmt.Sprintf("dedup:%s:%d", scope, id)

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}
