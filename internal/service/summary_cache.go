package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
)

// summaryCache keeps the live drawer summary in Redis for a short TTL so the
// register UI can poll it cheaply. It is strictly best-effort: every write
// path invalidates, Close never reads it, and a nil client disables caching
// entirely (unit test mode).
type summaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newSummaryCache(rdb *redis.Client, ttl time.Duration) *summaryCache {
	return &summaryCache{rdb: rdb, ttl: ttl}
}

func summaryKey(drawerID uuid.UUID) string { return "drawer:summary:" + drawerID.String() }

func (c *summaryCache) Get(ctx context.Context, drawerID uuid.UUID) *dto.DrawerSummaryResponse {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, summaryKey(drawerID)).Bytes()
	if err != nil {
		return nil // miss or redis down — caller recomputes
	}
	var s dto.DrawerSummaryResponse
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func (c *summaryCache) Set(ctx context.Context, drawerID uuid.UUID, s *dto.DrawerSummaryResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryKey(drawerID), raw, c.ttl).Err(); err != nil {
		log.Debug().Err(err).Msg("summary cache: set failed")
	}
}

func (c *summaryCache) Invalidate(ctx context.Context, drawerID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, summaryKey(drawerID)).Err(); err != nil {
		log.Debug().Err(err).Msg("summary cache: invalidate failed")
	}
}
