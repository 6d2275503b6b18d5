package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const statusKeyPrefix = "reports:status:"

// ReportCache keeps status views for public lookups. The TTL bounds how stale
// a returned status can be.
type ReportCache struct {
	client *goredis.Client
	prefix string
}

func NewReportCache(r *Redis) *ReportCache {
	return &ReportCache{
		client: r.Client,
		prefix: statusKeyPrefix,
	}
}

func (c *ReportCache) GetStatus(ctx context.Context, key string) (*domain.ReportStatusView, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var view domain.ReportStatusView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}

	return &view, nil
}

func (c *ReportCache) SetStatus(ctx context.Context, key string, view domain.ReportStatusView, ttl time.Duration) error {
	b, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, b, ttl).Err()
}
