package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"

	"github.com/redis/go-redis/v9"
)

// AuditQueue is a FIFO list: producers LPUSH, the sender BRPOPs.
type AuditQueue struct {
	client *redis.Client
	key    string
}

func NewAuditQueue(client *redis.Client, key string) *AuditQueue {
	return &AuditQueue{client: client, key: key}
}

func (q *AuditQueue) Enqueue(ctx context.Context, event domain.AuditEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return e.Wrap("marshal audit event", err)
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *AuditQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.AuditEvent, error) {
	var ev domain.AuditEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ev, e.ErrAuditQueueEmpty
		}
		return ev, err
	}
	if len(res) < 2 {
		return ev, e.ErrAuditQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return ev, e.Wrap("unmarshal audit event", err)
	}
	return ev, nil
}
