package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/config"
	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"
)

type AuditSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.AuditEvent, error)
}

// AuditSender drains queued audit events to the configured webhook.
type AuditSender struct {
	logger     *slog.Logger
	cfg        config.AuditConfig
	queue      AuditSource
	http       *http.Client
	maxRetries int
	backoff    time.Duration
	popTimeout time.Duration
}

func NewAuditSender(logger *slog.Logger, cfg config.AuditConfig, q AuditSource) *AuditSender {
	return &AuditSender{
		logger:     logger,
		cfg:        cfg,
		queue:      q,
		http:       &http.Client{Timeout: 5 * time.Second},
		maxRetries: 3,
		backoff:    time.Second,
		popTimeout: 5 * time.Second,
	}
}

func (s *AuditSender) Run(ctx context.Context) {
	s.logger.Info("audit sender started", slog.String("url", s.cfg.WebhookURL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("audit sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		event, err := s.queue.BRPop(ctx, s.popTimeout)
		if err != nil {
			if errors.Is(err, e.ErrAuditQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("audit BRPop failed", slog.Any("error", err))
			sleepCtx(ctx, 500*time.Millisecond)
			continue
		}

		s.sendWithRetry(ctx, event)
	}
}

func (s *AuditSender) sendWithRetry(ctx context.Context, ev domain.AuditEvent) bool {
	body, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("marshal audit event failed", slog.String("error", err.Error()))
		return false
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return false
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create audit request failed", slog.String("error", err.Error()))
			return false
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return true
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}
		s.logger.Warn("audit webhook failed",
			slog.Int("attempt", attempt),
			slog.String("kind", string(ev.Kind)),
			slog.String("reason", reason),
		)

		if attempt < s.maxRetries {
			sleepCtx(ctx, time.Duration(attempt)*s.backoff)
		}
	}

	s.logger.Error("audit event dropped", slog.String("kind", string(ev.Kind)), slog.String("case_number", ev.CaseNumber))
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
