package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
)

// AuditLog writes every terminal intake outcome to the logger and, when a
// queue is configured, forwards it to the external sink.
type AuditLog struct {
	logger *slog.Logger
	queue  AuditQueue
}

func NewAuditLog(logger *slog.Logger, queue AuditQueue) *AuditLog {
	return &AuditLog{logger: logger, queue: queue}
}

func (a *AuditLog) Accepted(ctx context.Context, r *domain.Report) {
	id := r.ID
	anonymous := r.IsAnonymous()
	a.emit(ctx, domain.AuditEvent{
		Kind:       domain.AuditReportAccepted,
		ReportID:   &id,
		CaseNumber: r.CaseNumber,
		Anonymous:  &anonymous,
		IPAddress:  r.Provenance.IPAddress,
		OccurredAt: r.CreatedAt,
	})
}

func (a *AuditLog) Rejected(ctx context.Context, rej domain.Rejection, origin domain.Provenance, at time.Time) {
	a.emit(ctx, domain.AuditEvent{
		Kind:       domain.AuditReportRejected,
		Reason:     rej.Reason(),
		Fields:     rej.FieldErrors(),
		IPAddress:  origin.IPAddress,
		OccurredAt: at,
	})
}

func (a *AuditLog) ConflictExhausted(ctx context.Context, origin domain.Provenance, at time.Time) {
	a.emit(ctx, domain.AuditEvent{
		Kind:       domain.AuditReportConflict,
		Reason:     "allocation retries exhausted",
		IPAddress:  origin.IPAddress,
		OccurredAt: at,
	})
}

// StoreFailed records an accepted submission that could not be persisted.
// The store error itself stays in the service log.
func (a *AuditLog) StoreFailed(ctx context.Context, origin domain.Provenance, at time.Time) {
	a.emit(ctx, domain.AuditEvent{
		Kind:       domain.AuditReportFailed,
		Reason:     "store failure",
		IPAddress:  origin.IPAddress,
		OccurredAt: at,
	})
}

func (a *AuditLog) emit(ctx context.Context, ev domain.AuditEvent) {
	attrs := []any{
		slog.String("kind", string(ev.Kind)),
		slog.String("ip", ev.IPAddress),
		slog.Time("occurred_at", ev.OccurredAt),
	}
	if ev.CaseNumber != "" {
		attrs = append(attrs, slog.String("case_number", ev.CaseNumber))
	}
	if ev.ReportID != nil {
		attrs = append(attrs, slog.String("report_id", ev.ReportID.String()))
	}
	if ev.Reason != "" {
		attrs = append(attrs, slog.String("reason", ev.Reason), slog.Int("field_errors", len(ev.Fields)))
	}
	a.logger.Info("audit", attrs...)

	if a.queue == nil {
		return
	}
	if err := a.queue.Enqueue(ctx, ev); err != nil {
		a.logger.Error("enqueue audit event failed", slog.String("kind", string(ev.Kind)), slog.Any("error", err))
	}
}
