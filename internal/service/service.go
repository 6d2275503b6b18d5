package service

import (
	"context"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type IntakeService interface {
	Submit(ctx context.Context, req domain.CreateReportRequest, origin domain.Provenance) (*domain.ReportReceipt, error)
}

type LookupService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportStatusView, error)
	GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.ReportStatusView, error)
}

type QueryService interface {
	List(ctx context.Context, req domain.ListReportsRequest) (*domain.ReportPage, error)
}

// Admin-only aggregate counts.
type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error)
}

// ReportRepository is the transactional record store. Insert must fail with
// e.ErrUniqueViolation when the case number is already taken.
type ReportRepository interface {
	Insert(ctx context.Context, report *domain.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	FindByCaseNumber(ctx context.Context, caseNumber string) (*domain.Report, error)
	MaxSequenceForPrefix(ctx context.Context, prefix string) (int, bool, error)
	QueryPage(ctx context.Context, filter domain.ReportFilter, offset, limit int) ([]*domain.Report, int64, error)
}

type StatsRepository interface {
	CountByStatusSince(ctx context.Context, since time.Time) (map[domain.ReportStatus]int64, error)
}

// ReportCache returns nil, nil on a miss.
type ReportCache interface {
	GetStatus(ctx context.Context, key string) (*domain.ReportStatusView, error)
	SetStatus(ctx context.Context, key string, view domain.ReportStatusView, ttl time.Duration) error
}

type AuditQueue interface {
	Enqueue(ctx context.Context, event domain.AuditEvent) error
}

type IntakeMetrics interface {
	ReportAccepted(elapsed time.Duration)
	ReportRejected(reason string)
	AllocationConflict()
	StoreFailure()
}

type Service struct {
	IntakeService IntakeService
	LookupService LookupService
	QueryService  QueryService
	StatsService  StatsService
}

func NewService(
	intakeService IntakeService,
	lookupService LookupService,
	queryService QueryService,
	statsService StatsService,
) *Service {
	return &Service{
		IntakeService: intakeService,
		LookupService: lookupService,
		QueryService:  queryService,
		StatsService:  statsService,
	}
}
