package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"

	"github.com/google/uuid"
)

const defaultIntakeAttempts = 3

type IntakeConfig struct {
	// MaxAttempts bounds allocate+insert rounds after case number collisions.
	MaxAttempts int
	Location    *time.Location
	Now         func() time.Time
}

type intakeService struct {
	repo        ReportRepository
	allocator   *CaseAllocator
	validator   *ReportValidator
	audit       *AuditLog
	metrics     IntakeMetrics
	logger      *slog.Logger
	maxAttempts int
	loc         *time.Location
	now         func() time.Time
}

func NewIntakeService(
	repo ReportRepository,
	audit *AuditLog,
	metrics IntakeMetrics,
	logger *slog.Logger,
	cfg IntakeConfig,
) IntakeService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultIntakeAttempts
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if audit == nil {
		audit = NewAuditLog(logger, nil)
	}
	return &intakeService{
		repo:        repo,
		allocator:   NewCaseAllocator(repo),
		validator:   NewReportValidator(),
		audit:       audit,
		metrics:     metrics,
		logger:      logger,
		maxAttempts: cfg.MaxAttempts,
		loc:         cfg.Location,
		now:         cfg.Now,
	}
}

// Submit validates, numbers and stores one report. Nothing is written unless
// the report has its final case number. A domain.Rejection is returned for
// invalid input, e.ErrConflictExhausted when every attempt collided.
func (s *intakeService) Submit(ctx context.Context, req domain.CreateReportRequest, origin domain.Provenance) (*domain.ReportReceipt, error) {
	const op = "service.Intake.Submit"

	started := time.Now()
	now := s.now().In(s.loc)
	origin = origin.Bounded()

	validated, err := s.validator.Validate(req, now)
	if err != nil {
		var rej domain.Rejection
		if errors.As(err, &rej) {
			s.metrics.ReportRejected(rej.Reason())
			s.audit.Rejected(ctx, rej, origin, now)
			return nil, rej
		}
		return nil, e.Wrap(op, err)
	}

	report := &domain.Report{
		ID:            uuid.New(),
		PhoneNumber:   validated.PhoneNumber,
		IncidentDate:  validated.IncidentDate,
		Description:   validated.Description,
		HasEvidence:   validated.HasEvidence,
		Identity:      validated.Identity,
		TermsAccepted: true,
		Status:        domain.ReportPending,
		Provenance:    origin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		caseNumber, err := s.allocator.Allocate(ctx, now)
		if err != nil {
			s.metrics.StoreFailure()
			s.logger.Error("case number allocation failed", slog.String("op", op), slog.Any("error", err))
			s.audit.StoreFailed(ctx, origin, now)
			return nil, err
		}
		report.CaseNumber = caseNumber

		err = s.repo.Insert(ctx, report)
		if err == nil {
			s.metrics.ReportAccepted(time.Since(started))
			s.audit.Accepted(ctx, report)
			return &domain.ReportReceipt{
				ReportID:   report.ID,
				CaseNumber: report.CaseNumber,
				Status:     report.Status,
			}, nil
		}

		if !errors.Is(err, e.ErrUniqueViolation) {
			s.metrics.StoreFailure()
			s.logger.Error("report insert failed", slog.String("op", op), slog.Any("error", err))
			s.audit.StoreFailed(ctx, origin, now)
			return nil, err
		}

		s.metrics.AllocationConflict()
		s.logger.Warn("case number taken, reallocating",
			slog.String("case_number", caseNumber),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", s.maxAttempts),
		)
	}

	s.audit.ConflictExhausted(ctx, origin, now)
	return nil, fmt.Errorf("%s: %d attempts: %w", op, s.maxAttempts, e.ErrConflictExhausted)
}

type nopMetrics struct{}

func (nopMetrics) ReportAccepted(time.Duration) {}
func (nopMetrics) ReportRejected(string)        {}
func (nopMetrics) AllocationConflict()          {}
func (nopMetrics) StoreFailure()                {}
