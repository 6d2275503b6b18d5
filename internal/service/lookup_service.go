package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"

	"github.com/google/uuid"
)

type lookupService struct {
	repo   ReportRepository
	cache  ReportCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewLookupService reads report status by id or case number. cache may be nil.
func NewLookupService(repo ReportRepository, cache ReportCache, ttl time.Duration, logger *slog.Logger) LookupService {
	return &lookupService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func (s *lookupService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportStatusView, error) {
	const op = "service.Lookup.GetByID"

	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return s.lookup(ctx, "id:"+id.String(), func() (*domain.Report, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *lookupService) GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.ReportStatusView, error) {
	const op = "service.Lookup.GetByCaseNumber"

	if _, _, ok := ParseCaseNumber(caseNumber); !ok {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return s.lookup(ctx, "case:"+caseNumber, func() (*domain.Report, error) {
		return s.repo.FindByCaseNumber(ctx, caseNumber)
	})
}

func (s *lookupService) lookup(ctx context.Context, key string, load func() (*domain.Report, error)) (*domain.ReportStatusView, error) {
	if s.cache != nil {
		view, err := s.cache.GetStatus(ctx, key)
		if err != nil {
			s.logger.Warn("report cache read failed", slog.String("key", key), slog.Any("error", err))
		} else if view != nil {
			return view, nil
		}
	}

	report, err := load()
	if err != nil {
		return nil, err
	}
	view := report.StatusView()

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetStatus(ctx, key, view, s.ttl); err != nil {
			s.logger.Warn("report cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return &view, nil
}
