package service

import (
	"context"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"

	"github.com/google/uuid"
)

func (s *Service) Submit(ctx context.Context, req domain.CreateReportRequest, origin domain.Provenance) (*domain.ReportReceipt, error) {
	return s.IntakeService.Submit(ctx, req, origin)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportStatusView, error) {
	return s.LookupService.GetByID(ctx, id)
}

func (s *Service) GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.ReportStatusView, error) {
	return s.LookupService.GetByCaseNumber(ctx, caseNumber)
}

func (s *Service) List(ctx context.Context, req domain.ListReportsRequest) (*domain.ReportPage, error) {
	return s.QueryService.List(ctx, req)
}

func (s *Service) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error) {
	return s.StatsService.GetStats(ctx, req)
}
