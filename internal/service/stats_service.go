package service

import (
	"context"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
)

type statsService struct {
	repo StatsRepository
	now  func() time.Time
}

func NewStatsService(repo StatsRepository, now func() time.Time) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{repo: repo, now: now}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error) {
	minutes := req.Minutes
	if minutes == 0 {
		minutes = 60
	}

	since := s.now().Add(-time.Duration(minutes) * time.Minute)
	counts, err := s.repo.CountByStatusSince(ctx, since)
	if err != nil {
		return nil, err
	}

	stats := &domain.ReportStats{
		ByStatus: make(map[domain.ReportStatus]int64, len(domain.ReportStatuses)),
		Minutes:  minutes,
	}
	for _, st := range domain.ReportStatuses {
		stats.ByStatus[st] = counts[st]
		stats.Total += counts[st]
	}
	return stats, nil
}
