package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/normalize"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50

	// MaxPage keeps (page-1)*limit inside an int32 OFFSET.
	MaxPage = math.MaxInt32/MaxPageLimit + 1
)

type queryService struct {
	repo   ReportRepository
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewQueryService(repo ReportRepository, logger *slog.Logger, loc *time.Location, now func() time.Time) QueryService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &queryService{repo: repo, logger: logger, loc: loc, now: now}
}

func (s *queryService) List(ctx context.Context, req domain.ListReportsRequest) (*domain.ReportPage, error) {
	page, limit := ClampPaging(req.Page, req.Limit)
	filter, matchable := BuildFilter(req, s.now().In(s.loc))

	var (
		records []*domain.Report
		total   int64
	)
	if matchable {
		var err error
		records, total, err = s.repo.QueryPage(ctx, filter, (page-1)*limit, limit)
		if err != nil {
			s.logger.Error("list reports failed", slog.Any("error", err))
			return nil, err
		}
	}

	out := &domain.ReportPage{
		Reports:    make([]domain.ReportSummary, 0, len(records)),
		Pagination: NewPagination(page, limit, total),
	}
	for _, r := range records {
		out.Reports = append(out.Reports, r.Summary())
	}

	s.logger.Info("reports listed",
		slog.Int("page", page),
		slog.Int("limit", limit),
		slog.Int64("total", total),
		slog.String("status", req.Status),
		slog.String("start_date", req.StartDate),
		slog.String("end_date", req.EndDate),
	)
	return out, nil
}

// ClampPaging forces 1 <= page <= MaxPage and 1 <= limit <= MaxPageLimit.
func ClampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// BuildFilter parses the optional filters. Unparseable date bounds are
// dropped. An unknown status cannot match any report, reported as
// matchable=false.
func BuildFilter(req domain.ListReportsRequest, now time.Time) (domain.ReportFilter, bool) {
	var f domain.ReportFilter

	if req.Status != "" {
		st, err := domain.ParseReportStatus(req.Status)
		if err != nil {
			return f, false
		}
		f.Status = &st
	}
	if req.StartDate != "" {
		if from, ok := normalize.DayStart(req.StartDate, now); ok {
			f.From = &from
		}
	}
	if req.EndDate != "" {
		if to, ok := normalize.DayEnd(req.EndDate, now); ok {
			f.To = &to
		}
	}
	return f, true
}

func NewPagination(page, limit int, total int64) domain.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
