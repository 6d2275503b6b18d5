package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/internal/service"
	mock_service "github.com/DanielMat97/BackendExtorApp/internal/service/mocks"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"
)

func TestLookup_GetByCaseNumber_CacheMissThenFill(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	cache := mock_service.NewMockReportCache(ctrl)

	report := &domain.Report{ID: uuid.New(), CaseNumber: "EXT-2024-000001", Status: domain.ReportInReview}
	want := report.StatusView()

	gomock.InOrder(
		cache.EXPECT().GetStatus(gomock.Any(), "case:EXT-2024-000001").Return(nil, nil),
		repo.EXPECT().FindByCaseNumber(gomock.Any(), "EXT-2024-000001").Return(report, nil),
		cache.EXPECT().SetStatus(gomock.Any(), "case:EXT-2024-000001", want, 30*time.Second).Return(nil),
	)

	svc := service.NewLookupService(repo, cache, 30*time.Second, newTestLogger())
	got, err := svc.GetByCaseNumber(context.Background(), "EXT-2024-000001")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if *got != want {
		t.Fatalf("unexpected view: got=%+v want=%+v", *got, want)
	}
}

func TestLookup_GetByID_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	cache := mock_service.NewMockReportCache(ctrl)

	id := uuid.New()
	cached := &domain.ReportStatusView{ReportID: id, CaseNumber: "EXT-2024-000009", Status: domain.ReportPending}
	cache.EXPECT().GetStatus(gomock.Any(), "id:"+id.String()).Return(cached, nil)

	svc := service.NewLookupService(repo, cache, time.Minute, newTestLogger())
	got, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != cached {
		t.Fatalf("expected cached view")
	}
}

func TestLookup_CacheFailureFallsBackToStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	cache := mock_service.NewMockReportCache(ctrl)

	id := uuid.New()
	report := &domain.Report{ID: id, CaseNumber: "EXT-2024-000002", Status: domain.ReportPending}

	cache.EXPECT().GetStatus(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	repo.EXPECT().FindByID(gomock.Any(), id).Return(report, nil)
	cache.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	svc := service.NewLookupService(repo, cache, time.Minute, newTestLogger())
	got, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.CaseNumber != "EXT-2024-000002" {
		t.Fatalf("unexpected view: %+v", got)
	}
}

func TestLookup_WithoutCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	repo.EXPECT().FindByCaseNumber(gomock.Any(), "EXT-2024-000404").Return(nil, e.ErrNotFound)

	svc := service.NewLookupService(repo, nil, 0, newTestLogger())
	if _, err := svc.GetByCaseNumber(context.Background(), "EXT-2024-000404"); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestLookup_MalformedKeysNeverReachStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	cache := mock_service.NewMockReportCache(ctrl)
	svc := service.NewLookupService(repo, cache, time.Minute, newTestLogger())

	for _, cn := range []string{"", "EXT-2024-1", "abc", "EXT-2024-000000"} {
		if _, err := svc.GetByCaseNumber(context.Background(), cn); !errors.Is(err, e.ErrNotFound) {
			t.Fatalf("%q: expected ErrNotFound got %v", cn, err)
		}
	}
	if _, err := svc.GetByID(context.Background(), uuid.Nil); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("nil id: expected ErrNotFound got %v", err)
	}
}
