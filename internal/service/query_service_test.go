package service_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/internal/service"
	mock_service "github.com/DanielMat97/BackendExtorApp/internal/service/mocks"
)

func TestClampPaging(t *testing.T) {
	t.Parallel()

	cases := []struct{ page, limit, wantPage, wantLimit int }{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-3, 10, 1, 10},
		{2, 0, 2, 1},
		{2, -1, 2, 1},
		{1, 50, 1, 50},
		{1, 51, 1, 50},
		{1, 1000, 1, 50},
		{service.MaxPage, 50, service.MaxPage, 50},
		{service.MaxPage + 1, 10, service.MaxPage, 10},
		{922337203685477582, 10, service.MaxPage, 10},
	}
	for _, tc := range cases {
		p, l := service.ClampPaging(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, p, "page %d", tc.page)
		assert.Equal(t, tc.wantLimit, l, "limit %d", tc.limit)
	}
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	p := service.NewPagination(1, 10, 25)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: false}, p)

	p = service.NewPagination(3, 10, 25)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = service.NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)

	p = service.NewPagination(5, 10, 20)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestBuildFilter(t *testing.T) {
	t.Parallel()

	f, ok := service.BuildFilter(domain.ListReportsRequest{Status: "RESOLVED", StartDate: "01/12/2024", EndDate: "15/12/2024"}, acceptanceTime)
	require.True(t, ok)
	require.NotNil(t, f.Status)
	assert.Equal(t, domain.ReportResolved, *f.Status)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 12, 15, 23, 59, 59, 999999999, time.UTC), *f.To)

	f, ok = service.BuildFilter(domain.ListReportsRequest{StartDate: "2024-12-01", EndDate: "garbage"}, acceptanceTime)
	require.True(t, ok)
	assert.Nil(t, f.From)
	assert.Nil(t, f.To)
	assert.Nil(t, f.Status)

	_, ok = service.BuildFilter(domain.ListReportsRequest{Status: "ARCHIVED"}, acceptanceTime)
	assert.False(t, ok)

	_, ok = service.BuildFilter(domain.ListReportsRequest{Status: "pending"}, acceptanceTime)
	assert.False(t, ok)
}

func fakeReports(n int) []*domain.Report {
	out := make([]*domain.Report, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.Report{
			ID:           uuid.New(),
			CaseNumber:   fmt.Sprintf("EXT-2024-%06d", n-i),
			PhoneNumber:  "+573001234567",
			IncidentDate: acceptanceTime.Add(-time.Hour),
			Description:  "a description long enough",
			Identity:     domain.Identified{Name: "Juan", Contact: "3009876543"},
			Status:       domain.ReportPending,
			Provenance:   domain.Provenance{IPAddress: "10.0.0.1", UserAgent: "ua"},
			CreatedAt:    acceptanceTime,
		})
	}
	return out
}

func TestQuery_List_ThirdPageOfTwentyFive(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	repo.EXPECT().
		QueryPage(gomock.Any(), domain.ReportFilter{}, 20, 10).
		Return(fakeReports(5), int64(25), nil).
		Times(1)

	svc := service.NewQueryService(repo, newTestLogger(), time.UTC, func() time.Time { return acceptanceTime })
	got, err := svc.List(context.Background(), domain.ListReportsRequest{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, got.Reports, 5)
	assert.Equal(t, domain.Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3, HasNext: false, HasPrev: true}, got.Pagination)
	assert.False(t, got.Reports[0].IsAnonymous)
}

func TestQuery_List_ClampsBeforeQuerying(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	repo.EXPECT().QueryPage(gomock.Any(), gomock.Any(), 0, 50).Return(nil, int64(0), nil)

	svc := service.NewQueryService(repo, newTestLogger(), time.UTC, nil)
	got, err := svc.List(context.Background(), domain.ListReportsRequest{Page: 0, Limit: 500})
	require.NoError(t, err)

	assert.NotNil(t, got.Reports)
	assert.Empty(t, got.Reports)
	assert.Equal(t, 1, got.Pagination.Page)
	assert.Equal(t, 50, got.Pagination.Limit)
}

func TestQuery_List_HugePageKeepsOffsetInRange(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	repo.EXPECT().
		QueryPage(gomock.Any(), gomock.Any(), gomock.Any(), 10).
		DoAndReturn(func(_ context.Context, _ domain.ReportFilter, offset, limit int) ([]*domain.Report, int64, error) {
			if offset < 0 || offset > math.MaxInt32 {
				t.Fatalf("offset out of range: %d", offset)
			}
			return nil, int64(25), nil
		})

	svc := service.NewQueryService(repo, newTestLogger(), time.UTC, nil)
	got, err := svc.List(context.Background(), domain.ListReportsRequest{Page: 922337203685477582, Limit: 10})
	require.NoError(t, err)

	assert.Empty(t, got.Reports)
	assert.Equal(t, service.MaxPage, got.Pagination.Page)
	assert.False(t, got.Pagination.HasNext)
	assert.True(t, got.Pagination.HasPrev)
}

func TestQuery_List_UnknownStatusIsEmptyWithoutQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)

	svc := service.NewQueryService(repo, newTestLogger(), time.UTC, nil)
	got, err := svc.List(context.Background(), domain.ListReportsRequest{Page: 1, Limit: 10, Status: "ARCHIVED"})
	require.NoError(t, err)

	assert.Empty(t, got.Reports)
	assert.Equal(t, int64(0), got.Pagination.Total)
	assert.Equal(t, 0, got.Pagination.TotalPages)
}

func TestQuery_List_StoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockReportRepository(ctrl)
	repo.EXPECT().QueryPage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, int64(0), fmt.Errorf("boom"))

	svc := service.NewQueryService(repo, newTestLogger(), time.UTC, nil)
	_, err := svc.List(context.Background(), domain.ListReportsRequest{Page: 1, Limit: 10})
	require.Error(t, err)
}
