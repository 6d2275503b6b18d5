package admin_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/golang/mock/gomock"

	"github.com/DanielMat97/BackendExtorApp/internal/api/handlers/http/admin"
	mock_admin "github.com/DanielMat97/BackendExtorApp/internal/api/handlers/http/admin/mocks"
	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

type statsResponse struct {
	Success bool               `json:"success"`
	Data    domain.ReportStats `json:"data"`
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestAdminStats_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsSvc := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), statsSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes=30", nil)
	rr := httptest.NewRecorder()

	want := &domain.ReportStats{
		Total:    3,
		Minutes:  30,
		ByStatus: map[domain.ReportStatus]int64{domain.ReportPending: 2, domain.ReportResolved: 1},
	}
	statsSvc.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 30}).
		Return(want, nil).
		Times(1)

	h.AdminStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[statsResponse](t, rr)
	if !got.Success || got.Data.Total != 3 || got.Data.ByStatus[domain.ReportPending] != 2 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAdminStats_DefaultMinutes_60(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsSvc := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), statsSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()

	statsSvc.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 60}).
		Return(&domain.ReportStats{Minutes: 60}, nil).
		Times(1)

	h.AdminStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestAdminStats_InvalidMinutes_400(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"abc", "0", "-5", "1441"} {
		ctrl := gomock.NewController(t)
		h := admin.NewHandler(newTestLogger(), mock_admin.NewMockStatsGetter(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes="+q, nil)
		rr := httptest.NewRecorder()

		h.AdminStats(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("minutes=%s: expected %d got %d", q, http.StatusBadRequest, rr.Code)
		}
	}
}

func TestAdminStats_ServiceError(t *testing.T) {
	t.Parallel()

	cases := map[error]int{
		errors.New("boom"): http.StatusInternalServerError,
		e.ErrUnavailable:   http.StatusServiceUnavailable,
	}

	for svcErr, want := range cases {
		ctrl := gomock.NewController(t)
		statsSvc := mock_admin.NewMockStatsGetter(ctrl)
		h := admin.NewHandler(newTestLogger(), statsSvc)

		statsSvc.EXPECT().GetStats(gomock.Any(), gomock.Any()).Return(nil, svcErr)

		rr := httptest.NewRecorder()
		h.AdminStats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil))

		if rr.Code != want {
			t.Fatalf("%v: expected %d got %d", svcErr, want, rr.Code)
		}
	}
}
