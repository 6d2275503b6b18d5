package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/DanielMat97/BackendExtorApp/internal/service"
	mock_service "github.com/DanielMat97/BackendExtorApp/internal/service/mocks"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"
)

func TestFormatAndParseCaseNumber(t *testing.T) {
	t.Parallel()

	if got := service.FormatCaseNumber(2024, 1); got != "EXT-2024-000001" {
		t.Fatalf("unexpected case number %q", got)
	}
	if got := service.FormatCaseNumber(2025, 123456); got != "EXT-2025-123456" {
		t.Fatalf("unexpected case number %q", got)
	}

	year, seq, ok := service.ParseCaseNumber("EXT-2024-000042")
	if !ok || year != 2024 || seq != 42 {
		t.Fatalf("parse: year=%d seq=%d ok=%v", year, seq, ok)
	}

	for _, bad := range []string{"", "EXT-2024-42", "ext-2024-000001", "EXT-24-000001", "EXT-2024-000000", "EXT-2024-0000001", "FOO-2024-000001"} {
		if _, _, ok := service.ParseCaseNumber(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestCaseAllocator_FirstOfYear(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockReportRepository(ctrl)
	store.EXPECT().MaxSequenceForPrefix(gomock.Any(), "EXT-2024").Return(0, false, nil).Times(1)

	got, err := service.NewCaseAllocator(store).Allocate(context.Background(), acceptanceTime)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "EXT-2024-000001" {
		t.Fatalf("expected EXT-2024-000001 got %q", got)
	}
}

func TestCaseAllocator_NextAfterMax(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockReportRepository(ctrl)
	store.EXPECT().MaxSequenceForPrefix(gomock.Any(), "EXT-2025").Return(41, true, nil).Times(1)

	now := time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)
	got, err := service.NewCaseAllocator(store).Allocate(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "EXT-2025-000042" {
		t.Fatalf("expected EXT-2025-000042 got %q", got)
	}
}

func TestCaseAllocator_SequenceExhausted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockReportRepository(ctrl)
	store.EXPECT().MaxSequenceForPrefix(gomock.Any(), gomock.Any()).Return(999999, true, nil)

	_, err := service.NewCaseAllocator(store).Allocate(context.Background(), acceptanceTime)
	if !errors.Is(err, e.ErrSequenceExhausted) {
		t.Fatalf("expected ErrSequenceExhausted got %v", err)
	}
}

func TestCaseAllocator_StoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockReportRepository(ctrl)
	store.EXPECT().MaxSequenceForPrefix(gomock.Any(), gomock.Any()).Return(0, false, e.ErrUnavailable)

	_, err := service.NewCaseAllocator(store).Allocate(context.Background(), acceptanceTime)
	if !errors.Is(err, e.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable got %v", err)
	}
}
