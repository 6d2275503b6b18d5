package public

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type ReportIntake interface {
	Submit(ctx context.Context, req domain.CreateReportRequest, origin domain.Provenance) (*domain.ReportReceipt, error)
}

type ReportLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportStatusView, error)
	GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.ReportStatusView, error)
}

type ReportQuery interface {
	List(ctx context.Context, req domain.ListReportsRequest) (*domain.ReportPage, error)
}

type Handler struct {
	logger *slog.Logger
	Intake ReportIntake
	Lookup ReportLookup
	Query  ReportQuery
}

func NewHandler(logger *slog.Logger, intake ReportIntake, lookup ReportLookup, query ReportQuery) *Handler {
	return &Handler{
		logger: logger,
		Intake: intake,
		Lookup: lookup,
		Query:  query,
	}
}

func (h *Handler) ReportCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.CreateReportRequest
	if err := middleware.BindJSON(w, r, &req); err != nil {
		l.Warn("invalid report body", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, envelope{Message: msgInvalidBody})
		return
	}

	origin := domain.Provenance{
		IPAddress: middleware.ClientIP(r),
		UserAgent: middleware.UserAgent(r),
	}

	receipt, err := h.Intake.Submit(r.Context(), req, origin)
	if err != nil {
		h.handleSubmitError(w, r, err)
		return
	}

	l.Info("report created", slog.String("case_number", receipt.CaseNumber))
	h.writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: msgCreated,
		Data:    receipt,
	})
}

func (h *Handler) ReportList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := domain.ListReportsRequest{
		Page:      parseInt(q.Get("page"), 1),
		Limit:     parseInt(q.Get("limit"), 10),
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}

	page, err := h.Query.List(r.Context(), req)
	if err != nil {
		h.log(r).Error("list reports failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, envelope{Message: msgListFailed})
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: msgListed,
		Data:    page,
	})
}

func (h *Handler) ReportByCaseNumber(w http.ResponseWriter, r *http.Request) {
	caseNumber, _ := url.PathUnescape(chi.URLParam(r, "caseNumber"))

	view, err := h.Lookup.GetByCaseNumber(r.Context(), caseNumber)
	if err != nil {
		h.handleLookupError(w, r, err, "caseNumber", msgInvalidCaseNumber)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: msgFound,
		Data:    view,
	})
}

func (h *Handler) ReportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "reportId"))
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, envelope{
			Message: msgNotFound,
			Errors:  []domain.FieldError{{Field: "reportId", Message: msgInvalidReportID}},
		})
		return
	}

	view, err := h.Lookup.GetByID(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, r, err, "reportId", msgInvalidReportID)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: msgStatus,
		Data:    view,
	})
}

func (h *Handler) handleSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var rej domain.Rejection
	if errors.As(err, &rej) {
		h.log(r).Info("report rejected", slog.String("reason", rej.Reason()))
		h.writeJSON(w, http.StatusBadRequest, envelope{
			Message: msgRejected,
			Errors:  rej.FieldErrors(),
		})
		return
	}
	h.handleError(w, r, err)
}
