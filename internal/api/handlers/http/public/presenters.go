package public

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	msgCreated           = "report created successfully"
	msgRejected          = "validation failed for the submitted data"
	msgInvalidBody       = "request body must be a single JSON object"
	msgConflict          = "could not allocate a case number, please retry"
	msgInternal          = "internal server error"
	msgListed            = "reports retrieved successfully"
	msgListFailed        = "could not retrieve reports"
	msgFound             = "report found"
	msgStatus            = "report status retrieved"
	msgNotFound          = "report not found"
	msgInvalidCaseNumber = "invalid case number"
	msgInvalidReportID   = "invalid report id"

	conflictRetryAfter = "1"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	switch {
	case errors.Is(err, e.ErrConflictExhausted):
		l.Warn("case allocation exhausted", slog.Any("error", err))
		w.Header().Set("Retry-After", conflictRetryAfter)
		h.writeJSON(w, http.StatusServiceUnavailable, envelope{Message: msgConflict})
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, envelope{Message: msgNotFound})
	default:
		l.Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.writeJSON(w, http.StatusInternalServerError, envelope{Message: msgInternal})
	}
}

func (h *Handler) handleLookupError(w http.ResponseWriter, r *http.Request, err error, field, message string) {
	if errors.Is(err, e.ErrNotFound) {
		h.writeJSON(w, http.StatusNotFound, envelope{
			Message: msgNotFound,
			Errors:  []domain.FieldError{{Field: field, Message: message}},
		})
		return
	}
	h.handleError(w, r, err)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
