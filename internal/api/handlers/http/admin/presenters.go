package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	l.Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	switch {
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, envelope{Message: "not found"})
	case errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, envelope{Message: "invalid input"})
	case errors.Is(err, e.ErrDeadline), errors.Is(err, e.ErrUnavailable):
		h.writeJSON(w, http.StatusServiceUnavailable, envelope{Message: "store unavailable"})
	default:
		h.writeJSON(w, http.StatusInternalServerError, envelope{Message: "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
