package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/validator"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const defaultStatsMinutes = 60

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type StatsGetter interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error)
}

type Handler struct {
	logger *slog.Logger
	Stats  StatsGetter
}

func NewHandler(logger *slog.Logger, stats StatsGetter) *Handler {
	return &Handler{
		logger: logger,
		Stats:  stats,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminStats", slog.String("query", r.URL.RawQuery))

	req := domain.StatsRequest{Minutes: defaultStatsMinutes}
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			h.badMinutes(w, l, raw)
			return
		}
		req.Minutes = minutes
	}
	if err := validator.ValidateStruct(req); err != nil {
		h.badMinutes(w, l, strconv.Itoa(req.Minutes))
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("stats success", slog.Int("minutes", req.Minutes), slog.Int64("total", stats.Total))
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Message: "stats retrieved", Data: stats})
}

func (h *Handler) badMinutes(w http.ResponseWriter, l *slog.Logger, raw string) {
	l.Warn("invalid minutes", slog.String("minutes", raw))
	h.writeJSON(w, http.StatusBadRequest, envelope{
		Message: "invalid query",
		Errors:  []domain.FieldError{{Field: "minutes", Message: "minutes must be 1-1440"}},
	})
}
