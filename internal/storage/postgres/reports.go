package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reportColumns = `
	id, case_number, phone_number, incident_date, description, has_evidence,
	is_anonymous, reporter_name, reporter_contact, terms_accepted, status::text,
	ip_address, user_agent, created_at, updated_at`

type ReportsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReportsRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReportsRepo {
	return &ReportsRepo{pool: pool, logger: logger}
}

// Insert writes a new report. A taken case number surfaces as e.ErrUniqueViolation.
func (p *ReportsRepo) Insert(ctx context.Context, r *domain.Report) error {
	const op = "postgres.Report.Insert"

	const query = `
		INSERT INTO reports (
			id, case_number, phone_number, incident_date, description, has_evidence,
			is_anonymous, reporter_name, reporter_contact, terms_accepted, status,
			ip_address, user_agent, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::report_status, $12, $13, $14, $15)
	`

	name, contact := r.Reporter()
	origin := r.Provenance.Bounded()

	_, err := p.pool.Exec(ctx, query,
		r.ID,
		r.CaseNumber,
		r.PhoneNumber,
		r.IncidentDate,
		r.Description,
		r.HasEvidence,
		r.IsAnonymous(),
		name,
		contact,
		r.TermsAccepted,
		string(r.Status),
		origin.IPAddress,
		origin.UserAgent,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		wrapped := e.WrapError(ctx, op, err)
		level := slog.LevelError
		if errors.Is(wrapped, e.ErrUniqueViolation) {
			level = slog.LevelWarn
		}
		p.logger.Log(ctx, level, "db exec failed",
			slog.String("op", op),
			slog.String("case_number", r.CaseNumber),
			slog.Any("error", err),
		)
		return wrapped
	}

	return nil
}

func (p *ReportsRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	const op = "postgres.Report.FindByID"

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	r, err := scanReport(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, p.queryError(ctx, op, err, slog.String("id", id.String()))
	}
	return r, nil
}

func (p *ReportsRepo) FindByCaseNumber(ctx context.Context, caseNumber string) (*domain.Report, error) {
	const op = "postgres.Report.FindByCaseNumber"

	query := `SELECT ` + reportColumns + ` FROM reports WHERE case_number = $1`

	r, err := scanReport(p.pool.QueryRow(ctx, query, caseNumber))
	if err != nil {
		return nil, p.queryError(ctx, op, err, slog.String("case_number", caseNumber))
	}
	return r, nil
}

// MaxSequenceForPrefix returns the highest sequence issued under prefix
// (e.g. EXT-2024), or found=false when the partition is empty.
func (p *ReportsRepo) MaxSequenceForPrefix(ctx context.Context, prefix string) (int, bool, error) {
	const op = "postgres.Report.MaxSequenceForPrefix"

	const query = `
		SELECT MAX(split_part(case_number, '-', 3)::int)
		FROM reports
		WHERE case_number LIKE $1
	`

	var last *int
	if err := p.pool.QueryRow(ctx, query, prefix+"-%").Scan(&last); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("prefix", prefix))
		return 0, false, e.WrapError(ctx, op, err)
	}
	if last == nil {
		return 0, false, nil
	}
	return *last, true, nil
}

func (p *ReportsRepo) QueryPage(ctx context.Context, f domain.ReportFilter, offset, limit int) ([]*domain.Report, int64, error) {
	const op = "postgres.Report.QueryPage"

	where, args := filterClause(f)

	countQuery := `SELECT COUNT(*) FROM reports` + where

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`SELECT %s FROM reports%s
		ORDER BY created_at DESC, row_id DESC
		LIMIT $%d OFFSET $%d`, reportColumns, where, len(args)-1, len(args))

	rows, err := p.pool.Query(ctx, listQuery, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return reports, total, nil
}

func filterClause(f domain.ReportFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Status != nil {
		args = append(args, string(*f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d::report_status", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("incident_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("incident_date <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		r                    domain.Report
		anonymous            bool
		name, contact        *string
		status               string
		ipAddress, userAgent *string
	)
	if err := row.Scan(
		&r.ID,
		&r.CaseNumber,
		&r.PhoneNumber,
		&r.IncidentDate,
		&r.Description,
		&r.HasEvidence,
		&anonymous,
		&name,
		&contact,
		&r.TermsAccepted,
		&status,
		&ipAddress,
		&userAgent,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = domain.ReportStatus(status)
	r.Identity = domain.Anonymous{}
	if !anonymous && name != nil && contact != nil {
		r.Identity = domain.Identified{Name: *name, Contact: *contact}
	}
	if ipAddress != nil {
		r.Provenance.IPAddress = *ipAddress
	}
	if userAgent != nil {
		r.Provenance.UserAgent = *userAgent
	}
	return &r, nil
}

func (p *ReportsRepo) queryError(ctx context.Context, op string, err error, attrs ...any) error {
	wrapped := e.WrapError(ctx, op, err)
	if !errors.Is(wrapped, e.ErrNotFound) {
		p.logger.Error("db queryrow scan failed", append([]any{slog.String("op", op), slog.Any("error", err)}, attrs...)...)
	}
	return wrapped
}
