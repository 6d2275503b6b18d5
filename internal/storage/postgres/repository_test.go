//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/internal/service"
	"github.com/DanielMat97/BackendExtorApp/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	hostPort := fmt.Sprintf("%s:%s", host, mappedPort.Port())
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", user, pass, hostPort, db)

	if err := Migrate(fmt.Sprintf("pgx5://%s:%s@%s/%s?sslmode=disable", user, pass, hostPort, db)); err != nil {
		fmt.Println("migrate:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func truncateReports(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE reports`)
	if err != nil {
		t.Fatalf("truncate reports: %v", err)
	}
}

func newReport(caseNumber string, createdAt time.Time, identity domain.Identity) *domain.Report {
	return &domain.Report{
		ID:            uuid.New(),
		CaseNumber:    caseNumber,
		PhoneNumber:   "+573001234567",
		IncidentDate:  createdAt.Add(-time.Hour),
		Description:   "a valid incident description",
		Identity:      identity,
		TermsAccepted: true,
		Status:        domain.ReportPending,
		Provenance:    domain.Provenance{IPAddress: "10.0.0.1", UserAgent: "test-agent"},
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestReports_Insert_RoundTrip(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())
	ctx := context.Background()

	at := time.Date(2024, 12, 15, 19, 30, 0, 0, time.UTC)
	r := newReport("EXT-2024-000001", at, domain.Identified{Name: "Juan P&eacute;rez", Contact: "3009876543"})

	if err := repo.Insert(ctx, r); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.FindByCaseNumber(ctx, "EXT-2024-000001")
	if err != nil {
		t.Fatalf("FindByCaseNumber: %v", err)
	}
	if got.ID != r.ID || got.Status != domain.ReportPending {
		t.Fatalf("unexpected row: %+v", got)
	}
	id, ok := got.Identity.(domain.Identified)
	if !ok || id.Name != "Juan P&eacute;rez" || id.Contact != "3009876543" {
		t.Fatalf("identity mismatch: %#v", got.Identity)
	}
	if got.Provenance.IPAddress != "10.0.0.1" || got.Provenance.UserAgent != "test-agent" {
		t.Fatalf("provenance mismatch: %+v", got.Provenance)
	}

	byID, err := repo.FindByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.CaseNumber != r.CaseNumber || !byID.IncidentDate.Equal(r.IncidentDate) {
		t.Fatalf("unexpected row: %+v", byID)
	}
}

func TestReports_Insert_UnsafeProvenance(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())
	ctx := context.Background()

	r := newReport("EXT-2024-000001", time.Now().UTC(), domain.Anonymous{})
	r.Provenance = domain.Provenance{
		IPAddress: "1.2.3.4," + strings.Repeat("é", 25),
		UserAgent: "agent\xff/1.0\x00",
	}
	if err := repo.Insert(ctx, r); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.FindByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if n := utf8.RuneCountInString(got.Provenance.IPAddress); n != domain.MaxIPAddressLen {
		t.Fatalf("expected %d characters got %d", domain.MaxIPAddressLen, n)
	}
	if got.Provenance.UserAgent != "agent/1.0" {
		t.Fatalf("unexpected user agent %q", got.Provenance.UserAgent)
	}
}

func TestReports_Anonymous_StoresNullReporter(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())
	ctx := context.Background()

	r := newReport("EXT-2024-000001", time.Now().UTC(), domain.Anonymous{})
	if err := repo.Insert(ctx, r); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var nameIsNull, contactIsNull bool
	err := testPool.QueryRow(ctx,
		`SELECT reporter_name IS NULL, reporter_contact IS NULL FROM reports WHERE id = $1`, r.ID,
	).Scan(&nameIsNull, &contactIsNull)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !nameIsNull || !contactIsNull {
		t.Fatalf("anonymous report must have NULL reporter fields")
	}
}

func TestReports_Insert_IdentityCheckConstraint(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())

	r := newReport("EXT-2024-000001", time.Now().UTC(), domain.Identified{Name: "", Contact: "3009876543"})
	err := repo.Insert(context.Background(), r)
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got: %v", err)
	}
}

func TestReports_Insert_DuplicateCaseNumber(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	if err := repo.Insert(ctx, newReport("EXT-2024-000001", now, domain.Anonymous{})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err := repo.Insert(ctx, newReport("EXT-2024-000001", now, domain.Anonymous{}))
	if !errors.Is(err, e.ErrUniqueViolation) {
		t.Fatalf("expected ErrUniqueViolation, got: %v", err)
	}
}

func TestReports_NotFound(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())

	if _, err := repo.FindByID(context.Background(), uuid.New()); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if _, err := repo.FindByCaseNumber(context.Background(), "EXT-2024-999999"); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestReports_MaxSequenceForPrefix(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())
	ctx := context.Background()

	_, found, err := repo.MaxSequenceForPrefix(ctx, "EXT-2024")
	if err != nil || found {
		t.Fatalf("empty partition: found=%v err=%v", found, err)
	}

	now := time.Now().UTC()
	for _, cn := range []string{"EXT-2023-000950", "EXT-2024-000002", "EXT-2024-000010", "EXT-2024-000009"} {
		if err := repo.Insert(ctx, newReport(cn, now, domain.Anonymous{})); err != nil {
			t.Fatalf("Insert %s: %v", cn, err)
		}
	}

	got, found, err := repo.MaxSequenceForPrefix(ctx, "EXT-2024")
	if err != nil || !found || got != 10 {
		t.Fatalf("expected 10, got=%d found=%v err=%v", got, found, err)
	}

	got, found, err = repo.MaxSequenceForPrefix(ctx, "EXT-2023")
	if err != nil || !found || got != 950 {
		t.Fatalf("expected 950, got=%d found=%v err=%v", got, found, err)
	}
}

func TestReports_QueryPage_FiltersAndOrder(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())
	ctx := context.Background()

	base := time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		r := newReport(fmt.Sprintf("EXT-2024-%06d", i+1), base.Add(time.Duration(i)*time.Hour), domain.Anonymous{})
		r.IncidentDate = base.AddDate(0, 0, i)
		if err := repo.Insert(ctx, r); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	tie := newReport("EXT-2024-000006", base.Add(4*time.Hour), domain.Anonymous{})
	if err := repo.Insert(ctx, tie); err != nil {
		t.Fatalf("Insert tie: %v", err)
	}
	if _, err := testPool.Exec(ctx, `UPDATE reports SET status = 'RESOLVED' WHERE case_number = 'EXT-2024-000002'`); err != nil {
		t.Fatalf("update: %v", err)
	}

	all, total, err := repo.QueryPage(ctx, domain.ReportFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("QueryPage: %v", err)
	}
	if total != 6 || len(all) != 6 {
		t.Fatalf("expected 6 got total=%d len=%d", total, len(all))
	}
	if all[0].CaseNumber != "EXT-2024-000006" || all[1].CaseNumber != "EXT-2024-000005" {
		t.Fatalf("expected newest first with later insert breaking ties, got %s, %s", all[0].CaseNumber, all[1].CaseNumber)
	}

	page2, total, err := repo.QueryPage(ctx, domain.ReportFilter{}, 4, 4)
	if err != nil || total != 6 || len(page2) != 2 {
		t.Fatalf("page2: total=%d len=%d err=%v", total, len(page2), err)
	}

	resolved := domain.ReportResolved
	byStatus, total, err := repo.QueryPage(ctx, domain.ReportFilter{Status: &resolved}, 0, 10)
	if err != nil || total != 1 || byStatus[0].CaseNumber != "EXT-2024-000002" {
		t.Fatalf("status filter: total=%d err=%v", total, err)
	}

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)
	ranged, total, err := repo.QueryPage(ctx, domain.ReportFilter{From: &from, To: &to}, 0, 10)
	if err != nil || total != 3 || len(ranged) != 3 {
		t.Fatalf("date filter: total=%d len=%d err=%v", total, len(ranged), err)
	}
}

func TestIntake_ConcurrentSubmissions_UniqueCaseNumbers(t *testing.T) {
	truncateReports(t)
	repo := NewReportsRepo(testPool, testLogger())

	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	intake := service.NewIntakeService(repo, nil, nil, testLogger(), service.IntakeConfig{
		MaxAttempts: 3,
		Now:         func() time.Time { return now },
	})

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		accepted  []string
		exhausted int
		other     []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := intake.Submit(context.Background(), domain.CreateReportRequest{
				PhoneNumber:   "3001234567",
				Date:          "15/12/2024",
				Time:          "14:30",
				Description:   "a valid incident description",
				Anonymous:     true,
				TermsAccepted: true,
			}, domain.Provenance{IPAddress: "10.0.0.1"})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted = append(accepted, receipt.CaseNumber)
			case errors.Is(err, e.ErrConflictExhausted):
				exhausted++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	if len(other) > 0 {
		t.Fatalf("unexpected errors: %v", other)
	}
	if len(accepted)+exhausted != n {
		t.Fatalf("accepted=%d exhausted=%d want sum %d", len(accepted), exhausted, n)
	}

	shape := regexp.MustCompile(`^EXT-2024-\d{6}$`)
	seen := make(map[string]bool, len(accepted))
	for _, cn := range accepted {
		if !shape.MatchString(cn) {
			t.Fatalf("bad case number %q", cn)
		}
		if seen[cn] {
			t.Fatalf("duplicate case number %q", cn)
		}
		seen[cn] = true
	}

	var rows int
	if err := testPool.QueryRow(context.Background(), `SELECT COUNT(*) FROM reports`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != len(accepted) {
		t.Fatalf("expected %d rows, got %d", len(accepted), rows)
	}
}
