package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportInReview ReportStatus = "IN_REVIEW"
	ReportResolved ReportStatus = "RESOLVED"
	ReportClosed   ReportStatus = "CLOSED"
)

var ReportStatuses = []ReportStatus{ReportPending, ReportInReview, ReportResolved, ReportClosed}

func ParseReportStatus(s string) (ReportStatus, error) {
	for _, st := range ReportStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown report status %q", s)
}

// Identity is either Anonymous or Identified. No other implementations exist.
type Identity interface {
	isIdentity()
}

type Anonymous struct{}

type Identified struct {
	Name    string
	Contact string
}

func (Anonymous) isIdentity()  {}
func (Identified) isIdentity() {}

// Provenance is captured once at intake and never returned by listings.
type Provenance struct {
	IPAddress string
	UserAgent string
}

// MaxIPAddressLen is the width, in characters, of the ip_address column.
const MaxIPAddressLen = 45

// Bounded returns p with both fields forced to valid UTF-8 without NUL bytes
// and the address cut to MaxIPAddressLen characters on a rune boundary.
func (p Provenance) Bounded() Provenance {
	p.IPAddress = truncateRunes(storableText(p.IPAddress), MaxIPAddressLen)
	p.UserAgent = storableText(p.UserAgent)
	return p
}

func storableText(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

type Report struct {
	ID            uuid.UUID
	CaseNumber    string
	PhoneNumber   string
	IncidentDate  time.Time
	Description   string
	HasEvidence   bool
	Identity      Identity
	TermsAccepted bool
	Status        ReportStatus
	Provenance    Provenance
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Report) IsAnonymous() bool {
	_, ok := r.Identity.(Anonymous)
	return ok
}

// Reporter returns name and contact, both nil for anonymous reports.
func (r *Report) Reporter() (name, contact *string) {
	if id, ok := r.Identity.(Identified); ok {
		return &id.Name, &id.Contact
	}
	return nil, nil
}

// ValidatedReport is a submission that passed every rule, with its free text
// already sanitized.
type ValidatedReport struct {
	PhoneNumber  string
	IncidentDate time.Time
	Description  string
	HasEvidence  bool
	Identity     Identity
}

type ReportReceipt struct {
	ReportID   uuid.UUID    `json:"reportId"`
	CaseNumber string       `json:"caseNumber"`
	Status     ReportStatus `json:"status"`
}

type ReportStatusView struct {
	ReportID   uuid.UUID    `json:"reportId"`
	CaseNumber string       `json:"caseNumber"`
	Status     ReportStatus `json:"status"`
}

type ReportSummary struct {
	ID           uuid.UUID    `json:"id"`
	CaseNumber   string       `json:"caseNumber"`
	PhoneNumber  string       `json:"phoneNumber"`
	IncidentDate time.Time    `json:"incidentDate"`
	Description  string       `json:"description"`
	HasEvidence  bool         `json:"hasEvidence"`
	IsAnonymous  bool         `json:"isAnonymous"`
	Status       ReportStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		ID:           r.ID,
		CaseNumber:   r.CaseNumber,
		PhoneNumber:  r.PhoneNumber,
		IncidentDate: r.IncidentDate,
		Description:  r.Description,
		HasEvidence:  r.HasEvidence,
		IsAnonymous:  r.IsAnonymous(),
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

func (r *Report) StatusView() ReportStatusView {
	return ReportStatusView{ReportID: r.ID, CaseNumber: r.CaseNumber, Status: r.Status}
}
