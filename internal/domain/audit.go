package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditKind string

const (
	AuditReportAccepted AuditKind = "report.accepted"
	AuditReportRejected AuditKind = "report.rejected"
	AuditReportConflict AuditKind = "report.allocation_exhausted"
	AuditReportFailed   AuditKind = "report.store_failed"
)

type AuditEvent struct {
	Kind       AuditKind    `json:"kind"`
	ReportID   *uuid.UUID   `json:"report_id,omitempty"`
	CaseNumber string       `json:"case_number,omitempty"`
	Anonymous  *bool        `json:"anonymous,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	Fields     []FieldError `json:"fields,omitempty"`
	IPAddress  string       `json:"ip_address,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}
