package domain

import "time"

// CreateReportRequest is the submission as received. TermsAccepted is left
// untyped so that "true", 1 or null reach validation instead of failing decode.
type CreateReportRequest struct {
	PhoneNumber     string `json:"phoneNumber"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Description     string `json:"description"`
	HasEvidence     bool   `json:"hasEvidence"`
	Anonymous       bool   `json:"anonymous"`
	ReporterName    string `json:"reporterName,omitempty"`
	ReporterContact string `json:"reporterContact,omitempty"`
	TermsAccepted   any    `json:"termsAccepted"`
}

type ListReportsRequest struct {
	Page      int
	Limit     int
	Status    string
	StartDate string
	EndDate   string
}

// ReportFilter is the parsed store-side form of a listing request.
type ReportFilter struct {
	Status *ReportStatus
	From   *time.Time
	To     *time.Time
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type ReportPage struct {
	Reports    []ReportSummary `json:"reports"`
	Pagination Pagination      `json:"pagination"`
}
