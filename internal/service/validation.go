package service

import (
	"strings"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/domain"
	"github.com/DanielMat97/BackendExtorApp/pkg/normalize"
	"github.com/DanielMat97/BackendExtorApp/pkg/validator"
)

const (
	msgInvalidDateTime  = "invalid date or time"
	msgFutureIncident   = "incident date cannot be in the future"
	msgTermsNotAccepted = "terms and conditions must be accepted"
)

// Field names match the json keys of domain.CreateReportRequest.
type contentFields struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,colphone"`
	Description string `json:"description" validate:"required,min=10,max=1000"`
}

type identityFields struct {
	ReporterName    string `json:"reporterName" validate:"required,min=2,max=100"`
	ReporterContact string `json:"reporterContact" validate:"required,min=7,max=50"`
}

var fieldMessages = map[string]map[string]string{
	"phoneNumber": {
		"required": "phone number is required",
		"colphone": "invalid Colombian phone number: use 10 digits, optionally prefixed with +57",
	},
	"description": {
		"required": "description is required",
		"min":      "description must be at least 10 characters",
		"max":      "description cannot exceed 1000 characters",
	},
	"reporterName": {
		"required": "reporter name is required unless the report is anonymous",
		"min":      "reporter name must be at least 2 characters",
		"max":      "reporter name cannot exceed 100 characters",
	},
	"reporterContact": {
		"required": "reporter contact is required unless the report is anonymous",
		"min":      "reporter contact must be at least 7 characters",
		"max":      "reporter contact cannot exceed 50 characters",
	},
}

type ruleCategory int

const (
	categoryMalformed ruleCategory = iota + 1
	categoryDateTime
	categoryFuture
	categoryRule
)

type rejectionBuilder struct {
	first  ruleCategory
	errors []domain.FieldError
}

func (b *rejectionBuilder) add(c ruleCategory, field, message string) {
	if b.first == 0 {
		b.first = c
	}
	b.errors = append(b.errors, domain.FieldError{Field: field, Message: message})
}

func (b *rejectionBuilder) rejection() domain.Rejection {
	switch b.first {
	case 0:
		return nil
	case categoryDateTime:
		return domain.InvalidDateTime{Errors: b.errors}
	case categoryFuture:
		return domain.FutureIncident{Errors: b.errors}
	case categoryRule:
		return domain.RuleViolation{Errors: b.errors}
	default:
		return domain.MalformedInput{Errors: b.errors}
	}
}

// ReportValidator checks a raw submission and produces the record to store.
// It holds no state.
type ReportValidator struct{}

func NewReportValidator() *ReportValidator {
	return &ReportValidator{}
}

// Validate applies, in order: phone shape, date/time composition, future
// date, description, identity fields unless anonymous, and terms. Every field
// error is collected; the returned domain.Rejection variant is chosen by the
// first rule that failed. Free text is sanitized only once everything passed.
func (v *ReportValidator) Validate(req domain.CreateReportRequest, now time.Time) (*domain.ValidatedReport, error) {
	var b rejectionBuilder

	content := contentFields{
		PhoneNumber: req.PhoneNumber,
		Description: strings.TrimSpace(req.Description),
	}
	contentViolations, err := validator.Violations(content)
	if err != nil {
		return nil, err
	}
	byField := groupViolations(contentViolations)

	addFieldViolations(&b, categoryMalformed, "phoneNumber", byField)

	incidentAt, ok := normalize.ComposeTimestamp(req.Date, req.Time, now)
	switch {
	case !ok:
		b.add(categoryDateTime, "date", msgInvalidDateTime)
	case incidentAt.After(now):
		b.add(categoryFuture, "date", msgFutureIncident)
	}

	addFieldViolations(&b, categoryMalformed, "description", byField)

	if !req.Anonymous {
		identity := identityFields{
			ReporterName:    strings.TrimSpace(req.ReporterName),
			ReporterContact: strings.TrimSpace(req.ReporterContact),
		}
		identityViolations, err := validator.Violations(identity)
		if err != nil {
			return nil, err
		}
		byField := groupViolations(identityViolations)
		addFieldViolations(&b, categoryMalformed, "reporterName", byField)
		addFieldViolations(&b, categoryMalformed, "reporterContact", byField)
	}

	if accepted, isBool := req.TermsAccepted.(bool); !isBool || !accepted {
		b.add(categoryRule, "termsAccepted", msgTermsNotAccepted)
	}

	if rej := b.rejection(); rej != nil {
		return nil, rej
	}

	out := &domain.ValidatedReport{
		PhoneNumber:  normalize.NormalizePhone(req.PhoneNumber),
		IncidentDate: incidentAt,
		Description:  normalize.SanitizeText(req.Description),
		HasEvidence:  req.HasEvidence,
		Identity:     domain.Anonymous{},
	}
	if !req.Anonymous {
		out.Identity = domain.Identified{
			Name:    normalize.SanitizeText(req.ReporterName),
			Contact: normalize.SanitizeText(req.ReporterContact),
		}
	}

	// Input made only of control characters passes the length rules but
	// sanitizes to nothing.
	var post rejectionBuilder
	if out.Description == "" {
		post.add(categoryMalformed, "description", "description must contain visible characters")
	}
	if id, ok := out.Identity.(domain.Identified); ok {
		if id.Name == "" {
			post.add(categoryMalformed, "reporterName", "reporter name must contain visible characters")
		}
		if id.Contact == "" {
			post.add(categoryMalformed, "reporterContact", "reporter contact must contain visible characters")
		}
	}
	if rej := post.rejection(); rej != nil {
		return nil, rej
	}

	return out, nil
}

func groupViolations(vs []validator.Violation) map[string][]validator.Violation {
	out := make(map[string][]validator.Violation, len(vs))
	for _, v := range vs {
		out[v.Field] = append(out[v.Field], v)
	}
	return out
}

// Missing identity fields are a business rule, any other failure is malformed input.
func addFieldViolations(b *rejectionBuilder, c ruleCategory, field string, byField map[string][]validator.Violation) {
	for _, v := range byField[field] {
		cat := c
		if v.Tag == "required" && (field == "reporterName" || field == "reporterContact") {
			cat = categoryRule
		}
		msg, ok := fieldMessages[field][v.Tag]
		if !ok {
			msg = field + " is invalid"
		}
		b.add(cat, field, msg)
	}
}
