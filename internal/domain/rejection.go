package domain

import (
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rejection is the closed set of reasons a submission is refused. The
// variant names the first failing rule category; FieldErrors always holds
// every field error found.
type Rejection interface {
	error
	FieldErrors() []FieldError
	Reason() string
	rejection()
}

// MalformedInput covers shape and length failures: phone, description,
// reporter name or contact.
type MalformedInput struct{ Errors []FieldError }

// InvalidDateTime means date and time do not compose into an instant.
type InvalidDateTime struct{ Errors []FieldError }

// FutureIncident means the incident is after the acceptance time.
type FutureIncident struct{ Errors []FieldError }

// RuleViolation covers terms not accepted and missing identity fields.
type RuleViolation struct{ Errors []FieldError }

func (MalformedInput) rejection()  {}
func (InvalidDateTime) rejection() {}
func (FutureIncident) rejection()  {}
func (RuleViolation) rejection()   {}

func (r MalformedInput) FieldErrors() []FieldError  { return r.Errors }
func (r InvalidDateTime) FieldErrors() []FieldError { return r.Errors }
func (r FutureIncident) FieldErrors() []FieldError  { return r.Errors }
func (r RuleViolation) FieldErrors() []FieldError   { return r.Errors }

func (MalformedInput) Reason() string  { return "malformed_input" }
func (InvalidDateTime) Reason() string { return "invalid_date_time" }
func (FutureIncident) Reason() string  { return "future_incident" }
func (RuleViolation) Reason() string   { return "rule_violation" }

func (r MalformedInput) Error() string  { return rejectionError(r) }
func (r InvalidDateTime) Error() string { return rejectionError(r) }
func (r FutureIncident) Error() string  { return rejectionError(r) }
func (r RuleViolation) Error() string   { return rejectionError(r) }

func rejectionError(r Rejection) string {
	parts := make([]string, 0, len(r.FieldErrors()))
	for _, fe := range r.FieldErrors() {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("report rejected (%s): %s", r.Reason(), strings.Join(parts, "; "))
}
