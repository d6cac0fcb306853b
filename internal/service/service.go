// Package service holds the lead use cases between the HTTP layer and the store.
// Kept lean: validation, identity and timestamps, error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInput builds an aggregated validation error, or nil when fe is empty.
// Handlers use it for query and path parameter problems.
func NewInvalidInput(fe ...FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// MaxBulkLeads caps a single bulk create request.
const MaxBulkLeads = 10

// ListParams is a list request after HTTP parsing. PageSize 0 selects the default.
type ListParams struct {
	Cursor   string
	PageSize int
	Filter   pagination.Filter
}

// LeadService defines lead use cases.
type LeadService interface {
	CreateLead(ctx context.Context, in model.LeadInput) (model.Lead, error)
	BulkCreateLeads(ctx context.Context, in []model.LeadInput) ([]model.Lead, error)
	GetLead(ctx context.Context, id string) (model.Lead, error)
	UpdateLead(ctx context.Context, id string, in model.LeadInput) (model.Lead, error)
	DeleteLead(ctx context.Context, id string) error
	ListLeads(ctx context.Context, p ListParams) (pagination.Page[model.Lead], error)
}
