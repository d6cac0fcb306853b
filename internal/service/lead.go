package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/pagination"
	"github.com/maxviazov/lead-service/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// leadService holds lead use-case logic: validation + orchestration, no transport / SQL details.
type leadService struct {
	repo     repository.LeadRepository
	pager    *pagination.Paginator
	validate *validator.Validate
	newID    func() string
	now      func() time.Time
	defSize  int
	maxSize  int
	log      zerolog.Logger
}

type Option func(*leadService)

// WithIDGenerator replaces the UUID v4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *leadService) { s.newID = gen }
}

// WithClock replaces the clock used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *leadService) { s.now = now }
}

// WithPageSizes sets the page size used when none is requested and the upper clamp.
// Non-positive values keep the built-in defaults.
func WithPageSizes(def, max int) Option {
	return func(s *leadService) {
		if def > 0 {
			s.defSize = def
		}
		if max > 0 {
			s.maxSize = max
		}
	}
}

func NewLeadService(repo repository.LeadRepository, logger zerolog.Logger, opts ...Option) LeadService {
	s := &leadService{
		repo:     repo,
		pager:    pagination.NewPaginator(repo, logger),
		validate: newValidator(),
		newID:    uuid.NewString,
		now:      time.Now,
		defSize:  defaultPageSize,
		maxSize:  maxPageSize,
		log:      logger.With().Str("module", "service").Str("component", "lead").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defSize > s.maxSize {
		s.defSize = s.maxSize
	}
	return s
}

// stamp returns the current time at the precision every store can hold.
func (s *leadService) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *leadService) check(in model.LeadInput, prefix string) []FieldError {
	if err := s.validate.Struct(in); err != nil {
		return fieldErrors(err, prefix)
	}
	return nil
}

func (s *leadService) build(id string, in model.LeadInput) model.Lead {
	ts := s.stamp()
	return model.Lead{
		ID:          id,
		Name:        in.Name,
		JobTitle:    in.JobTitle,
		Company:     in.Company,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Industry:    in.Industry,
		Headcount:   in.Headcount,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func (s *leadService) CreateLead(ctx context.Context, in model.LeadInput) (model.Lead, error) {
	start := time.Now()
	in = normalizeInput(in)
	if ferrs := s.check(in, ""); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("lead validation failed")
		return model.Lead{}, NewInvalidInput(ferrs...)
	}

	out, err := s.repo.Create(ctx, s.build(s.newID(), in))
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Msg("create lead failed")
		return model.Lead{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("lead_id", out.ID).Msg("lead created")
	return out, nil
}

func (s *leadService) BulkCreateLeads(ctx context.Context, in []model.LeadInput) ([]model.Lead, error) {
	start := time.Now()
	if len(in) == 0 || len(in) > MaxBulkLeads {
		return nil, NewInvalidInput(FieldError{
			Field:   "leads",
			Message: fmt.Sprintf("must contain between 1 and %d items", MaxBulkLeads),
		})
	}

	var ferrs []FieldError
	leads := make([]model.Lead, 0, len(in))
	for i, item := range in {
		item = normalizeInput(item)
		if fe := s.check(item, fmt.Sprintf("leads[%d].", i)); len(fe) > 0 {
			ferrs = append(ferrs, fe...)
			continue
		}
		leads = append(leads, s.build(s.newID(), item))
	}
	if err := NewInvalidInput(ferrs...); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("bulk lead validation failed")
		return nil, err
	}

	out, err := s.repo.BulkCreate(ctx, leads)
	if err != nil {
		s.log.Error().Err(err).Int("count", len(leads)).Msg("bulk create leads failed")
		return nil, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int("count", len(out)).Msg("leads created")
	return out, nil
}

func (s *leadService) GetLead(ctx context.Context, id string) (model.Lead, error) {
	if id == "" {
		return model.Lead{}, NewInvalidInput(FieldError{Field: "id", Message: "is required"})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *leadService) UpdateLead(ctx context.Context, id string, in model.LeadInput) (model.Lead, error) {
	var ferrs []FieldError
	if id == "" {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "is required"})
	}
	in = normalizeInput(in)
	ferrs = append(ferrs, s.check(in, "")...)
	if err := NewInvalidInput(ferrs...); err != nil {
		return model.Lead{}, err
	}

	// the store keeps the original CreatedAt
	out, err := s.repo.Update(ctx, s.build(id, in))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("lead_id", id).Msg("update lead failed")
		}
		return model.Lead{}, err
	}
	s.log.Info().Str("lead_id", id).Msg("lead updated")
	return out, nil
}

func (s *leadService) DeleteLead(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("lead_id", id).Msg("delete lead failed")
		return err
	}
	if !removed {
		return repository.ErrNotFound
	}
	s.log.Info().Str("lead_id", id).Msg("lead deleted")
	return nil
}

// ListLeads applies the default page size and clamps to the maximum; anything
// else (negative sizes, min > max) is rejected by the paginator.
func (s *leadService) ListLeads(ctx context.Context, p ListParams) (pagination.Page[model.Lead], error) {
	size := p.PageSize
	switch {
	case size == 0:
		size = s.defSize
	case size > s.maxSize:
		size = s.maxSize
	}

	page, err := s.pager.List(ctx, p.Filter, p.Cursor, size)
	if err != nil {
		if !errors.Is(err, pagination.ErrInvalidArgument) {
			s.log.Error().Err(err).Int("page_size", size).Msg("list leads failed")
		}
		return pagination.Page[model.Lead]{}, err
	}
	return page, nil
}
