package repository

import (
	"context"

	"github.com/maxviazov/lead-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LeadRepository declares the primitive record operations every lead store provides.
// It owns no ordering or filtering; that belongs to the pagination engine.
// Implementations write whole values atomically, so readers never see a half-written lead.
type LeadRepository interface {
	// Create stores a new lead. A duplicate ID yields ErrAlreadyExists.
	Create(ctx context.Context, l model.Lead) (model.Lead, error)
	// BulkCreate stores all leads or none of them.
	BulkCreate(ctx context.Context, leads []model.Lead) ([]model.Lead, error)
	GetByID(ctx context.Context, id string) (model.Lead, error)
	// Update replaces the editable fields of an existing lead and stamps UpdatedAt.
	// The stored CreatedAt always wins over the one passed in.
	Update(ctx context.Context, l model.Lead) (model.Lead, error)
	// Delete reports whether a lead was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns a point-in-time copy of every lead. The caller owns the slice.
	List(ctx context.Context) ([]model.Lead, error)
	Count(ctx context.Context) (int, error)
}

// Store is a lead repository that can also report readiness and release its resources.
type Store interface {
	LeadRepository
	Pinger
	Close() error
}
