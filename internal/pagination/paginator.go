package pagination

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/model"
)

// Source hands out point-in-time snapshots of all leads.
// The returned slice must be a copy the paginator may reorder freely.
type Source interface {
	List(ctx context.Context) ([]model.Lead, error)
}

// Paginator composes filtering, ordering, cursor resolution and windowing
// into a single list call over one frozen snapshot.
type Paginator struct {
	src Source
	log zerolog.Logger
}

func NewPaginator(src Source, logger zerolog.Logger) *Paginator {
	l := logger.With().Str("module", "pagination").Str("component", "paginator").Logger()
	return &Paginator{src: src, log: l}
}

// List returns the page of leads matching f that follows cursor.
// total, items and cursors are all derived from the same snapshot, so concurrent
// writers cannot make them disagree. Either a full page or an error is returned.
func (p *Paginator) List(ctx context.Context, f Filter, cursor string, pageSize int) (Page[model.Lead], error) {
	if pageSize < 1 {
		return Page[model.Lead]{}, fmt.Errorf("%w: page_size must be >= 1, got %d", ErrInvalidArgument, pageSize)
	}
	if err := f.Validate(); err != nil {
		return Page[model.Lead]{}, err
	}

	snapshot, err := p.src.List(ctx)
	if err != nil {
		return Page[model.Lead]{}, fmt.Errorf("snapshot leads: %w", err)
	}

	match := f.Predicate()
	filtered := make([]model.Lead, 0, len(snapshot))
	for _, l := range snapshot {
		if match(l) {
			filtered = append(filtered, l)
		}
	}
	SortLeads(filtered)

	page := Window(filtered, KeyOf, cursor, pageSize)
	if page.CursorReset {
		p.log.Debug().
			Str("cursor", cursor).
			Int("total", page.Total).
			Msg("cursor did not resolve, restarted from first page")
	}
	return page, nil
}
