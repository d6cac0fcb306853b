package pagination

import (
	"fmt"

	"github.com/maxviazov/lead-service/internal/model"
)

// Filter selects leads by industry membership and an inclusive headcount range.
// A zero-value dimension is unconstrained.
type Filter struct {
	Industries   []string
	MinHeadcount *int
	MaxHeadcount *int
}

// Validate rejects a contradictory headcount range.
func (f Filter) Validate() error {
	if f.MinHeadcount != nil && f.MaxHeadcount != nil && *f.MinHeadcount > *f.MaxHeadcount {
		return fmt.Errorf("%w: min_headcount %d is greater than max_headcount %d",
			ErrInvalidArgument, *f.MinHeadcount, *f.MaxHeadcount)
	}
	return nil
}

// Predicate compiles the filter into a pure match function.
// The criteria are copied, so later changes to f do not leak into the returned func.
// A lead without headcount never satisfies a headcount bound.
func (f Filter) Predicate() func(model.Lead) bool {
	var industries map[string]struct{}
	if len(f.Industries) > 0 {
		industries = make(map[string]struct{}, len(f.Industries))
		for _, ind := range f.Industries {
			industries[ind] = struct{}{}
		}
	}

	hasMin, hasMax := f.MinHeadcount != nil, f.MaxHeadcount != nil
	var lo, hi int
	if hasMin {
		lo = *f.MinHeadcount
	}
	if hasMax {
		hi = *f.MaxHeadcount
	}

	return func(l model.Lead) bool {
		if industries != nil {
			if _, ok := industries[l.Industry]; !ok {
				return false
			}
		}
		if hasMin && (l.Headcount == nil || *l.Headcount < lo) {
			return false
		}
		if hasMax && (l.Headcount == nil || *l.Headcount > hi) {
			return false
		}
		return true
	}
}
