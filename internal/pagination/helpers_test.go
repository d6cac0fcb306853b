package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/maxviazov/lead-service/internal/model"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func lead(id string, createdAt time.Time, industry string, headcount *int) model.Lead {
	return model.Lead{
		ID:        id,
		Name:      "Lead " + id,
		JobTitle:  "CTO",
		Company:   "Acme",
		Email:     id + "@acme.test",
		Industry:  industry,
		Headcount: headcount,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// sliceSource serves a copy of its leads, like a real store snapshot.
type sliceSource struct {
	leads []model.Lead
	err   error
	calls int
}

func (s *sliceSource) List(_ context.Context) ([]model.Lead, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.Lead, len(s.leads))
	copy(out, s.leads)
	return out, nil
}

// mixedLeads builds n leads with colliding timestamps, rotating industries and
// every fifth headcount missing.
func mixedLeads(n int) []model.Lead {
	industries := []string{"Technology", "Healthcare", "Finance"}
	out := make([]model.Lead, 0, n)
	for i := 0; i < n; i++ {
		var hc *int
		if i%5 != 0 {
			hc = intPtr((i % 7) * 100)
		}
		// three leads share every timestamp to exercise the id tie-break
		ts := baseTime.Add(time.Duration(i/3) * time.Minute)
		out = append(out, lead(fmt.Sprintf("lead-%03d", i), ts, industries[i%len(industries)], hc))
	}
	return out
}

func ids(leads []model.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}
