// Package seed generates deterministic fake leads and loads them into empty stores.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/repository"
)

var Industries = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"Manufacturing",
	"Retail",
	"Education",
	"Real Estate",
	"Consulting",
	"Marketing",
	"E-commerce",
}

var Headcounts = []int{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

const (
	// percentages of leads generated without the optional field
	noPhonePct     = 30
	noHeadcountPct = 20

	// created_at is spread over this window before the generator's clock
	spread = 90 * 24 * time.Hour

	insertBatch = 100
)

// Generator produces the same sequence of leads for the same seed and clock.
type Generator struct {
	f   *gofakeit.Faker
	now time.Time
}

func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{f: gofakeit.New(uint64(seed)), now: now.UTC().Truncate(time.Microsecond)}
}

func (g *Generator) Lead() model.Lead {
	name := g.f.Name()
	company := g.f.Company()
	l := model.Lead{
		ID:       g.f.UUID(),
		Name:     name,
		JobTitle: g.f.JobTitle(),
		Company:  company,
		Email:    companyEmail(g.f, name, company),
		Industry: Industries[g.f.Number(0, len(Industries)-1)],
	}
	if g.f.Number(1, 100) > noPhonePct {
		p := g.f.Phone()
		l.PhoneNumber = &p
	}
	if g.f.Number(1, 100) > noHeadcountPct {
		h := Headcounts[g.f.Number(0, len(Headcounts)-1)]
		l.Headcount = &h
	}
	age := time.Duration(g.f.Number(0, int(spread/time.Second))) * time.Second
	l.CreatedAt = g.now.Add(-age)
	l.UpdatedAt = l.CreatedAt
	return l
}

func (g *Generator) Leads(n int) []model.Lead {
	out := make([]model.Lead, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Lead())
	}
	return out
}

// companyEmail builds first.last@company.example so the address always validates.
func companyEmail(f *gofakeit.Faker, name, company string) string {
	local := strings.ToLower(strings.Join(strings.Fields(keepAlnum(name)), "."))
	domain := strings.ToLower(strings.Join(strings.Fields(keepAlnum(company)), ""))
	if local == "" {
		local = f.Username()
	}
	if domain == "" {
		domain = "company"
	}
	return local + "@" + domain + ".example"
}

func keepAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Load inserts count generated leads in batches and returns how many were written.
func Load(ctx context.Context, repo repository.LeadRepository, g *Generator, count int) (int, error) {
	written := 0
	for written < count {
		n := min(insertBatch, count-written)
		if _, err := repo.BulkCreate(ctx, g.Leads(n)); err != nil {
			return written, fmt.Errorf("seed batch at %d: %w", written, err)
		}
		written += n
	}
	return written, nil
}

// IfEmpty seeds the store only when it holds no leads, so restarts of a
// persistent store don't pile up fake data.
func IfEmpty(ctx context.Context, repo repository.LeadRepository, count int, seed int64, logger zerolog.Logger) (int, error) {
	log := logger.With().Str("module", "seed").Logger()
	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	if existing > 0 || count <= 0 {
		log.Debug().Int("existing", existing).Msg("seeding skipped")
		return 0, nil
	}
	n, err := Load(ctx, repo, NewGenerator(seed, time.Now()), count)
	if err != nil {
		return n, err
	}
	log.Info().Int("count", n).Int64("seed", seed).Msg("seeded leads")
	return n, nil
}
