package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/repository"
	"github.com/maxviazov/lead-service/internal/repository/contract"
	"github.com/maxviazov/lead-service/internal/repository/sqlite"
)

func openTemp(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "leads.db"), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestSQLiteStore_Contract(t *testing.T) {
	contract.RunLeadRepositoryContract(t, func(t *testing.T) (repository.LeadRepository, func()) {
		s := openTemp(t)
		return s, func() { _ = s.Close() }
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "leads.db")
	ctx := context.Background()
	ts := time.Date(2024, 2, 29, 23, 59, 59, 987654321, time.UTC)

	s, err := sqlite.Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	_, err = s.Create(ctx, model.Lead{
		ID: "keep", Name: "n", JobTitle: "j", Company: "c", Email: "e@example.com",
		Industry: "Technology", CreatedAt: ts, UpdatedAt: ts,
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = sqlite.Open(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.GetByID(ctx, "keep")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(ts), "nanoseconds survive the text encoding")
	assert.Nil(t, got.Headcount)
}

func TestSQLiteStore_ListOrder(t *testing.T) {
	s := openTemp(t)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range []struct {
		id string
		at time.Time
	}{
		{"a", base},
		{"b", base.Add(9 * time.Second)},
		{"c", base.Add(10 * time.Second)},
		{"d", base.Add(10 * time.Second)},
	} {
		_, err := s.Create(ctx, model.Lead{ID: c.id, Name: "n", JobTitle: "j", Company: "c",
			Email: "e@example.com", Industry: "Retail", CreatedAt: c.at, UpdatedAt: c.at})
		require.NoError(t, err)
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, l := range all {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)
}
