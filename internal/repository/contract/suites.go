// Package contract holds behavior suites every repository implementation must pass.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/repository"
)

// LeadFactory returns an empty store plus its cleanup.
type LeadFactory func(t *testing.T) (repository.LeadRepository, func())

// base is truncated to microseconds, the coarsest precision among the backends.
var base = time.Date(2024, 5, 1, 9, 30, 0, 123456000, time.UTC)

func newLead(id string, offset time.Duration, industry string, headcount *int) model.Lead {
	phone := "+1-555-0100"
	ts := base.Add(offset)
	return model.Lead{
		ID:          id,
		Name:        "Name " + id,
		JobTitle:    "Head of Sales",
		Company:     "Company " + id,
		Email:       id + "@example.com",
		PhoneNumber: &phone,
		Industry:    industry,
		Headcount:   headcount,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func intPtr(v int) *int { return &v }

func sameLead(t *testing.T, want, got model.Lead) {
	t.Helper()
	if got.ID != want.ID || got.Name != want.Name || got.JobTitle != want.JobTitle ||
		got.Company != want.Company || got.Email != want.Email || got.Industry != want.Industry {
		t.Fatalf("lead mismatch:\nwant %+v\n got %+v", want, got)
	}
	if (got.Headcount == nil) != (want.Headcount == nil) || (got.Headcount != nil && *got.Headcount != *want.Headcount) {
		t.Fatalf("headcount mismatch: want %v got %v", want.Headcount, got.Headcount)
	}
	if (got.PhoneNumber == nil) != (want.PhoneNumber == nil) || (got.PhoneNumber != nil && *got.PhoneNumber != *want.PhoneNumber) {
		t.Fatalf("phone mismatch: want %v got %v", want.PhoneNumber, got.PhoneNumber)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at mismatch: want %s got %s", want.CreatedAt, got.CreatedAt)
	}
}

func RunLeadRepositoryContract(t *testing.T, makeRepo LeadFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := newLead("lead-1", 0, "Technology", intPtr(250))
		created, err := repo.Create(ctx, in)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		sameLead(t, in, created)
		got, err := repo.GetByID(ctx, "lead-1")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		sameLead(t, in, got)
	})

	t.Run("optional_fields_round_trip_as_nil", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := newLead("lead-nil", 0, "Retail", nil)
		in.PhoneNumber = nil
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, "lead-nil")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Headcount != nil || got.PhoneNumber != nil {
			t.Fatalf("expected nil optional fields, got headcount=%v phone=%v", got.Headcount, got.PhoneNumber)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), "missing")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_duplicate_id", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, newLead("dup", 0, "Finance", nil)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, newLead("dup", time.Minute, "Finance", nil))
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("bulk_create_all_or_nothing", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, newLead("taken", 0, "Finance", nil)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		batch := []model.Lead{
			newLead("fresh-1", time.Second, "Retail", nil),
			newLead("taken", 2*time.Second, "Retail", nil),
		}
		if _, err := repo.BulkCreate(ctx, batch); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		if _, err := repo.GetByID(ctx, "fresh-1"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("partial bulk insert leaked fresh-1: %v", err)
		}

		ok := []model.Lead{
			newLead("fresh-1", time.Second, "Retail", nil),
			newLead("fresh-2", 2*time.Second, "Retail", intPtr(10)),
		}
		out, err := repo.BulkCreate(ctx, ok)
		if err != nil {
			t.Fatalf("bulk create: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 created, got %d", len(out))
		}
		n, err := repo.Count(ctx)
		if err != nil || n != 3 {
			t.Fatalf("expected count 3, got %d (%v)", n, err)
		}
	})

	t.Run("update_keeps_created_at", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		orig := newLead("upd", 0, "Technology", intPtr(50))
		if _, err := repo.Create(ctx, orig); err != nil {
			t.Fatalf("seed: %v", err)
		}

		change := orig
		change.Company = "Renamed Inc"
		change.Headcount = intPtr(75)
		change.CreatedAt = base.Add(72 * time.Hour)
		updated, err := repo.Update(ctx, change)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !updated.CreatedAt.Equal(orig.CreatedAt) {
			t.Fatalf("created_at changed: %s -> %s", orig.CreatedAt, updated.CreatedAt)
		}
		if updated.UpdatedAt.Before(orig.UpdatedAt) {
			t.Fatalf("updated_at not stamped: %s", updated.UpdatedAt)
		}

		got, err := repo.GetByID(ctx, "upd")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Company != "Renamed Inc" || got.Headcount == nil || *got.Headcount != 75 {
			t.Fatalf("update not persisted: %+v", got)
		}
		if !got.CreatedAt.Equal(orig.CreatedAt) {
			t.Fatalf("stored created_at changed: %s", got.CreatedAt)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Update(context.Background(), newLead("ghost", 0, "Retail", nil))
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, newLead("del", 0, "Retail", nil)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		removed, err := repo.Delete(ctx, "del")
		if err != nil || !removed {
			t.Fatalf("expected removal, got %v (%v)", removed, err)
		}
		removed, err = repo.Delete(ctx, "del")
		if err != nil || removed {
			t.Fatalf("expected no-op second delete, got %v (%v)", removed, err)
		}
		if _, err := repo.GetByID(ctx, "del"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("list_and_count", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			// pairs share a timestamp
			l := newLead(fmt.Sprintf("L-%d", i), time.Duration(i/2)*time.Minute, "Healthcare", intPtr(i+1))
			if _, err := repo.Create(ctx, l); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		all, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 7 {
			t.Fatalf("expected 7 leads, got %d", len(all))
		}
		n, err := repo.Count(ctx)
		if err != nil || n != 7 {
			t.Fatalf("expected count 7, got %d (%v)", n, err)
		}
		seen := map[string]bool{}
		for _, l := range all {
			if seen[l.ID] {
				t.Fatalf("duplicate %s in list", l.ID)
			}
			seen[l.ID] = true
		}
	})

	t.Run("list_is_a_detached_snapshot", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, newLead("snap", 0, "Finance", intPtr(5))); err != nil {
			t.Fatalf("seed: %v", err)
		}
		snap, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		snap[0].Name = "mutated"
		*snap[0].Headcount = 999
		if _, err := repo.Create(ctx, newLead("later", time.Hour, "Finance", nil)); err != nil {
			t.Fatalf("create: %v", err)
		}
		if len(snap) != 1 {
			t.Fatalf("snapshot grew to %d", len(snap))
		}
		got, err := repo.GetByID(ctx, "snap")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name == "mutated" || *got.Headcount != 5 {
			t.Fatalf("store shares memory with snapshot: %+v", got)
		}
	})
}
