package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/pagination"
	"github.com/maxviazov/lead-service/internal/repository"
	"github.com/maxviazov/lead-service/internal/repository/memory"
	"github.com/maxviazov/lead-service/internal/service"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func validInput() model.LeadInput {
	return model.LeadInput{
		Name:        "Ada Lovelace",
		JobTitle:    "CTO",
		Company:     "Analytical Engines",
		Email:       "ada@example.com",
		PhoneNumber: strPtr("+44 20 0000 0000"),
		Industry:    "Technology",
		Headcount:   intPtr(120),
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newService(t *testing.T, opts ...service.Option) (service.LeadService, *memory.Store) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	store := memory.New(logger).WithClock(func() time.Time { return fixedNow.Add(time.Hour) })
	opts = append([]service.Option{
		service.WithIDGenerator(sequentialIDs()),
		service.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return service.NewLeadService(store, logger, opts...), store
}

func fieldSet(err error) map[string]string {
	out := map[string]string{}
	for _, fe := range service.FieldErrors(err) {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestCreateLead_AssignsIdentityAndTimestamps(t *testing.T) {
	svc, _ := newService(t)
	in := validInput()
	in.Name = "  Ada Lovelace  "

	out, err := svc.CreateLead(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "id-001", out.ID)
	assert.Equal(t, "Ada Lovelace", out.Name)
	assert.Equal(t, fixedNow.Truncate(time.Microsecond), out.CreatedAt)
	assert.Equal(t, out.CreatedAt, out.UpdatedAt)
}

func TestCreateLead_DefaultIDIsUUID(t *testing.T) {
	logger := zerolog.New(io.Discard)
	svc := service.NewLeadService(memory.New(logger), logger)
	out, err := svc.CreateLead(context.Background(), validInput())
	require.NoError(t, err)
	assert.Len(t, out.ID, 36)
}

func TestCreateLead_Validation(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*model.LeadInput)
		field string
	}{
		{"missing name", func(in *model.LeadInput) { in.Name = "   " }, "name"},
		{"bad email", func(in *model.LeadInput) { in.Email = "not-an-email" }, "email"},
		{"missing industry", func(in *model.LeadInput) { in.Industry = "" }, "industry"},
		{"zero headcount", func(in *model.LeadInput) { in.Headcount = intPtr(0) }, "headcount"},
		{"huge headcount", func(in *model.LeadInput) { in.Headcount = intPtr(1_000_001) }, "headcount"},
		{"long company", func(in *model.LeadInput) {
			b := make([]byte, 201)
			for i := range b {
				b[i] = 'x'
			}
			in.Company = string(b)
		}, "company"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newService(t)
			in := validInput()
			tc.mut(&in)
			_, err := svc.CreateLead(context.Background(), in)
			require.ErrorIs(t, err, service.ErrInvalidInput)
			assert.Contains(t, fieldSet(err), tc.field)
			n, _ := store.Count(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestCreateLead_OptionalFieldsMayBeAbsent(t *testing.T) {
	svc, _ := newService(t)
	in := validInput()
	in.PhoneNumber = strPtr("  ")
	in.Headcount = nil

	out, err := svc.CreateLead(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, out.PhoneNumber)
	assert.Nil(t, out.Headcount)
}

func TestBulkCreateLeads(t *testing.T) {
	t.Run("size bounds", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.BulkCreateLeads(context.Background(), nil)
		require.ErrorIs(t, err, service.ErrInvalidInput)
		assert.Contains(t, fieldSet(err), "leads")

		batch := make([]model.LeadInput, service.MaxBulkLeads+1)
		for i := range batch {
			batch[i] = validInput()
		}
		_, err = svc.BulkCreateLeads(context.Background(), batch)
		require.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("one bad item rejects the batch", func(t *testing.T) {
		svc, store := newService(t)
		bad := validInput()
		bad.Email = "nope"
		_, err := svc.BulkCreateLeads(context.Background(), []model.LeadInput{validInput(), bad})
		require.ErrorIs(t, err, service.ErrInvalidInput)
		assert.Contains(t, fieldSet(err), "leads[1].email")
		n, _ := store.Count(context.Background())
		assert.Zero(t, n)
	})

	t.Run("creates all", func(t *testing.T) {
		svc, store := newService(t)
		out, err := svc.BulkCreateLeads(context.Background(), []model.LeadInput{validInput(), validInput(), validInput()})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, []string{"id-001", "id-002", "id-003"}, []string{out[0].ID, out[1].ID, out[2].ID})
		n, _ := store.Count(context.Background())
		assert.Equal(t, 3, n)
	})
}

func TestGetUpdateDeleteLead(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	created, err := svc.CreateLead(ctx, validInput())
	require.NoError(t, err)

	got, err := svc.GetLead(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	change := validInput()
	change.Company = "Difference Engines"
	updated, err := svc.UpdateLead(ctx, created.ID, change)
	require.NoError(t, err)
	assert.Equal(t, "Difference Engines", updated.Company)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = svc.UpdateLead(ctx, "missing", change)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.DeleteLead(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteLead(ctx, created.ID), repository.ErrNotFound)
	_, err = svc.GetLead(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateLead_Validation(t *testing.T) {
	svc, _ := newService(t)
	in := validInput()
	in.Email = ""
	_, err := svc.UpdateLead(context.Background(), "", in)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	fields := fieldSet(err)
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "email")
}

func TestListLeads_PageSizes(t *testing.T) {
	svc, _ := newService(t, service.WithPageSizes(3, 5))
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		_, err := svc.CreateLead(ctx, validInput())
		require.NoError(t, err)
	}

	page, err := svc.ListLeads(ctx, service.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.PageSize)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 8, page.Total)

	page, err = svc.ListLeads(ctx, service.ListParams{PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, page.PageSize)
	assert.Len(t, page.Items, 5)

	_, err = svc.ListLeads(ctx, service.ListParams{PageSize: -1})
	assert.ErrorIs(t, err, pagination.ErrInvalidArgument)
}

func TestListLeads_FilterAndCursor(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		in := validInput()
		if i%2 == 0 {
			in.Industry = "Finance"
		}
		_, err := svc.CreateLead(ctx, in)
		require.NoError(t, err)
	}

	f := pagination.Filter{Industries: []string{"Finance"}}
	first, err := svc.ListLeads(ctx, service.ListParams{PageSize: 2, Filter: f})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Total)
	require.True(t, first.HasNext)
	require.NotNil(t, first.NextCursor)

	second, err := svc.ListLeads(ctx, service.ListParams{PageSize: 2, Filter: f, Cursor: *first.NextCursor})
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrev)

	lo, hi := 10, 5
	_, err = svc.ListLeads(ctx, service.ListParams{Filter: pagination.Filter{MinHeadcount: &lo, MaxHeadcount: &hi}})
	assert.ErrorIs(t, err, pagination.ErrInvalidArgument)
}

type failingRepo struct{ repository.LeadRepository }

var errBoom = errors.New("boom")

func (failingRepo) List(context.Context) ([]model.Lead, error)             { return nil, errBoom }
func (failingRepo) Create(context.Context, model.Lead) (model.Lead, error) { return model.Lead{}, errBoom }

func TestStoreErrorsPropagate(t *testing.T) {
	svc := service.NewLeadService(failingRepo{}, zerolog.New(io.Discard))
	_, err := svc.ListLeads(context.Background(), service.ListParams{})
	assert.ErrorIs(t, err, errBoom)
	_, err = svc.CreateLead(context.Background(), validInput())
	assert.ErrorIs(t, err, errBoom)
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, service.FieldErrors(nil))
	assert.Nil(t, service.FieldErrors(errBoom))
	assert.Nil(t, service.NewInvalidInput())
	wrapped := fmt.Errorf("ctx: %w", service.NewInvalidInput(service.FieldError{Field: "x", Message: "y"}))
	assert.Len(t, service.FieldErrors(wrapped), 1)
}
