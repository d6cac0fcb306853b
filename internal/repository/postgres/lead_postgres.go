package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/repository"
)

const leadColumns = `id, name, job_title, company, email, phone_number, industry, headcount, created_at, updated_at`

type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
	log  zerolog.Logger
}

// New wraps an open pool. The store owns the pool from here on and closes it in Close.
func New(pool *pgxpool.Pool, logger zerolog.Logger) *Store {
	return &Store{
		pool: pool,
		now:  time.Now,
		log:  logger.With().Str("module", "repository").Str("component", "postgres").Logger(),
	}
}

// WithClock overrides the clock used to stamp UpdatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func scanLead(row pgx.Row) (model.Lead, error) {
	var l model.Lead
	err := row.Scan(&l.ID, &l.Name, &l.JobTitle, &l.Company, &l.Email,
		&l.PhoneNumber, &l.Industry, &l.Headcount, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return model.Lead{}, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return l, nil
}

func (s *Store) insert(ctx context.Context, l model.Lead) (model.Lead, error) {
	row := getQ(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+leadColumns,
		l.ID, l.Name, l.JobTitle, l.Company, l.Email,
		l.PhoneNumber, l.Industry, l.Headcount, l.CreatedAt.UTC(), l.UpdatedAt.UTC(),
	)
	out, err := scanLead(row)
	if err != nil {
		return model.Lead{}, repository.MapPgError(err)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, l model.Lead) (model.Lead, error) {
	if err := ensurePool(s.pool); err != nil {
		return model.Lead{}, err
	}
	return s.insert(ctx, l)
}

// BulkCreate inserts the batch in one transaction; any failure rolls back every row.
func (s *Store) BulkCreate(ctx context.Context, leads []model.Lead) ([]model.Lead, error) {
	if err := ensurePool(s.pool); err != nil {
		return nil, err
	}
	out := make([]model.Lead, 0, len(leads))
	err := runInTx(ctx, s.pool, pgx.TxOptions{}, func(ctx context.Context) error {
		for _, l := range leads {
			created, err := s.insert(ctx, l)
			if err != nil {
				return err
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(out)).Msg("bulk insert")
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (model.Lead, error) {
	if err := ensurePool(s.pool); err != nil {
		return model.Lead{}, err
	}
	row := getQ(ctx, s.pool).QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	out, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Lead{}, repository.ErrNotFound
		}
		return model.Lead{}, repository.MapPgError(err)
	}
	return out, nil
}

// Update replaces the editable fields. created_at is never written.
func (s *Store) Update(ctx context.Context, l model.Lead) (model.Lead, error) {
	if err := ensurePool(s.pool); err != nil {
		return model.Lead{}, err
	}
	row := getQ(ctx, s.pool).QueryRow(ctx,
		`UPDATE leads
		 SET name = $2, job_title = $3, company = $4, email = $5,
		     phone_number = $6, industry = $7, headcount = $8, updated_at = $9
		 WHERE id = $1
		 RETURNING `+leadColumns,
		l.ID, l.Name, l.JobTitle, l.Company, l.Email,
		l.PhoneNumber, l.Industry, l.Headcount, s.now().UTC().Truncate(time.Microsecond),
	)
	out, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Lead{}, repository.ErrNotFound
		}
		return model.Lead{}, repository.MapPgError(err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if err := ensurePool(s.pool); err != nil {
		return false, err
	}
	tag, err := getQ(ctx, s.pool).Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// List reads every lead with a single statement, which Postgres serves from one snapshot.
func (s *Store) List(ctx context.Context) ([]model.Lead, error) {
	if err := ensurePool(s.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, s.pool).Query(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Lead, 0, 64)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ensurePool(s.pool); err != nil {
		return 0, err
	}
	var n int
	if err := getQ(ctx, s.pool).QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ensurePool(s.pool); err != nil {
		return err
	}
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

var _ repository.Store = (*Store)(nil)
