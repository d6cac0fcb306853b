// Package sqlite implements the lead store on an embedded SQLite file.
// Timestamps are stored as fixed-width UTC text, which keeps ORDER BY on
// created_at consistent with time order.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/repository"
	"github.com/maxviazov/lead-service/internal/repository/migrations"
)

const (
	timeLayout  = "2006-01-02T15:04:05.000000000Z"
	leadColumns = `id, name, job_title, company, email, phone_number, industry, headcount, created_at, updated_at`
)

type Store struct {
	db  *sql.DB
	now func() time.Time
	log zerolog.Logger
}

// Open creates the database file if needed and applies migrations.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// a single writer connection keeps transactions serialized
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := migrations.Up(ctx, db, goose.DialectSQLite3, logger); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{
		db:  db,
		now: time.Now,
		log: logger.With().Str("module", "repository").Str("component", "sqlite").Logger(),
	}
	s.log.Info().Str("path", path).Msg("opened SQLite store")
	return s, nil
}

// WithClock overrides the clock used to stamp UpdatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func scanLead(row scanner) (model.Lead, error) {
	var (
		l                model.Lead
		phone            sql.NullString
		headcount        sql.NullInt64
		created, updated string
	)
	if err := row.Scan(&l.ID, &l.Name, &l.JobTitle, &l.Company, &l.Email,
		&phone, &l.Industry, &headcount, &created, &updated); err != nil {
		return model.Lead{}, err
	}
	if phone.Valid {
		p := phone.String
		l.PhoneNumber = &p
	}
	if headcount.Valid {
		h := int(headcount.Int64)
		l.Headcount = &h
	}
	var err error
	if l.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return model.Lead{}, fmt.Errorf("sqlite: created_at %q: %w", created, err)
	}
	if l.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return model.Lead{}, fmt.Errorf("sqlite: updated_at %q: %w", updated, err)
	}
	return l, nil
}

func nullable(l model.Lead) (sql.NullString, sql.NullInt64) {
	var phone sql.NullString
	if l.PhoneNumber != nil {
		phone = sql.NullString{String: *l.PhoneNumber, Valid: true}
	}
	var headcount sql.NullInt64
	if l.Headcount != nil {
		headcount = sql.NullInt64{Int64: int64(*l.Headcount), Valid: true}
	}
	return phone, headcount
}

func insert(ctx context.Context, ex execer, l model.Lead) error {
	phone, headcount := nullable(l)
	_, err := ex.ExecContext(ctx,
		`INSERT INTO leads (`+leadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.JobTitle, l.Company, l.Email,
		phone, l.Industry, headcount, formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	return mapError(err)
}

func (s *Store) Create(ctx context.Context, l model.Lead) (model.Lead, error) {
	if err := insert(ctx, s.db, l); err != nil {
		return model.Lead{}, err
	}
	return s.GetByID(ctx, l.ID)
}

func (s *Store) BulkCreate(ctx context.Context, leads []model.Lead) ([]model.Lead, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range leads {
		if err := insert(ctx, tx, l); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, mapError(err)
	}

	out := make([]model.Lead, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.Clone())
	}
	s.log.Debug().Int("count", len(out)).Msg("bulk insert")
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (model.Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Lead{}, repository.ErrNotFound
		}
		return model.Lead{}, mapError(err)
	}
	return l, nil
}

func (s *Store) Update(ctx context.Context, l model.Lead) (model.Lead, error) {
	phone, headcount := nullable(l)
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads
		 SET name = ?, job_title = ?, company = ?, email = ?,
		     phone_number = ?, industry = ?, headcount = ?, updated_at = ?
		 WHERE id = ?`,
		l.Name, l.JobTitle, l.Company, l.Email,
		phone, l.Industry, headcount, formatTime(s.now()), l.ID,
	)
	if err != nil {
		return model.Lead{}, mapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Lead{}, err
	} else if n == 0 {
		return model.Lead{}, repository.ErrNotFound
	}
	return s.GetByID(ctx, l.ID)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) List(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]model.Lead, 0, 64)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

var _ repository.Store = (*Store)(nil)
