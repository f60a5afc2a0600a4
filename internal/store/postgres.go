package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of *pgxpool.Pool the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const schema = `CREATE TABLE IF NOT EXISTS taxpayers (
	rfc          TEXT PRIMARY KEY,
	company_name TEXT NOT NULL DEFAULT '',
	fiscal_year  INTEGER NOT NULL,
	regime       TEXT NOT NULL,
	data         JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
)`

// PostgresStore implements Store on PostgreSQL, keeping each bundle as JSONB.
type PostgresStore struct {
	db querier
}

// NewPostgresStore creates a store over a pgx pool or connection
func NewPostgresStore(db querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the taxpayers table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, rfc string) (*domain.TaxpayerData, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM taxpayers WHERE rfc = $1`, domain.NormalizeRFC(rfc)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, rfc)
		}
		return nil, fmt.Errorf("failed to load taxpayer %s: %w", rfc, err)
	}
	var data domain.TaxpayerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode taxpayer %s: %w", rfc, err)
	}
	return &data, nil
}

func (s *PostgresStore) Save(ctx context.Context, data *domain.TaxpayerData) error {
	if data.Config.RFC == "" {
		return fmt.Errorf("cannot save a taxpayer without RFC")
	}
	saved := nowFunc().UTC()
	data.LastSaved = &saved
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode taxpayer %s: %w", data.Config.RFC, err)
	}
	_, err = s.db.Exec(ctx, `INSERT INTO taxpayers (rfc, company_name, fiscal_year, regime, data, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (rfc) DO UPDATE SET company_name = EXCLUDED.company_name, fiscal_year = EXCLUDED.fiscal_year,
	regime = EXCLUDED.regime, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		data.Config.RFC, data.Config.CompanyName, data.Config.FiscalYear, string(data.Config.Regime), raw, saved)
	if err != nil {
		return fmt.Errorf("failed to save taxpayer %s: %w", data.Config.RFC, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `SELECT rfc, company_name, fiscal_year, regime, updated_at FROM taxpayers ORDER BY rfc`)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxpayers: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e      Entry
			regime string
			saved  time.Time
		)
		if err := rows.Scan(&e.RFC, &e.CompanyName, &e.FiscalYear, &regime, &saved); err != nil {
			return nil, fmt.Errorf("failed to scan taxpayer: %w", err)
		}
		e.Regime = domain.ParseRegime(regime)
		e.LastSaved = saved
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, rfc string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM taxpayers WHERE rfc = $1`, domain.NormalizeRFC(rfc))
	if err != nil {
		return fmt.Errorf("failed to delete taxpayer %s: %w", rfc, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, rfc)
	}
	return nil
}
