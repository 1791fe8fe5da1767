package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store implementation over the
// library_records table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed record store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) CreateRecord(ctx context.Context, r Record) (string, error) {
	if r.Filename == "" {
		return "", fmt.Errorf("filename is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO library_records (kind, topic, filename, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id::text`,
		r.Kind,
		r.Topic,
		r.Filename,
		createdAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) GetRecord(ctx context.Context, id string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var r Record
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, kind, topic, filename, created_at
		 FROM library_records
		 WHERE id = $1::uuid`,
		id,
	).Scan(&r.ID, &r.Kind, &r.Topic, &r.Filename, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, kind string) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, kind, topic, filename, created_at
		 FROM library_records
		 WHERE ($1 = '' OR kind = $1)
		 ORDER BY created_at DESC`,
		kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Kind, &r.Topic, &r.Filename, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
