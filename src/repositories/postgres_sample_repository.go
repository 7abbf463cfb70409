package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
)

// PostgresSampleRepository keeps one row per sample with the whole document
// in a JSONB column. The document, not the row, is the unit of storage, so
// the filter runs over decoded documents exactly like the other backends.
type PostgresSampleRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSampleRepository(pool *pgxpool.Pool) *PostgresSampleRepository {
	return &PostgresSampleRepository{pool: pool}
}

// EnsureSchema creates the samples table when it does not exist yet.
func (r *PostgresSampleRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS samples (
			id  TEXT PRIMARY KEY,
			doc JSONB NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure samples schema: %w", err)
	}
	return nil
}

func (r *PostgresSampleRepository) FindAll(ctx context.Context, filter domain.SampleFilter) ([]entities.Sample, error) {
	rows, err := r.pool.Query(ctx, `SELECT doc FROM samples`)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	samples := make([]entities.Sample, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		var sample entities.Sample
		if err := json.Unmarshal(doc, &sample); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sample document: %w", err)
		}
		if filter.Matches(sample) {
			samples = append(samples, sample)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate samples: %w", err)
	}
	return samples, nil
}

func (r *PostgresSampleRepository) FindOneByID(ctx context.Context, id string) (*entities.Sample, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM samples WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sample %s: %w", id, err)
	}
	var sample entities.Sample
	if err := json.Unmarshal(doc, &sample); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sample %s: %w", id, err)
	}
	return &sample, nil
}

func (r *PostgresSampleRepository) InsertOne(ctx context.Context, sample entities.Sample) error {
	doc, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO samples (id, doc) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		sample.ID, doc)
	if err != nil {
		return fmt.Errorf("failed to insert sample %s: %w", sample.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateKey
	}
	return nil
}

func (r *PostgresSampleRepository) ReplaceOne(ctx context.Context, sample entities.Sample) error {
	doc, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `UPDATE samples SET doc = $2 WHERE id = $1`, sample.ID, doc)
	if err != nil {
		return fmt.Errorf("failed to replace sample %s: %w", sample.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresSampleRepository) DeleteOneByID(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM samples WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete sample %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
