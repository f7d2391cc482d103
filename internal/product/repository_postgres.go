package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type PostgresSnapshotRepository struct {
	db *sql.DB
}

const (
	createSnapshotTableQuery = `
		CREATE TABLE IF NOT EXISTS trending_snapshot (
			snapshot_id BIGSERIAL PRIMARY KEY,
			product_ids BIGINT[] NOT NULL,
			snapshot_limit INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	insertSnapshotQuery = `
		INSERT INTO trending_snapshot (product_ids, snapshot_limit, created_at)
		VALUES ($1, $2, $3)
		RETURNING snapshot_id
	`
	listSnapshotsQuery = `
		SELECT snapshot_id, product_ids, snapshot_limit, created_at
		FROM trending_snapshot
		ORDER BY created_at DESC, snapshot_id DESC
		LIMIT $1
	`
)

func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSnapshotTableQuery); err != nil {
		return fmt.Errorf("create trending_snapshot: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, s Snapshot) (Snapshot, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, insertSnapshotQuery, pq.Array(s.ProductIDs), s.Limit, s.CreatedAt).Scan(&id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert trending snapshot: %w", err)
	}
	s.ID = id
	return s, nil
}

func (r *PostgresSnapshotRepository) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := r.db.QueryContext(ctx, listSnapshotsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list trending snapshots: %w", err)
	}
	defer rows.Close()

	out := make([]Snapshot, 0)
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, pq.Array(&s.ProductIDs), &s.Limit, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trending snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
