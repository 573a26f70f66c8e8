package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tokenbank/database"
	"tokenbank/models"

	"github.com/jackc/pgx/v5"
)

// PostgresSnapshotStore persists snapshots as a single jsonb document in the
// snapshots table. Save replaces the previous snapshot inside one
// transaction, so the table always holds exactly the latest frozen state.
type PostgresSnapshotStore struct {
	db *database.DB
}

// NewPostgresSnapshotStore creates a postgres-backed snapshot store
func NewPostgresSnapshotStore(db *database.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

// Save writes the snapshot, replacing any previous one
func (s *PostgresSnapshotStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM snapshots`); err != nil {
			return fmt.Errorf("failed to clear previous snapshot: %w", err)
		}

		query := `
			INSERT INTO snapshots (version, payload)
			VALUES ($1, $2)
		`
		if _, err := tx.Exec(ctx, query, snapshot.Version, data); err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}

		return nil
	})
}

// Load reads the most recent snapshot, or nil if none exists
func (s *PostgresSnapshotStore) Load(ctx context.Context) (*models.Snapshot, error) {
	query := `
		SELECT payload
		FROM snapshots
		ORDER BY created_at DESC
		LIMIT 1
	`

	var data []byte
	err := s.db.Pool.QueryRow(ctx, query).Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snapshot, nil
}
