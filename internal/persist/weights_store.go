package persist

import (
	"database/sql"
	"fmt"
	"time"

	"botspot/internal/contract"
	"botspot/schema"
)

// WeightsStoreImpl implements the WeightsStore interface.
type WeightsStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.WeightsStore = &WeightsStoreImpl{} // Compile-time check

// NewWeightsStore creates a new WeightsStore with the specified backend.
func NewWeightsStore(backend schema.DatabaseBackend, connStr string) (contract.WeightsStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled persistence
		return &WeightsStoreImpl{db: nil, backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetWeightsDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createWeightsTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create weights table: %w", err)
	}

	return &WeightsStoreImpl{db: db, backend: backend}, nil
}

// createWeightsTable creates the weights table. The DDL is deliberately
// restricted to types every supported backend understands.
func createWeightsTable(db *sql.DB, backend schema.DatabaseBackend) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			weights_key VARCHAR(128) NOT NULL,
			weight_heuristic DOUBLE PRECISION NOT NULL,
			weight_model DOUBLE PRECISION NOT NULL,
			threshold DOUBLE PRECISION NOT NULL,
			score BIGINT,
			updated_at VARCHAR(64) NOT NULL,
			PRIMARY KEY (weights_key)
		);
	`, quoteTableName(weightsTable, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", weightsTable, err)
	}
	return nil
}

// GetWeights returns the persisted weights for a key, or nil when absent.
func (ws *WeightsStoreImpl) GetWeights(key string) (*schema.PersistedWeights, error) {
	if ws.backend == schema.NoneBackend || ws.db == nil {
		return nil, nil
	}

	query := rebind(fmt.Sprintf(
		`SELECT weight_heuristic, weight_model, threshold, score, updated_at FROM %s WHERE weights_key = ?`,
		quoteTableName(weightsTable, ws.backend)), ws.backend)

	var entry schema.PersistedWeights
	var score sql.NullInt64
	var updatedAt string
	err := ws.db.QueryRow(query, key).Scan(&entry.Weights.Heuristic, &entry.Weights.Model, &entry.Weights.Threshold, &score, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query weights for key %q: %w", key, err)
	}

	entry.Key = key
	if score.Valid {
		s := int(score.Int64)
		entry.Score = &s
	}
	entry.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// PutWeights upserts the weights for a key. The upsert is a delete+insert in
// one transaction, which is portable across all supported backends.
func (ws *WeightsStoreImpl) PutWeights(key string, weights schema.EnsembleWeights, score *int) error {
	if ws.backend == schema.NoneBackend || ws.db == nil {
		return nil
	}

	tx, err := ws.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin weights transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	quoted := quoteTableName(weightsTable, ws.backend)
	deleteQuery := rebind(fmt.Sprintf(`DELETE FROM %s WHERE weights_key = ?`, quoted), ws.backend)
	if _, err := tx.Exec(deleteQuery, key); err != nil {
		return fmt.Errorf("failed to clear weights for key %q: %w", key, err)
	}

	var scoreArg any
	if score != nil {
		scoreArg = *score
	}
	insertQuery := rebind(fmt.Sprintf(
		`INSERT INTO %s (weights_key, weight_heuristic, weight_model, threshold, score, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		quoted), ws.backend)
	if _, err := tx.Exec(insertQuery, key, weights.Heuristic, weights.Model, weights.Threshold, scoreArg, formatTime(time.Now())); err != nil {
		return fmt.Errorf("failed to insert weights for key %q: %w", key, err)
	}

	return tx.Commit()
}

// DeleteWeights removes the weights for a key. Missing keys are not an error.
func (ws *WeightsStoreImpl) DeleteWeights(key string) error {
	if ws.backend == schema.NoneBackend || ws.db == nil {
		return nil
	}

	query := rebind(fmt.Sprintf(`DELETE FROM %s WHERE weights_key = ?`, quoteTableName(weightsTable, ws.backend)), ws.backend)
	if _, err := ws.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete weights for key %q: %w", key, err)
	}
	return nil
}

// ListWeights returns all persisted entries ordered by key.
func (ws *WeightsStoreImpl) ListWeights() ([]schema.PersistedWeights, error) {
	if ws.backend == schema.NoneBackend || ws.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT weights_key, weight_heuristic, weight_model, threshold, score, updated_at FROM %s ORDER BY weights_key`,
		quoteTableName(weightsTable, ws.backend))

	rows, err := ws.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PersistedWeights
	for rows.Next() {
		var entry schema.PersistedWeights
		var score sql.NullInt64
		var updatedAt string
		if err := rows.Scan(&entry.Key, &entry.Weights.Heuristic, &entry.Weights.Model, &entry.Weights.Threshold, &score, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weights row: %w", err)
		}
		if score.Valid {
			s := int(score.Int64)
			entry.Score = &s
		}
		entry.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weights: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the weights store.
func (ws *WeightsStoreImpl) GetStatus() (schema.WeightsStatus, error) {
	status := schema.WeightsStatus{
		Backend:   string(ws.backend),
		Connected: ws.db != nil,
	}

	if ws.backend == schema.NoneBackend || ws.db == nil {
		return status, nil
	}

	quoted := quoteTableName(weightsTable, ws.backend)
	row := ws.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries > 0 {
		var updatedAt string
		row = ws.db.QueryRow(fmt.Sprintf("SELECT MAX(updated_at) FROM %s", quoted))
		if err := row.Scan(&updatedAt); err != nil {
			return status, fmt.Errorf("failed to get last update time: %w", err)
		}
		lastUpdated, err := parseTime(updatedAt)
		if err != nil {
			return status, err
		}
		status.LastUpdated = lastUpdated
	}

	return status, nil
}

// Close closes the underlying connection.
func (ws *WeightsStoreImpl) Close() error {
	if ws.db != nil {
		return ws.db.Close()
	}
	return nil
}
