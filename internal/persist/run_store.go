package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"botspot/internal/contract"
	"botspot/schema"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{db: nil, backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetRunsDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createRunsTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// createRunsTable creates the run-history table. Run ids are assigned by the
// application (MAX+1), which keeps the DDL free of backend-specific
// auto-increment syntax. The CLI is a single writer, so this is safe.
func createRunsTable(db *sql.DB, backend schema.DatabaseBackend) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id BIGINT NOT NULL,
			start_time VARCHAR(64) NOT NULL,
			end_time VARCHAR(64),
			dataset_id VARCHAR(256),
			command VARCHAR(64),
			total_users INT,
			total_posts INT,
			flagged INT,
			method VARCHAR(32),
			weights TEXT,
			score INT,
			config_params TEXT,
			PRIMARY KEY (run_id)
		);
	`, quoteTableName(runsTable, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}
	return nil
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, datasetID, command string, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quoted := quoteTableName(runsTable, rs.backend)

	tx, err := rs.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin run transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var runID int64
	row := tx.QueryRow(fmt.Sprintf("SELECT COALESCE(MAX(run_id), 0) + 1 FROM %s", quoted))
	if err := row.Scan(&runID); err != nil {
		return 0, fmt.Errorf("failed to allocate run id: %w", err)
	}

	insertQuery := rebind(fmt.Sprintf(
		`INSERT INTO %s (run_id, start_time, dataset_id, command, config_params) VALUES (?, ?, ?, ?, ?)`,
		quoted), rs.backend)
	if _, err := tx.Exec(insertQuery, runID, formatTime(startTime), datasetID, command, string(configJSON)); err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalUsers, totalPosts, flagged int, method string, weights schema.EnsembleWeights, score *int) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}

	var scoreArg any
	if score != nil {
		scoreArg = *score
	}

	updateQuery := rebind(fmt.Sprintf(
		`UPDATE %s SET end_time = ?, total_users = ?, total_posts = ?, flagged = ?, method = ?, weights = ?, score = ? WHERE run_id = ?`,
		quoteTableName(runsTable, rs.backend)), rs.backend)
	if _, err := rs.db.Exec(updateQuery, formatTime(endTime), totalUsers, totalPosts, flagged, method, string(weightsJSON), scoreArg, runID); err != nil {
		return fmt.Errorf("failed to update run %d: %w", runID, err)
	}
	return nil
}

// GetAllRuns retrieves all recorded runs in insertion order.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT run_id, start_time, end_time, dataset_id, command, total_users, total_posts, flagged, method, weights, score FROM %s ORDER BY run_id`,
		quoteTableName(runsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var startTime string
		var endTime sql.NullString
		var datasetID, command, method, weights sql.NullString
		var totalUsers, totalPosts, flagged, score sql.NullInt32

		if err := rows.Scan(&record.RunID, &startTime, &endTime, &datasetID, &command,
			&totalUsers, &totalPosts, &flagged, &method, &weights, &score); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		record.StartTime, err = parseTime(startTime)
		if err != nil {
			return nil, err
		}
		if endTime.Valid {
			t, err := parseTime(endTime.String)
			if err != nil {
				return nil, err
			}
			record.EndTime = &t
		}
		record.DatasetID = datasetID.String
		record.Command = command.String
		record.Method = method.String
		record.TotalUsers = totalUsers.Int32
		record.TotalPosts = totalPosts.Int32
		record.Flagged = flagged.Int32
		if weights.Valid {
			w := weights.String
			record.Weights = &w
		}
		if score.Valid {
			s := score.Int32
			record.Score = &s
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quoted := quoteTableName(runsTable, rs.backend)
	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	status.TableSizes[runsTable] = status.TotalRuns

	if status.TotalRuns > 0 {
		var lastRunTime string
		row = rs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoted))
		if err := row.Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		t, err := parseTime(lastRunTime)
		if err != nil {
			return status, err
		}
		status.LastRunTime = t

		var oldestRunTime string
		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoted))
		if err := row.Scan(&oldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		t, err = parseTime(oldestRunTime)
		if err != nil {
			return status, err
		}
		status.OldestRunTime = t

		row = rs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_users), 0) FROM %s", quoted))
		if err := row.Scan(&status.TotalUsersScanned); err != nil {
			return status, fmt.Errorf("failed to get total users scanned: %w", err)
		}
	}

	return status, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
