// Package sqlstore implements the metric store on a SQL backend with one row
// per record, giving per-record transactional updates.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	position INTEGER NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE TABLE IF NOT EXISTS analytics_series (
	range_key TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);`

// Store persists each record as a JSON payload row keyed by (collection, id).
// Patches run in a transaction, so a same-id race resolves to one submitted
// patch and distinct ids never interfere.
type Store struct {
	db     *database.Database
	logger *logging.ChanneledLogger
}

// Open prepares the schema and seeds the tables when empty.
func Open(db *database.Database, logger *logging.ChanneledLogger) (*Store, error) {
	if _, err := db.Conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create metric schema: %w", err)
	}

	store := &Store{db: db, logger: logger}
	if err := store.seedIfEmpty(); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Store().Info("SQL metric store ready", "backend", db.ConnectionInfo())
	}
	return store, nil
}

func (s *Store) seedIfEmpty() error {
	var count int
	if err := s.db.Conn.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := persistence.SeedDocument()

	tx, err := s.db.Conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO records (collection, id, position, payload) VALUES (?, ?, ?, ?)`
	for i, rec := range seed.Followers {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal seed follower: %w", err)
		}
		if _, err := tx.Exec(insert, string(metrics.CollectionFollowers), rec.ID, i, string(payload)); err != nil {
			return fmt.Errorf("failed to seed follower %s: %w", rec.ID, err)
		}
	}
	for i, rec := range seed.Overview {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal seed overview: %w", err)
		}
		if _, err := tx.Exec(insert, string(metrics.CollectionOverview), rec.ID, i, string(payload)); err != nil {
			return fmt.Errorf("failed to seed overview %s: %w", rec.ID, err)
		}
	}
	for rangeKey, series := range seed.Analytics {
		payload, err := json.Marshal(series)
		if err != nil {
			return fmt.Errorf("failed to marshal seed analytics: %w", err)
		}
		if _, err := tx.Exec(`INSERT INTO analytics_series (range_key, payload) VALUES (?, ?)`,
			string(rangeKey), string(payload)); err != nil {
			return fmt.Errorf("failed to seed analytics %s: %w", rangeKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func (s *Store) payloads(collection metrics.Collection) ([]string, error) {
	rows, err := s.db.Conn.Query(
		`SELECT payload FROM records WHERE collection = ? ORDER BY position`, string(collection))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var payloads []string
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, rows.Err()
}

// Followers returns the followers collection in seed order.
func (s *Store) Followers() ([]metrics.FollowerRecord, error) {
	payloads, err := s.payloads(metrics.CollectionFollowers)
	if err != nil {
		return nil, err
	}

	records := make([]metrics.FollowerRecord, 0, len(payloads))
	for _, payload := range payloads {
		var rec metrics.FollowerRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to parse follower payload: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Overview returns the overview collection in seed order.
func (s *Store) Overview() ([]metrics.OverviewRecord, error) {
	payloads, err := s.payloads(metrics.CollectionOverview)
	if err != nil {
		return nil, err
	}

	records := make([]metrics.OverviewRecord, 0, len(payloads))
	for _, payload := range payloads {
		var rec metrics.OverviewRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to parse overview payload: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// PatchFollower merge-patches one follower row inside a transaction.
func (s *Store) PatchFollower(id string, patch metrics.Patch) (metrics.FollowerRecord, error) {
	start := time.Now()

	var updated metrics.FollowerRecord
	err := s.patchRow(metrics.CollectionFollowers, id, func(payload string) (string, error) {
		var rec metrics.FollowerRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return "", fmt.Errorf("failed to parse follower payload: %w", err)
		}
		merged, err := patch.ApplyToFollower(rec)
		if err != nil {
			return "", err
		}
		updated = merged
		out, err := json.Marshal(merged)
		return string(out), err
	})
	if err != nil {
		return metrics.FollowerRecord{}, err
	}

	if s.logger != nil {
		s.logger.LogStoreOperation("patch", "followers", id, time.Since(start), nil)
	}
	return updated, nil
}

// PatchOverview merge-patches one overview row inside a transaction.
func (s *Store) PatchOverview(id string, patch metrics.Patch) (metrics.OverviewRecord, error) {
	start := time.Now()

	var updated metrics.OverviewRecord
	err := s.patchRow(metrics.CollectionOverview, id, func(payload string) (string, error) {
		var rec metrics.OverviewRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return "", fmt.Errorf("failed to parse overview payload: %w", err)
		}
		merged, err := patch.ApplyToOverview(rec)
		if err != nil {
			return "", err
		}
		updated = merged
		out, err := json.Marshal(merged)
		return string(out), err
	})
	if err != nil {
		return metrics.OverviewRecord{}, err
	}

	if s.logger != nil {
		s.logger.LogStoreOperation("patch", "overview", id, time.Since(start), nil)
	}
	return updated, nil
}

// patchRow runs a read-merge-write cycle on one row inside a transaction.
func (s *Store) patchRow(collection metrics.Collection, id string, merge func(string) (string, error)) error {
	tx, err := s.db.Conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin patch transaction: %w", err)
	}
	defer tx.Rollback()

	var payload string
	err = tx.QueryRow(`SELECT payload FROM records WHERE collection = ? AND id = ?`,
		string(collection), id).Scan(&payload)
	if err == sql.ErrNoRows {
		return persistence.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load record %s/%s: %w", collection, id, err)
	}

	next, err := merge(payload)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`UPDATE records SET payload = ? WHERE collection = ? AND id = ?`,
		next, string(collection), id); err != nil {
		return fmt.Errorf("failed to update record %s/%s: %w", collection, id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit patch: %w", err)
	}
	return nil
}

// TotalFollowers recomputes the follower sum on every call.
func (s *Store) TotalFollowers() (int64, error) {
	followers, err := s.Followers()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, f := range followers {
		total += f.Count
	}
	return total, nil
}

// Analytics returns the stored series for a range.
func (s *Store) Analytics(r metrics.AnalyticsRange) (*metrics.AnalyticsSeries, error) {
	var payload string
	err := s.db.Conn.QueryRow(`SELECT payload FROM analytics_series WHERE range_key = ?`,
		string(r)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics %s: %w", r, err)
	}

	var series metrics.AnalyticsSeries
	if err := json.Unmarshal([]byte(payload), &series); err != nil {
		return nil, fmt.Errorf("failed to parse analytics payload: %w", err)
	}
	return &series, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
