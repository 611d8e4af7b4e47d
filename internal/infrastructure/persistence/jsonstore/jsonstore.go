// Package jsonstore implements the metric store on a single JSON document,
// held in memory and flushed atomically to disk on every write.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

// Store keeps the whole document in memory behind a single mutex. Every
// read-modify-write cycle runs under the lock, so patches to distinct ids
// never lose updates and same-id races serialize to one winner.
type Store struct {
	path   string
	mu     sync.Mutex
	doc    *persistence.Document
	logger *logging.ChanneledLogger
}

// Open loads the document at path, seeding and writing it if absent.
func Open(path string, logger *logging.ChanneledLogger) (*Store, error) {
	store := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		store.doc = persistence.SeedDocument()
		if err := store.flushLocked(); err != nil {
			return nil, fmt.Errorf("failed to write seed document: %w", err)
		}
		if logger != nil {
			logger.Store().Info("Seeded new metric document", "path", path)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read metric document: %w", err)
	default:
		var doc persistence.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse metric document: %w", err)
		}
		store.doc = &doc
		if logger != nil {
			logger.Store().Info("Loaded metric document", "path", path,
				"followers", len(doc.Followers), "overview", len(doc.Overview))
		}
	}

	return store, nil
}

// flushLocked persists the document atomically: marshal, write to a temp
// file in the same directory, then rename over the target. Caller holds mu
// (or is the only goroutine, during Open).
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metric document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp document: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace metric document: %w", err)
	}
	return nil
}

// Followers returns a copy of the followers collection.
func (s *Store) Followers() ([]metrics.FollowerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]metrics.FollowerRecord, len(s.doc.Followers))
	copy(out, s.doc.Followers)
	return out, nil
}

// Overview returns a copy of the overview collection.
func (s *Store) Overview() ([]metrics.OverviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]metrics.OverviewRecord, len(s.doc.Overview))
	copy(out, s.doc.Overview)
	return out, nil
}

// PatchFollower merge-patches one follower record and flushes the document.
func (s *Store) PatchFollower(id string, patch metrics.Patch) (metrics.FollowerRecord, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Followers {
		if s.doc.Followers[i].ID != id {
			continue
		}
		updated, err := patch.ApplyToFollower(s.doc.Followers[i])
		if err != nil {
			return metrics.FollowerRecord{}, err
		}
		prev := s.doc.Followers[i]
		s.doc.Followers[i] = updated
		if err := s.flushLocked(); err != nil {
			s.doc.Followers[i] = prev
			return metrics.FollowerRecord{}, err
		}
		if s.logger != nil {
			s.logger.LogStoreOperation("patch", "followers", id, time.Since(start), nil)
		}
		return updated, nil
	}
	return metrics.FollowerRecord{}, persistence.ErrNotFound
}

// PatchOverview merge-patches one overview record and flushes the document.
func (s *Store) PatchOverview(id string, patch metrics.Patch) (metrics.OverviewRecord, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Overview {
		if s.doc.Overview[i].ID != id {
			continue
		}
		updated, err := patch.ApplyToOverview(s.doc.Overview[i])
		if err != nil {
			return metrics.OverviewRecord{}, err
		}
		prev := s.doc.Overview[i]
		s.doc.Overview[i] = updated
		if err := s.flushLocked(); err != nil {
			s.doc.Overview[i] = prev
			return metrics.OverviewRecord{}, err
		}
		if s.logger != nil {
			s.logger.LogStoreOperation("patch", "overview", id, time.Since(start), nil)
		}
		return updated, nil
	}
	return metrics.OverviewRecord{}, persistence.ErrNotFound
}

// TotalFollowers recomputes the follower sum on every call.
func (s *Store) TotalFollowers() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, f := range s.doc.Followers {
		total += f.Count
	}
	return total, nil
}

// Analytics returns the stored series for a range.
func (s *Store) Analytics(r metrics.AnalyticsRange) (*metrics.AnalyticsSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	series, ok := s.doc.Analytics[r]
	if !ok || series == nil {
		return nil, persistence.ErrNotFound
	}

	out := *series
	return &out, nil
}

// Close is a no-op for the document backend; every write is already flushed.
func (s *Store) Close() error {
	return nil
}
