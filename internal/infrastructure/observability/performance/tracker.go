package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	mu      sync.RWMutex       // Protects concurrent access
	started time.Time          // When tracking started
	config  *TrackerConfig     // Tracker configuration
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers int `json:"maxMarkers"` // Maximum number of markers to retain
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers: 10000,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
	}

	markerID := fmt.Sprintf("%s_%d", operation, time.Now().UnixNano())

	t.mu.Lock()
	if len(t.markers) >= t.config.MaxMarkers {
		t.evictOldestLocked()
	}
	t.markers[markerID] = marker
	t.mu.Unlock()

	return marker
}

// evictOldestLocked removes the oldest marker. Caller holds the write lock.
func (t *Tracker) evictOldestLocked() {
	var oldestID string
	var oldestStart time.Time
	for id, marker := range t.markers {
		if oldestID == "" || marker.StartTime.Before(oldestStart) {
			oldestID = id
			oldestStart = marker.StartTime
		}
	}
	if oldestID != "" {
		delete(t.markers, oldestID)
	}
}

// Summary aggregates completed markers per operation.
type Summary struct {
	Operation     string        `json:"operation"`
	Count         int           `json:"count"`
	Failures      int           `json:"failures"`
	TotalDuration time.Duration `json:"totalDuration"`
	MaxDuration   time.Duration `json:"maxDuration"`
}

// Summarize returns per-operation aggregates over completed markers.
func (t *Tracker) Summarize() map[string]*Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	summaries := make(map[string]*Summary)
	for _, marker := range t.markers {
		if !marker.Completed {
			continue
		}
		summary, exists := summaries[marker.Operation]
		if !exists {
			summary = &Summary{Operation: marker.Operation}
			summaries[marker.Operation] = summary
		}
		summary.Count++
		if !marker.Success {
			summary.Failures++
		}
		summary.TotalDuration += marker.Duration
		if marker.Duration > summary.MaxDuration {
			summary.MaxDuration = marker.Duration
		}
	}
	return summaries
}

// Uptime reports how long the tracker has been running.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
