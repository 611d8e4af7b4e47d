// Package persistence defines the metric store contract shared by the
// document and SQL backends.
package persistence

import (
	"errors"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
)

// ErrNotFound is returned when a record id does not exist in a collection,
// or when no analytics series is stored for a range.
var ErrNotFound = errors.New("record not found")

// Store is the metric store. Implementations must serialize their
// read-modify-write cycles: concurrent patches to distinct ids must all be
// reflected, and same-id races must resolve to exactly one submitted patch.
type Store interface {
	Followers() ([]metrics.FollowerRecord, error)
	Overview() ([]metrics.OverviewRecord, error)
	PatchFollower(id string, patch metrics.Patch) (metrics.FollowerRecord, error)
	PatchOverview(id string, patch metrics.Patch) (metrics.OverviewRecord, error)
	TotalFollowers() (int64, error)
	Analytics(r metrics.AnalyticsRange) (*metrics.AnalyticsSeries, error)
	Close() error
}

// Document is the persisted state layout: one JSON document with the two
// record collections and the per-range analytics series.
type Document struct {
	Followers []metrics.FollowerRecord                            `json:"followers"`
	Overview  []metrics.OverviewRecord                            `json:"overview"`
	Analytics map[metrics.AnalyticsRange]*metrics.AnalyticsSeries `json:"analytics,omitempty"`
}
