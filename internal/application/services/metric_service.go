// Package services provides application-level orchestration services
package services

import (
	"time"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/messaging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

// MetricService orchestrates reads and merge-patches over the metric store
// and notifies live dashboard clients after every successful write.
type MetricService struct {
	store       persistence.Store
	broadcaster *messaging.Broadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewMetricService creates a new metric service. The broadcaster may be nil
// when live updates are disabled.
func NewMetricService(store persistence.Store, broadcaster *messaging.Broadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MetricService {
	return &MetricService{
		store:       store,
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Followers returns the followers collection.
func (s *MetricService) Followers() ([]metrics.FollowerRecord, error) {
	return s.store.Followers()
}

// Overview returns the overview collection.
func (s *MetricService) Overview() ([]metrics.OverviewRecord, error) {
	return s.store.Overview()
}

// TotalFollowers recomputes the follower sum from current state.
func (s *MetricService) TotalFollowers() (int64, error) {
	return s.store.TotalFollowers()
}

// PatchFollower validates the raw patch against the followers schema, merges
// it onto the record and broadcasts the result.
func (s *MetricService) PatchFollower(id string, raw map[string]any) (metrics.FollowerRecord, error) {
	marker := s.perfTracker.StartOperation("patch_follower")
	defer marker.Complete()
	marker.AddMetadata("recordId", id)

	patch, err := metrics.Patch(raw).Normalize(metrics.CollectionFollowers)
	if err != nil {
		marker.SetError(err)
		return metrics.FollowerRecord{}, err
	}

	start := time.Now()
	updated, err := s.store.PatchFollower(id, patch)
	if err != nil {
		marker.SetError(err)
		return metrics.FollowerRecord{}, err
	}
	marker.SetSuccess(true)

	s.logger.Metrics().Info("Follower record patched", "id", id, "fields", len(patch), "duration", time.Since(start))
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(messaging.EventFollowersUpdated, updated)
	}
	return updated, nil
}

// PatchOverview validates the raw patch against the overview schema, merges
// it onto the record and broadcasts the result.
func (s *MetricService) PatchOverview(id string, raw map[string]any) (metrics.OverviewRecord, error) {
	marker := s.perfTracker.StartOperation("patch_overview")
	defer marker.Complete()
	marker.AddMetadata("recordId", id)

	patch, err := metrics.Patch(raw).Normalize(metrics.CollectionOverview)
	if err != nil {
		marker.SetError(err)
		return metrics.OverviewRecord{}, err
	}

	start := time.Now()
	updated, err := s.store.PatchOverview(id, patch)
	if err != nil {
		marker.SetError(err)
		return metrics.OverviewRecord{}, err
	}
	marker.SetSuccess(true)

	s.logger.Metrics().Info("Overview record patched", "id", id, "fields", len(patch), "duration", time.Since(start))
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(messaging.EventOverviewUpdated, updated)
	}
	return updated, nil
}
