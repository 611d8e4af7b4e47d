package services

import (
	"context"
	"time"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/integrations"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/messaging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

// SyncService refreshes a follower record from its platform's live API.
type SyncService struct {
	store       persistence.Store
	providers   *integrations.Registry
	broadcaster *messaging.Broadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSyncService creates a new sync service.
func NewSyncService(store persistence.Store, providers *integrations.Registry, broadcaster *messaging.Broadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SyncService {
	return &SyncService{
		store:       store,
		providers:   providers,
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// SyncResult reports the outcome of one follower sync.
type SyncResult struct {
	Record   metrics.FollowerRecord `json:"record"`
	Previous int64                  `json:"previous"`
	Fetched  int64                  `json:"fetched"`
}

// SyncFollower fetches the live count for the record's platform and patches
// the record with it, adjusting the delta against the previous count.
func (s *SyncService) SyncFollower(ctx context.Context, id string) (*SyncResult, error) {
	marker := s.perfTracker.StartOperation("sync_follower")
	defer marker.Complete()
	marker.AddMetadata("recordId", id)

	log := s.logger.WithOperation(logging.ChannelSync, "sync_follower")

	followers, err := s.store.Followers()
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	var current *metrics.FollowerRecord
	for i := range followers {
		if followers[i].ID == id {
			current = &followers[i]
			break
		}
	}
	if current == nil {
		marker.SetError(persistence.ErrNotFound)
		return nil, persistence.ErrNotFound
	}

	provider, err := s.providers.For(current.Brand)
	if err != nil {
		marker.SetError(err)
		log.Warn("No provider for brand", "id", id, "brand", current.Brand)
		return nil, err
	}

	start := time.Now()
	fetched, err := provider.FollowerCount(ctx, current.Handle)
	if err != nil {
		marker.SetError(err)
		log.Error("Platform fetch failed", "id", id, "brand", current.Brand, "error", err)
		return nil, err
	}
	log.Info("Fetched live follower count", "id", id, "brand", current.Brand, "count", fetched, "duration", time.Since(start))

	patch := metrics.Patch{
		"count":          fetched,
		"deltaValue":     diffMagnitude(fetched, current.Count),
		"deltaDirection": diffDirection(fetched, current.Count),
	}
	normalized, err := patch.Normalize(metrics.CollectionFollowers)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	updated, err := s.store.PatchFollower(id, normalized)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}
	marker.SetSuccess(true)

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(messaging.EventFollowersSynced, updated)
	}
	return &SyncResult{Record: updated, Previous: current.Count, Fetched: fetched}, nil
}

func diffMagnitude(current, previous int64) int64 {
	if current >= previous {
		return current - previous
	}
	return previous - current
}

func diffDirection(current, previous int64) string {
	if current < previous {
		return string(metrics.DeltaDown)
	}
	return string(metrics.DeltaUp)
}
