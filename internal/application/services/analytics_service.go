package services

import (
	"fmt"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

// ErrInvalidRange is returned for range values outside the supported set.
// Handlers surface the valid set alongside it.
var ErrInvalidRange = fmt.Errorf("invalid range parameter")

// AnalyticsService serves the historical time-series behind the dashboard
// charts.
type AnalyticsService struct {
	store       persistence.Store
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(store persistence.Store, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AnalyticsService {
	return &AnalyticsService{
		store:       store,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Series returns the stored series for the requested range. An unsupported
// range yields ErrInvalidRange; a supported range with no stored series
// yields persistence.ErrNotFound.
func (s *AnalyticsService) Series(rangeKey string) (*metrics.AnalyticsSeries, error) {
	marker := s.perfTracker.StartOperation("analytics_series")
	defer marker.Complete()
	marker.AddMetadata("range", rangeKey)

	r := metrics.AnalyticsRange(rangeKey)
	if !metrics.ValidRange(r) {
		marker.SetError(ErrInvalidRange)
		return nil, ErrInvalidRange
	}

	series, err := s.store.Analytics(r)
	if err != nil {
		marker.SetError(err)
		s.logger.Analytics().Warn("Analytics series unavailable", "range", rangeKey, "error", err)
		return nil, err
	}
	marker.SetSuccess(true)
	return series, nil
}
