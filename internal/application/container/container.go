// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/csrf"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/integrations"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/messaging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence/database"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence/jsonstore"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence/sqlstore"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/security"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	MetricService    *services.MetricService
	AnalyticsService *services.AnalyticsService
	AuthService      *services.AuthService
	CsrfService      *services.CsrfService
	SyncService      *services.SyncService

	// Infrastructure
	Store       persistence.Store
	CsrfTokens  csrf.TokenStore
	Broadcaster *messaging.Broadcaster
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer() (*Container, error) {
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	store, err := openStore(logger)
	if err != nil {
		return nil, err
	}

	broadcaster := messaging.NewBroadcaster(logger)
	csrfTokens := csrf.NewMemoryStore(config.CSRFTokenTTL, logger)

	// Tokens minted against a per-boot secret do not survive a restart,
	// which is acceptable for a dev setup with no JWT_SECRET configured.
	if config.JWTSecret == "" {
		secret, err := security.GenerateSecureKey(64)
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		config.JWTSecret = secret
		logger.Auth().Warn("JWT_SECRET not set, generated an ephemeral secret for this process")
	}

	providers := newProviderRegistry(logger)

	return &Container{
		MetricService:    services.NewMetricService(store, broadcaster, logger, perfTracker),
		AnalyticsService: services.NewAnalyticsService(store, logger, perfTracker),
		AuthService:      services.NewAuthService(logger, perfTracker),
		CsrfService:      services.NewCsrfService(csrfTokens, logger),
		SyncService:      services.NewSyncService(store, providers, broadcaster, logger, perfTracker),

		Store:       store,
		CsrfTokens:  csrfTokens,
		Broadcaster: broadcaster,
		Logger:      logger,
		PerfTracker: perfTracker,
	}, nil
}

// newProviderRegistry wires a live-count provider for every brand whose
// credential is configured. GitHub works unauthenticated, so it is always
// registered; YouTube needs an API key.
func newProviderRegistry(logger *logging.ChanneledLogger) *integrations.Registry {
	providers := []integrations.Provider{
		integrations.NewGitHubProvider(config.GitHubToken, config.IntegrationTimeout, logger),
	}
	if config.YouTubeAPIKey != "" {
		providers = append(providers, integrations.NewYouTubeProvider(config.YouTubeAPIKey, config.IntegrationTimeout, logger))
	} else {
		logger.Sync().Warn("YouTube provider disabled", "reason", "missing_api_key")
	}

	registry := integrations.NewRegistry(providers...)
	logger.Sync().Info("Live sync providers ready", "brands", registry.Brands())
	return registry
}

// openStore selects the persistence backend from DATABASE_TYPE.
func openStore(logger *logging.ChanneledLogger) (persistence.Store, error) {
	switch config.DatabaseType {
	case "json":
		return jsonstore.Open(config.DBPath, logger)
	case "sqlite3":
		db, err := database.New(&database.Config{SQLitePath: config.DBPath})
		if err != nil {
			return nil, err
		}
		return sqlstore.Open(db, logger)
	case "turso":
		db, err := database.New(&database.Config{
			TursoURL:   config.TursoURL,
			TursoToken: config.TursoToken,
			UseTurso:   true,
		})
		if err != nil {
			return nil, err
		}
		return sqlstore.Open(db, logger)
	default:
		return nil, fmt.Errorf("unknown DATABASE_TYPE %q", config.DatabaseType)
	}
}

// Close releases the container's infrastructure resources.
func (c *Container) Close() error {
	c.Broadcaster.Stop()
	if err := c.Store.Close(); err != nil {
		return fmt.Errorf("failed to close metric store: %w", err)
	}
	return nil
}
