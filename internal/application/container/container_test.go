package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/integrations"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

func TestProviderRegistrySkipsYouTubeWithoutAPIKey(t *testing.T) {
	prevKey := config.YouTubeAPIKey
	t.Cleanup(func() { config.YouTubeAPIKey = prevKey })

	config.YouTubeAPIKey = ""
	registry := newProviderRegistry(logging.NewDiscardLogger())

	_, err := registry.For(metrics.BrandYouTube)
	assert.ErrorIs(t, err, integrations.ErrNoProvider)

	// GitHub works unauthenticated and is always wired
	_, err = registry.For(metrics.BrandGitHub)
	require.NoError(t, err)
}

func TestProviderRegistryWiresYouTubeWithAPIKey(t *testing.T) {
	prevKey := config.YouTubeAPIKey
	t.Cleanup(func() { config.YouTubeAPIKey = prevKey })

	config.YouTubeAPIKey = "test-key"
	registry := newProviderRegistry(logging.NewDiscardLogger())

	provider, err := registry.For(metrics.BrandYouTube)
	require.NoError(t, err)
	assert.Equal(t, metrics.BrandYouTube, provider.Brand())
}
