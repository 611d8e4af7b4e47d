package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
)

func TestGitHubFollowerCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/nathanf", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"login":"nathanf","followers":1044}`))
	}))
	defer server.Close()

	provider := NewGitHubProvider("test-token", time.Second, logging.NewDiscardLogger())
	provider.baseURL = server.URL

	count, err := provider.FollowerCount(context.Background(), "@nathanf")
	require.NoError(t, err)
	assert.Equal(t, int64(1044), count)
}

func TestGitHubFollowerCountUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewGitHubProvider("", time.Second, logging.NewDiscardLogger())
	provider.baseURL = server.URL

	_, err := provider.FollowerCount(context.Background(), "ghost")
	assert.Error(t, err)
}

func TestRegistryUnknownBrand(t *testing.T) {
	registry := NewRegistry(
		NewGitHubProvider("", time.Second, logging.NewDiscardLogger()),
	)

	_, err := registry.For(metrics.BrandFacebook)
	assert.ErrorIs(t, err, ErrNoProvider)

	provider, err := registry.For(metrics.BrandGitHub)
	require.NoError(t, err)
	assert.Equal(t, metrics.BrandGitHub, provider.Brand())

	assert.Equal(t, []metrics.Brand{metrics.BrandGitHub}, registry.Brands())
}
