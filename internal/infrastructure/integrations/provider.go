// Package integrations fetches live follower counts from the upstream
// platform APIs that expose them.
package integrations

import (
	"context"
	"errors"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
)

// ErrNoProvider is returned when no upstream API is wired for a brand,
// whether because none exists or because its credential is missing from
// the environment.
var ErrNoProvider = errors.New("no follower provider for brand")

// Provider fetches the current follower count for a handle on one platform.
type Provider interface {
	Brand() metrics.Brand
	FollowerCount(ctx context.Context, handle string) (int64, error)
}

// Registry maps brands to their providers.
type Registry struct {
	providers map[metrics.Brand]Provider
}

// NewRegistry builds a registry from the given providers. Whether a brand
// has enough configuration to be wired at all is the caller's decision;
// every provider passed here is registered.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[metrics.Brand]Provider)}
	for _, p := range providers {
		r.providers[p.Brand()] = p
	}
	return r
}

// For returns the provider for a brand, or ErrNoProvider.
func (r *Registry) For(brand metrics.Brand) (Provider, error) {
	p, ok := r.providers[brand]
	if !ok {
		return nil, ErrNoProvider
	}
	return p, nil
}

// Brands lists the brands with a wired provider.
func (r *Registry) Brands() []metrics.Brand {
	brands := make([]metrics.Brand, 0, len(r.providers))
	for brand := range r.providers {
		brands = append(brands, brand)
	}
	return brands
}
