package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"shopkart/pkg/models"
)

// ErrUnavailable means the catalog could be fetched neither from the
// backend nor from the local cache.
var ErrUnavailable = errors.New("catalog unavailable")

// Remote is the backend side of the catalog provider.
type Remote interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
}

// Provider fetches the catalog, keeps an in-memory snapshot for cart
// reconciliation, and mirrors successful fetches into the local cache
// so browsing still works offline.
type Provider struct {
	Remote Remote
	Cache  *Cache // optional

	mu       sync.Mutex
	products []models.Product
}

func NewProvider(remote Remote, cache *Cache) *Provider {
	return &Provider{Remote: remote, Cache: cache}
}

// Load fetches the full catalog from the backend, falling back to the
// cache when the backend is unreachable.
func (p *Provider) Load(ctx context.Context) ([]models.Product, error) {
	products, err := p.Remote.FetchProducts(ctx)
	if err != nil {
		if p.Cache != nil {
			cached, cacheErr := p.Cache.Load(ctx)
			if cacheErr == nil && len(cached) > 0 {
				log.Printf("[catalog] backend unreachable, serving %d cached products", len(cached))
				p.setSnapshot(cached)
				return cached, nil
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	p.setSnapshot(products)
	if p.Cache != nil {
		if err := p.Cache.Replace(ctx, products); err != nil {
			log.Printf("[catalog] cache write failed: %v", err)
		}
	}
	return products, nil
}

// LoadCached reads the catalog from the local cache only.
func (p *Provider) LoadCached(ctx context.Context) ([]models.Product, error) {
	if p.Cache == nil {
		return nil, fmt.Errorf("%w: no cache configured", ErrUnavailable)
	}
	products, err := p.Cache.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	p.setSnapshot(products)
	return products, nil
}

// Search runs a server-side search; results are not cached.
func (p *Provider) Search(ctx context.Context, query string) ([]models.Product, error) {
	products, err := p.Remote.SearchProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return products, nil
}

// Products returns the last loaded snapshot. This is the catalog the
// cart coordinator reconciles against.
func (p *Provider) Products() []models.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Product, len(p.products))
	copy(out, p.products)
	return out
}

func (p *Provider) setSnapshot(products []models.Product) {
	p.mu.Lock()
	p.products = products
	p.mu.Unlock()
}
