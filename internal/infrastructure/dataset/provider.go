package dataset

import "sync"

// Provider loads the catalog at most once and hands out the same instance afterwards
type Provider struct {
	loader  *Loader
	once    sync.Once
	catalog *Catalog
}

// NewProvider wraps a loader
func NewProvider(loader *Loader) *Provider {
	return &Provider{loader: loader}
}

// Catalog returns the loaded catalog, loading it on first use
func (p *Provider) Catalog() *Catalog {
	p.once.Do(func() {
		p.catalog = p.loader.Load()
	})
	return p.catalog
}
