package collector

import (
	"context"

	"github.com/ftahirops/xinfo/model"
)

// Collector is the interface for all snapshot collectors.
type Collector interface {
	Name() string
	Collect(ctx context.Context, snap *model.Snapshot) error
}

// Invalidator is a collector whose cached data can be dropped on demand.
type Invalidator interface {
	Invalidate()
}

// Registry holds all registered collectors.
type Registry struct {
	collectors []Collector
}

// NewRegistry creates a registry with the given collectors.
func NewRegistry(cs ...Collector) *Registry {
	return &Registry{collectors: cs}
}

// Add registers an additional collector.
func (r *Registry) Add(c Collector) {
	r.collectors = append(r.collectors, c)
}

// Names returns the registered collector names in run order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.collectors))
	for _, c := range r.collectors {
		names = append(names, c.Name())
	}
	return names
}

// InvalidateAll drops the cache of every collector that keeps one.
func (r *Registry) InvalidateAll() {
	for _, c := range r.collectors {
		if inv, ok := c.(Invalidator); ok {
			inv.Invalidate()
		}
	}
}

// CollectAll runs all collectors, populating the snapshot.
func (r *Registry) CollectAll(ctx context.Context, snap *model.Snapshot) []error {
	var errs []error
	for _, c := range r.collectors {
		if err := c.Collect(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
