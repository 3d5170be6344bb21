package collector

import (
	"context"
	"sync"

	"github.com/ftahirops/xinfo/model"
)

// FlavorScanner is implemented by *flavor.Scanner.
type FlavorScanner interface {
	Scan(ctx context.Context) []model.Flavor
}

// FlavorCollector scans installed flavors once and keeps the result; packages
// do not change while the tool runs. Invalidate forces a rescan.
type FlavorCollector struct {
	scanner FlavorScanner

	mu      sync.Mutex
	flavors []model.Flavor
	scanned bool
}

// NewFlavorCollector creates a flavor collector.
func NewFlavorCollector(s FlavorScanner) *FlavorCollector {
	return &FlavorCollector{scanner: s}
}

func (f *FlavorCollector) Name() string { return "flavors" }

func (f *FlavorCollector) Collect(ctx context.Context, snap *model.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.scanned {
		f.flavors = f.scanner.Scan(ctx)
		f.scanned = true
	}
	snap.Flavors = f.flavors
	return nil
}

// Invalidate forces a rescan on the next Collect.
func (f *FlavorCollector) Invalidate() {
	f.mu.Lock()
	f.scanned = false
	f.mu.Unlock()
}
