package collector

import (
	"context"
	"sync"
	"time"

	"github.com/ftahirops/xinfo/model"
)

// DriveSource is what the drive collectors read from; *udisks2.Client implements it.
// A source that is not connected returns empty results.
type DriveSource interface {
	Drives(ctx context.Context) []model.DriveInfo
	DriveTemperatures(ctx context.Context) []model.DriveTemp
}

// DriveCollector caches drive inventory. Inventory rarely changes, so it is
// refreshed only once ttl has passed.
type DriveCollector struct {
	src DriveSource
	ttl time.Duration

	mu      sync.RWMutex
	drives  []model.DriveInfo
	lastRun time.Time
}

// NewDriveCollector creates a collector that refreshes every ttl.
func NewDriveCollector(src DriveSource, ttl time.Duration) *DriveCollector {
	return &DriveCollector{src: src, ttl: ttl}
}

func (d *DriveCollector) Name() string { return "drives" }

func (d *DriveCollector) Collect(ctx context.Context, snap *model.Snapshot) error {
	snap.Drives = d.Get(ctx)
	return nil
}

// Get returns cached drive inventory, refreshing if stale.
func (d *DriveCollector) Get(ctx context.Context) []model.DriveInfo {
	d.mu.RLock()
	if !d.lastRun.IsZero() && time.Since(d.lastRun) < d.ttl {
		drives := d.drives
		d.mu.RUnlock()
		return drives
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	// Double-check after acquiring write lock
	if !d.lastRun.IsZero() && time.Since(d.lastRun) < d.ttl {
		return d.drives
	}

	d.drives = d.src.Drives(ctx)
	d.lastRun = time.Now()
	return d.drives
}

// Invalidate forces the next Get to query the service.
func (d *DriveCollector) Invalidate() {
	d.mu.Lock()
	d.lastRun = time.Time{}
	d.mu.Unlock()
}

// TemperatureCollector reads SMART temperatures on every pass.
type TemperatureCollector struct {
	src DriveSource
}

// NewTemperatureCollector creates a temperature collector.
func NewTemperatureCollector(src DriveSource) *TemperatureCollector {
	return &TemperatureCollector{src: src}
}

func (t *TemperatureCollector) Name() string { return "temperatures" }

func (t *TemperatureCollector) Collect(ctx context.Context, snap *model.Snapshot) error {
	snap.Temperatures = t.src.DriveTemperatures(ctx)
	return nil
}
