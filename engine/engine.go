package engine

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ftahirops/xinfo/collector"
	"github.com/ftahirops/xinfo/model"
)

// Engine runs the collector registry and keeps the latest snapshot.
type Engine struct {
	registry *collector.Registry
	log      *logrus.Entry

	tickMu sync.Mutex // serializes Tick() calls; the D-Bus client is not concurrent-safe
	mu      sync.RWMutex
	latest  *model.Snapshot
	history *History
}

// historyLen is the number of ticks of temperature history kept.
const historyLen = 120

// NewEngine creates an engine over the given registry.
func NewEngine(reg *collector.Registry, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{
		registry: reg,
		log:      log.WithField("component", "engine"),
		history:  NewHistory(historyLen),
	}
}

// Tick performs one collection pass and returns the snapshot.
func (e *Engine) Tick(ctx context.Context) *model.Snapshot {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	start := time.Now()
	snap := &model.Snapshot{Timestamp: start}
	for _, err := range e.registry.CollectAll(ctx, snap) {
		if err != nil {
			snap.Errors = append(snap.Errors, err.Error())
		}
	}
	e.log.WithFields(logrus.Fields{
		"drives":  len(snap.Drives),
		"temps":   len(snap.Temperatures),
		"flavors": len(snap.Flavors),
		"took":    time.Since(start).Round(time.Millisecond),
	}).Debug("collected")

	e.history.Push(snap.Temperatures)

	e.mu.Lock()
	e.latest = snap
	e.mu.Unlock()
	return snap
}

// Refresh drops collector caches so the next Tick queries everything again.
func (e *Engine) Refresh() {
	e.registry.InvalidateAll()
}

// Latest returns the last snapshot, or nil before the first Tick.
func (e *Engine) Latest() *model.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest
}

// TempSeries returns the recorded temperatures of a drive, oldest first.
func (e *Engine) TempSeries(drive string) []int {
	return e.history.Series(drive)
}
