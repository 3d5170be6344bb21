package engine

import (
	"context"

	"github.com/ftahirops/xinfo/model"
)

// Ticker abstracts a data source that can produce snapshots.
type Ticker interface {
	Tick(ctx context.Context) *model.Snapshot
}
