package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ftahirops/xinfo/model"
)

// ── ANSI control codes ──────────────────────────────────────────────────────

const (
	R  = "\033[0m" // reset
	B  = "\033[1m" // bold
	D  = "\033[2m" // dim
	CL = "\033[H\033[2J"
)

// runWatch prints a temperature report every interval. count 0 runs until ctx ends.
func runWatch(ctx context.Context, a *app, w io.Writer, interval time.Duration, count int) error {
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for i := 0; count == 0 || i < count; i++ {
		snap := a.engine.Tick(ctx)
		if _, err := fmt.Fprint(w, renderWatchFrame(snap, interval, i+1, count)); err != nil {
			return err
		}
		if count != 0 && i+1 >= count {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
		}
	}
	return nil
}

func renderWatchFrame(snap *model.Snapshot, interval time.Duration, iter, count int) string {
	header := fmt.Sprintf("%s%sxinfo watch%s  %s  every %s", CL, B, R, snap.Timestamp.Format("15:04:05"), interval)
	if count > 0 {
		header += fmt.Sprintf("  %s[%d/%d]%s", D, iter, count, R)
	}
	out := header + "\n\n" + renderTempsTable(snap.Temperatures)
	if hot, ok := snap.HottestDrive(); ok {
		out += fmt.Sprintf("\nhottest: %s %s\n", hot.Drive, tempStyle(hot.Temperature).Render(fmt.Sprintf("%d°C", hot.Temperature)))
	}
	return out
}
