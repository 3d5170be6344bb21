package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ftahirops/xinfo/collector/flavor"
	"github.com/ftahirops/xinfo/engine"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDrivesCommand(opts *Options) *cobra.Command {
	var jsonOut, mdOut bool
	cmd := &cobra.Command{
		Use:   "drives",
		Short: "List physical drives with inventory and SMART data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *opts, false, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				if mdOut {
					_, err := fmt.Fprint(out, renderMarkdownReport(a.engine.Tick(ctx)))
					return err
				}
				drives := a.client.Drives(ctx)
				if jsonOut {
					return writeJSON(out, drives)
				}
				_, err := fmt.Fprint(out, renderDrivesTable(drives))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print drives as JSON")
	cmd.Flags().BoolVar(&mdOut, "md", false, "Print a Markdown report of drives, temperatures and flavors")
	return cmd
}

func newTempsCommand(opts *Options) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "temps",
		Short: "Show SMART temperatures of drives with SMART enabled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *opts, false, func(ctx context.Context, a *app) error {
				temps := a.client.DriveTemperatures(ctx)
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), temps)
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), renderTempsTable(temps))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print temperatures as JSON")
	return cmd
}

func newFlavorsCommand(opts *Options) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "flavors",
		Short: "Detect installed Ubuntu desktop flavors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *opts, false, func(ctx context.Context, a *app) error {
				sc := flavor.NewScanner(a.cfg.Flavors.AptCache, a.entry)
				flavors := sc.Scan(ctx)
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), flavors)
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), renderFlavorsTable(flavors))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print flavors as JSON")
	return cmd
}

func newWatchCommand(opts *Options) *cobra.Command {
	var count int
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print drive temperatures repeatedly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *opts, false, func(ctx context.Context, a *app) error {
				if interval <= 0 {
					interval = a.cfg.Interval()
				}
				return runWatch(ctx, a, cmd.OutOrStdout(), interval, count)
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "Number of iterations (0 = until interrupted)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval (default from config)")
	return cmd
}

func newServeCommand(opts *Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose drive and flavor metrics for Prometheus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *opts, false, func(ctx context.Context, a *app) error {
				if addr == "" {
					addr = a.cfg.Metrics.Addr
				}
				return runServe(ctx, a, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func runServe(ctx context.Context, a *app, addr string) error {
	store := engine.NewMetricsStore()
	go engine.Run(ctx, engine.NewInstrumentedTicker(a.engine, store), a.cfg.Interval())
	return serveMetrics(ctx, a, store, addr)
}

// serveMetrics serves store on addr until ctx is done.
func serveMetrics(ctx context.Context, a *app, store *engine.MetricsStore, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", store.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", addr).Info("serving metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
