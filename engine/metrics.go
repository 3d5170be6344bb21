package engine

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ftahirops/xinfo/model"
)

const namespace = "xinfo"

var (
	driveTempDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "drive", "temperature_celsius"),
		"SMART drive temperature.", []string{"model"}, nil)
	driveSizeDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "drive", "size_bytes"),
		"Drive capacity.", []string{"device", "model"}, nil)
	driveSmartEnabledDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "drive", "smart_enabled"),
		"1 if SMART is enabled on the drive.", []string{"device", "model"}, nil)
	driveSmartFailingDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "drive", "smart_failing"),
		"1 if SMART predicts failure.", []string{"device", "model"}, nil)
	driveBadSectorsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "drive", "smart_bad_sectors"),
		"SMART bad sector count.", []string{"device", "model"}, nil)
	drivePowerOnDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "drive", "smart_power_on_seconds"),
		"SMART power-on time.", []string{"device", "model"}, nil)
	flavorDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "flavor", "installed"),
		"Installed desktop flavor.", []string{"package", "label"}, nil)
	hostInfoDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "host", "info"),
		"Host identity, always 1.", []string{"hostname", "os", "kernel", "virtualization"}, nil)
	lastCollectDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "last_collect_timestamp_seconds"),
		"Unix time of the last collection pass.", nil, nil)
)

// MetricsStore holds the latest snapshot for exporters. It is a
// prometheus.Collector that reports that snapshot on every scrape.
type MetricsStore struct {
	mu   sync.RWMutex
	snap *model.Snapshot
}

// NewMetricsStore creates a new store.
func NewMetricsStore() *MetricsStore {
	return &MetricsStore{}
}

// Update stores the latest sample.
func (s *MetricsStore) Update(snap *model.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Snapshot returns the latest stored sample.
func (s *MetricsStore) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *MetricsStore) Describe(ch chan<- *prometheus.Desc) {
	ch <- driveTempDesc
	ch <- driveSizeDesc
	ch <- driveSmartEnabledDesc
	ch <- driveSmartFailingDesc
	ch <- driveBadSectorsDesc
	ch <- drivePowerOnDesc
	ch <- flavorDesc
	ch <- hostInfoDesc
	ch <- lastCollectDesc
}

func (s *MetricsStore) Collect(ch chan<- prometheus.Metric) {
	snap := s.Snapshot()
	if snap == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(lastCollectDesc, prometheus.GaugeValue, float64(snap.Timestamp.Unix()))
	if h := snap.Host; h != nil {
		ch <- prometheus.MustNewConstMetric(hostInfoDesc, prometheus.GaugeValue, 1, h.Hostname, h.OS, h.Kernel, h.Virtualization)
	}

	// Two drives of the same model would collide on the model label alone.
	seenModel := make(map[string]int)
	for _, t := range snap.Temperatures {
		label := t.Drive
		if n := seenModel[t.Drive]; n > 0 {
			label = t.Drive + "#" + strconv.Itoa(n)
		}
		seenModel[t.Drive]++
		ch <- prometheus.MustNewConstMetric(driveTempDesc, prometheus.GaugeValue, float64(t.Temperature), label)
	}

	seenDev := make(map[string]bool)
	for _, d := range snap.Drives {
		if seenDev[d.BlockDev] {
			continue
		}
		seenDev[d.BlockDev] = true
		ch <- prometheus.MustNewConstMetric(driveSizeDesc, prometheus.GaugeValue, float64(d.Size), d.BlockDev, d.Model)
		ch <- prometheus.MustNewConstMetric(driveSmartEnabledDesc, prometheus.GaugeValue, boolGauge(d.SmartEnabled), d.BlockDev, d.Model)
		if !d.SmartEnabled {
			continue
		}
		ch <- prometheus.MustNewConstMetric(driveSmartFailingDesc, prometheus.GaugeValue, boolGauge(d.SmartFailing), d.BlockDev, d.Model)
		ch <- prometheus.MustNewConstMetric(driveBadSectorsDesc, prometheus.GaugeValue, float64(d.SmartBadSectors), d.BlockDev, d.Model)
		ch <- prometheus.MustNewConstMetric(drivePowerOnDesc, prometheus.GaugeValue, float64(d.SmartPowerOn), d.BlockDev, d.Model)
	}

	for _, f := range snap.Flavors {
		ch <- prometheus.MustNewConstMetric(flavorDesc, prometheus.GaugeValue, 1, f.Package, f.Name)
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Handler exposes Prometheus metrics for the latest sample.
func (s *MetricsStore) Handler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(s)
	inner := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Snapshot() == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("# no data yet\n"))
			return
		}
		inner.ServeHTTP(w, r)
	})
}

// instrumentedTicker updates a metrics store on each tick.
type instrumentedTicker struct {
	inner Ticker
	store *MetricsStore
}

// NewInstrumentedTicker wraps a ticker and updates the metrics store.
func NewInstrumentedTicker(inner Ticker, store *MetricsStore) Ticker {
	return &instrumentedTicker{inner: inner, store: store}
}

func (t *instrumentedTicker) Tick(ctx context.Context) *model.Snapshot {
	snap := t.inner.Tick(ctx)
	if snap != nil {
		t.store.Update(snap)
	}
	return snap
}

// Run ticks every interval until ctx is done. The first tick happens immediately.
func Run(ctx context.Context, t Ticker, interval time.Duration) {
	t.Tick(ctx)
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			t.Tick(ctx)
		}
	}
}
