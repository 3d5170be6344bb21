package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/xinfo/collector"
	"github.com/ftahirops/xinfo/collector/udisks2"
	"github.com/ftahirops/xinfo/config"
	"github.com/ftahirops/xinfo/engine"
	"github.com/ftahirops/xinfo/model"
)

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Host:      &model.HostInfo{Hostname: "desk01", OS: "Ubuntu 24.04 LTS", Kernel: "6.8.0", Virtualization: "Bare Metal"},
		Drives: []model.DriveInfo{{
			BlockDev:       "sda",
			Model:          "ST1000DM010",
			Size:           1000204886016,
			RotationRate:   7200,
			SmartSupported: true,
			SmartEnabled:   true,
			SmartFailing:   true,
			SmartPowerOn:   86400,
			PartitionTable: "gpt",
			Partitions:     "sda1, sda2",
		}},
		Temperatures: []model.DriveTemp{{Drive: "ST1000DM010", Temperature: 41}},
		Flavors:      []model.Flavor{{Name: "Kubuntu", Package: "kubuntu-desktop", URL: "https://kubuntu.org/"}},
	}
}

func TestRenderMarkdownReport(t *testing.T) {
	r := require.New(t)
	md := renderMarkdownReport(sampleSnapshot())

	r.Contains(md, "# xinfo Drive Report")
	r.Contains(md, "**Host:** desk01 (Ubuntu 24.04 LTS, kernel 6.8.0, Bare Metal)")
	r.Contains(md, "### sda")
	r.Contains(md, "| Partitions | sda1, sda2 |")
	r.Contains(md, "| SMART status | **FAILING** |")
	r.Contains(md, "| Power on | 1d 0h |")
	r.Contains(md, "- ST1000DM010: 41°C")
	r.Contains(md, "- Kubuntu (`kubuntu-desktop`) https://kubuntu.org/")
}

func TestRenderMarkdownReport_Empty(t *testing.T) {
	md := renderMarkdownReport(&model.Snapshot{})
	require.Contains(t, md, "_No drives reported._")
	require.NotContains(t, md, "## Temperatures")
	require.NotContains(t, md, "**Host:**")
}

func TestRenderTables(t *testing.T) {
	r := require.New(t)
	snap := sampleSnapshot()

	r.Contains(renderDrivesTable(snap.Drives), "ST1000DM010")
	r.Contains(renderDrivesTable(snap.Drives), "sda1, sda2")
	r.Contains(renderTempsTable(snap.Temperatures), "41°C")
	r.Contains(renderFlavorsTable(snap.Flavors), "kubuntu-desktop")
	r.Contains(renderDrivesTable(nil), "no drives")
	r.Contains(renderTempsTable(nil), "no SMART temperatures")
	r.Contains(renderFlavorsTable(nil), "no desktop flavor")
}

func TestSmartSummary(t *testing.T) {
	r := require.New(t)
	r.Equal("n/a", smartSummary(model.DriveInfo{}))
	r.Equal("off", smartSummary(model.DriveInfo{SmartSupported: true}))
	r.Contains(smartSummary(model.DriveInfo{SmartEnabled: true, SmartBadSectors: 4}), "4 bad")
	r.Contains(smartSummary(model.DriveInfo{SmartEnabled: true, SmartTemperature: 33}), "ok 33C")
}

type stubSource struct{ temps []model.DriveTemp }

func (s stubSource) Drives(context.Context) []model.DriveInfo { return nil }

func (s stubSource) DriveTemperatures(context.Context) []model.DriveTemp { return s.temps }

func TestRunWatch_Count(t *testing.T) {
	r := require.New(t)
	src := stubSource{temps: []model.DriveTemp{{Drive: "disk0", Temperature: 35}}}
	a := &app{
		cfg:    config.Default(),
		client: udisks2.NewClient(udisks2.Options{}),
		engine: engine.NewEngine(collector.NewRegistry(collector.NewTemperatureCollector(src)), logrus.NewEntry(logrus.New())),
	}

	var buf bytes.Buffer
	r.NoError(runWatch(context.Background(), a, &buf, time.Millisecond, 3))

	out := buf.String()
	r.Equal(3, strings.Count(out, "xinfo watch"))
	r.Contains(out, "[3/3]")
	r.Contains(out, "hottest: disk0")
}

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, "xinfo v"+Version+"\n", buf.String())
}

func TestNewLogger_TUIDiscards(t *testing.T) {
	r := require.New(t)
	log, f, err := newLogger("debug", "", true)
	r.NoError(err)
	r.Nil(f)
	r.Equal(logrus.DebugLevel, log.GetLevel())

	log, _, err = newLogger("bogus", "", false)
	r.NoError(err)
	r.Equal(logrus.InfoLevel, log.GetLevel())
}

func TestTUISource_UpdatesMetricsStore(t *testing.T) {
	r := require.New(t)
	src := stubSource{temps: []model.DriveTemp{{Drive: "disk0", Temperature: 42}}}
	eng := engine.NewEngine(collector.NewRegistry(collector.NewTemperatureCollector(src)), logrus.NewEntry(logrus.New()))
	store := engine.NewMetricsStore()
	ts := tuiSource{Engine: eng, ticker: engine.NewInstrumentedTicker(eng, store)}

	snap := ts.Tick(context.Background())
	r.Same(snap, store.Snapshot())
	r.Equal([]int{42}, ts.TempSeries("disk0"))
}

func TestServeMetrics_StopsOnCancel(t *testing.T) {
	a := &app{log: logrus.New()}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, a, engine.NewMetricsStore(), "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serveMetrics did not return after cancel")
	}
}
