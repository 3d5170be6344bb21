package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ftahirops/xinfo/model"
)

type fakeSource struct {
	drives     []model.DriveInfo
	temps      []model.DriveTemp
	driveCalls int
}

func (f *fakeSource) Drives(context.Context) []model.DriveInfo {
	f.driveCalls++
	return f.drives
}

func (f *fakeSource) DriveTemperatures(context.Context) []model.DriveTemp {
	return f.temps
}

type fakeScanner struct {
	flavors []model.Flavor
	scans   int
}

func (f *fakeScanner) Scan(context.Context) []model.Flavor {
	f.scans++
	return f.flavors
}

type failingCollector struct{}

func (failingCollector) Name() string { return "failing" }

func (failingCollector) Collect(context.Context, *model.Snapshot) error {
	return errors.New("boom")
}

func TestRegistry_CollectAll(t *testing.T) {
	r := require.New(t)
	src := &fakeSource{
		drives: []model.DriveInfo{{BlockDev: "sda", Model: "disk0"}},
		temps:  []model.DriveTemp{{Drive: "disk0", Temperature: 31}},
	}
	sc := &fakeScanner{flavors: []model.Flavor{{Package: "xubuntu-desktop"}}}
	reg := NewRegistry(NewDriveCollector(src, time.Minute), NewTemperatureCollector(src))
	reg.Add(NewFlavorCollector(sc))
	reg.Add(failingCollector{})

	snap := &model.Snapshot{}
	errs := reg.CollectAll(context.Background(), snap)

	r.Len(errs, 1)
	r.Equal([]string{"drives", "temperatures", "flavors", "failing"}, reg.Names())
	r.Equal(src.drives, snap.Drives)
	r.Equal(src.temps, snap.Temperatures)
	r.Equal(sc.flavors, snap.Flavors)
}

func TestDriveCollector_CachesUntilTTL(t *testing.T) {
	r := require.New(t)
	src := &fakeSource{drives: []model.DriveInfo{{BlockDev: "sda"}}}
	dc := NewDriveCollector(src, time.Hour)

	dc.Get(context.Background())
	dc.Get(context.Background())
	r.Equal(1, src.driveCalls)

	dc.Invalidate()
	dc.Get(context.Background())
	r.Equal(2, src.driveCalls)
}

func TestDriveCollector_ZeroTTLAlwaysRefreshes(t *testing.T) {
	src := &fakeSource{}
	dc := NewDriveCollector(src, 0)

	dc.Get(context.Background())
	dc.Get(context.Background())
	require.Equal(t, 2, src.driveCalls)
}

func TestFlavorCollector_ScansOnce(t *testing.T) {
	r := require.New(t)
	sc := &fakeScanner{}
	reg := NewRegistry(NewFlavorCollector(sc))

	reg.CollectAll(context.Background(), &model.Snapshot{})
	reg.CollectAll(context.Background(), &model.Snapshot{})
	r.Equal(1, sc.scans)

	reg.InvalidateAll()
	reg.CollectAll(context.Background(), &model.Snapshot{})
	r.Equal(2, sc.scans)
}
