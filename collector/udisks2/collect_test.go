package udisks2

import (
	"context"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/require"
)

// recordDevs is an aggregator that returns the device name it was given.
func recordDevs(_ context.Context, dev string, _, _ Object) *string {
	return &dev
}

func TestCollect_SkipsPartitionsAndLoopDevices(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.addDrive("sda", "disk0")
	part, _ := bus.addDrive("sda1", "disk0")
	bus.set(part, PartitionInterface, "Size", uint64(512<<20))
	loop, _ := bus.addDrive("loop0", "loopdrive")
	bus.set(loop, LoopInterface, "BackingFile", []byte("/var/lib/snapd/snaps/core.snap\x00"))
	bus.addDrive("nvme0n1", "disk1")
	c := newTestClient(t, bus, Options{})

	got := Collect(context.Background(), c, recordDevs)

	r.Equal([]string{"sda", "nvme0n1"}, got)
}

func TestCollect_SkipsDevicesWithoutDrive(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.addDrive("sda", "disk0")

	// No Drive property at all.
	bus.devices = append(bus.devices, BlockDevicesPath+"/zram0")
	// Drive is "/".
	dm := dbus.ObjectPath(BlockDevicesPath + "/dm_2d0")
	bus.devices = append(bus.devices, dm)
	bus.set(dm, BlockInterface, "Drive", dbus.ObjectPath("/"))
	// Drive has the wrong type.
	md := dbus.ObjectPath(BlockDevicesPath + "/md0")
	bus.devices = append(bus.devices, md)
	bus.set(md, BlockInterface, "Drive", "not-an-object-path")

	c := newTestClient(t, bus, Options{})

	r.Equal([]string{"sda"}, Collect(context.Background(), c, recordDevs))
}

func TestCollect_SkipsInvalidObjectPaths(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.devicesErr = errNoProperty
	c := newTestClient(t, bus, Options{SysfsBlockDir: makeSysfs(t, "dm-0", "sda")})
	sda := dbus.ObjectPath(BlockDevicesPath + "/sda")
	bus.set(sda, BlockInterface, "Drive", dbus.ObjectPath("/org/freedesktop/UDisks2/drives/disk0"))

	r.Equal([]string{"sda"}, Collect(context.Background(), c, recordDevs))
}

func TestCollect_KeepsOrderAndDuplicates(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.addDrive("sdb", "disk1")
	sda, _ := bus.addDrive("sda", "disk0")
	bus.devices = append(bus.devices, sda)
	c := newTestClient(t, bus, Options{})

	r.Equal([]string{"sdb", "sda", "sda"}, Collect(context.Background(), c, recordDevs))
}

func TestCollect_DropsNilResults(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.addDrive("sda", "disk0")
	bus.addDrive("sdb", "disk1")
	c := newTestClient(t, bus, Options{})

	onlySDB := func(_ context.Context, dev string, _, _ Object) *string {
		if dev != "sdb" {
			return nil
		}
		return &dev
	}

	r.Equal([]string{"sdb"}, Collect(context.Background(), c, onlySDB))
}

func TestCollect_PassesBlockAndDriveHandles(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	block, drive := bus.addDrive("sda", "disk0")
	c := newTestClient(t, bus, Options{})

	type pair struct{ block, drive dbus.ObjectPath }
	got := Collect(context.Background(), c, func(_ context.Context, _ string, b, d Object) *pair {
		return &pair{b.Path(), d.Path()}
	})

	r.Equal([]pair{{block, drive}}, got)
}

func TestCollect_NotConnected(t *testing.T) {
	c := NewClient(Options{Log: testLog()})
	called := false
	got := Collect(context.Background(), c, func(context.Context, string, Object, Object) *string {
		called = true
		return nil
	})

	require.Nil(t, got)
	require.False(t, called)
}

func TestCollect_CallTimeoutSetsDeadline(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.addDrive("sda", "disk0")
	c := newTestClient(t, bus, Options{CallTimeout: time.Second})

	Collect(context.Background(), c, recordDevs)

	r.Equal(bus.propCalls, bus.deadlines)
}

func TestBlockDeviceName(t *testing.T) {
	require.Equal(t, "nvme0n1", blockDeviceName(BlockDevicesPath+"/nvme0n1"))
}
