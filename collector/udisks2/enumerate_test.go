package udisks2

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/require"
)

func makeSysfs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o600))
	}
	return dir
}

func TestBlockDevices_FromManager(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.addDrive("sda", "disk0")
	bus.addDrive("sdb", "disk1")
	c := newTestClient(t, bus, Options{SysfsBlockDir: makeSysfs(t, "zzz")})

	paths := c.BlockDevices(context.Background())

	r.Equal([]dbus.ObjectPath{
		BlockDevicesPath + "/sda",
		BlockDevicesPath + "/sdb",
	}, paths)
	r.Equal(dbus.MakeVariant(true), bus.options["auth.no_user_interaction"])
}

func TestBlockDevices_FallsBackToSysfsOnError(t *testing.T) {
	r := require.New(t)
	bus := newFakeBus()
	bus.devicesErr = errors.New("org.freedesktop.DBus.Error.UnknownMethod")
	c := newTestClient(t, bus, Options{SysfsBlockDir: makeSysfs(t, "sda", "sda1", "loop0", "nvme0n1")})

	paths := c.BlockDevices(context.Background())

	r.Equal([]dbus.ObjectPath{
		BlockDevicesPath + "/loop0",
		BlockDevicesPath + "/nvme0n1",
		BlockDevicesPath + "/sda",
		BlockDevicesPath + "/sda1",
	}, paths)
}

func TestBlockDevices_FallsBackToSysfsWhenEmpty(t *testing.T) {
	bus := newFakeBus()
	c := newTestClient(t, bus, Options{SysfsBlockDir: makeSysfs(t, "vda")})

	require.Equal(t, []dbus.ObjectPath{BlockDevicesPath + "/vda"}, c.BlockDevices(context.Background()))
}

func TestBlockDevices_NoSysfs(t *testing.T) {
	bus := newFakeBus()
	bus.devicesErr = errors.New("access denied")
	c := newTestClient(t, bus, Options{SysfsBlockDir: filepath.Join(t.TempDir(), "missing")})

	require.Empty(t, c.BlockDevices(context.Background()))
}
