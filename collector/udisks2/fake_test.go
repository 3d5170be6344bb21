package udisks2

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var errNoProperty = errors.New("org.freedesktop.DBus.Error.InvalidArgs: no such property")

// fakeBus serves properties from memory.
type fakeBus struct {
	mu         sync.Mutex
	devices    []dbus.ObjectPath
	devicesErr error
	options    map[string]dbus.Variant
	props      map[dbus.ObjectPath]map[string]dbus.Variant
	deadlines  int
	propCalls  int
	closed     bool
}

func newFakeBus() *fakeBus {
	b := &fakeBus{props: map[dbus.ObjectPath]map[string]dbus.Variant{}}
	b.set(ManagerPath, ManagerInterface, "Version", "2.10.1")
	return b
}

func (b *fakeBus) set(path dbus.ObjectPath, iface, name string, value interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.props[path] == nil {
		b.props[path] = map[string]dbus.Variant{}
	}
	b.props[path][iface+"."+name] = dbus.MakeVariant(value)
}

// addDrive registers a whole disk block device backed by a drive.
func (b *fakeBus) addDrive(dev, drive string) (dbus.ObjectPath, dbus.ObjectPath) {
	blockPath := dbus.ObjectPath(BlockDevicesPath + "/" + dev)
	drivePath := dbus.ObjectPath("/org/freedesktop/UDisks2/drives/" + drive)
	b.devices = append(b.devices, blockPath)
	b.set(blockPath, BlockInterface, "Drive", drivePath)
	b.set(drivePath, DriveInterface, "Model", drive)
	return blockPath, drivePath
}

func (b *fakeBus) BlockDevices(_ context.Context, options map[string]dbus.Variant) ([]dbus.ObjectPath, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.options = options
	if b.devicesErr != nil {
		return nil, b.devicesErr
	}
	return append([]dbus.ObjectPath(nil), b.devices...), nil
}

func (b *fakeBus) Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.propCalls++
	if _, ok := ctx.Deadline(); ok {
		b.deadlines++
	}
	v, ok := b.props[path][iface+"."+name]
	if !ok {
		return dbus.Variant{}, errNoProperty
	}
	return v, nil
}

func (b *fakeBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(log)
}

func newTestClient(t *testing.T, bus *fakeBus, opts Options) *Client {
	t.Helper()
	opts.Dial = func(context.Context) (Bus, error) { return bus, nil }
	opts.Log = testLog()
	if opts.SysfsBlockDir == "" {
		opts.SysfsBlockDir = t.TempDir()
	}
	c := NewClient(opts)
	require.NoError(t, c.Init(context.Background()))
	return c
}
