package udisks2

import (
	"context"
	"os"
	"path"

	"github.com/godbus/dbus/v5"
)

// BlockDevices lists block device object paths. The manager call is preferred;
// when it fails or returns nothing the sysfs block directory is listed instead.
// Returns nil when the client is not connected.
func (c *Client) BlockDevices(ctx context.Context) []dbus.ObjectPath {
	bus := c.currentBus()
	if bus == nil {
		return nil
	}
	return c.blockDevices(ctx, bus)
}

func (c *Client) blockDevices(ctx context.Context, bus Bus) []dbus.ObjectPath {
	paths, err := c.managerBlockDevices(ctx, bus)
	if err == nil && len(paths) > 0 {
		return paths
	}
	if err != nil {
		c.log.Debugf("GetBlockDevices failed, listing %s: %v", c.sysfsDir, err)
	}
	paths, err = sysfsBlockDevices(c.sysfsDir)
	if err != nil {
		c.log.Debugf("list %s: %v", c.sysfsDir, err)
		return nil
	}
	return paths
}

func (c *Client) managerBlockDevices(ctx context.Context, bus Bus) ([]dbus.ObjectPath, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	options := map[string]dbus.Variant{
		"auth.no_user_interaction": dbus.MakeVariant(true),
	}
	return bus.BlockDevices(ctx, options)
}

// sysfsBlockDevices synthesizes UDisks2 block device paths from directory
// entry names. Only names are read.
func sysfsBlockDevices(dir string) ([]dbus.ObjectPath, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]dbus.ObjectPath, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, dbus.ObjectPath(path.Join(BlockDevicesPath, e.Name())))
	}
	return paths, nil
}
