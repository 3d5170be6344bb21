package udisks2

import (
	"context"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

// Aggregator builds one record from a block device and its drive.
// dev is the short block device name ("sda"). Returning nil drops the device.
type Aggregator[T any] func(ctx context.Context, dev string, block, drive Object) *T

// Collect walks the block devices in enumeration order, skips partitions and
// loop devices, resolves each remaining device to its drive and calls fn.
// Non-nil results are returned in order. Duplicated device paths are not
// collapsed. Returns nil when the client is not connected.
func Collect[T any](ctx context.Context, c *Client, fn Aggregator[T]) []T {
	bus := c.currentBus()
	if bus == nil {
		return nil
	}

	var out []T
	for _, blockPath := range c.blockDevices(ctx, bus) {
		if ctx.Err() != nil {
			break
		}
		block, ok := openObject(bus, blockPath, c.timeout)
		if !ok {
			continue
		}
		if isPartition(ctx, block) || isLoop(ctx, block) {
			continue
		}
		drive, ok := resolveDrive(ctx, bus, block, c.timeout)
		if !ok {
			continue
		}
		if r := fn(ctx, blockDeviceName(blockPath), block, drive); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// isPartition: only partitions carry Partition.Size.
func isPartition(ctx context.Context, block Object) bool {
	return block.Has(ctx, PartitionInterface, "Size")
}

// isLoop: only loop devices carry Loop.BackingFile.
func isLoop(ctx context.Context, block Object) bool {
	return block.Has(ctx, LoopInterface, "BackingFile")
}

// resolveDrive follows Block.Drive. "/" means the device has no drive.
func resolveDrive(ctx context.Context, bus Bus, block Object, timeout time.Duration) (Object, bool) {
	drivePath, ok := block.ObjectPath(ctx, BlockInterface, "Drive")
	if !ok || drivePath == "" || drivePath == noDrive {
		return Object{}, false
	}
	return openObject(bus, drivePath, timeout)
}

// blockDeviceName strips the block_devices prefix: ".../block_devices/sda" -> "sda".
func blockDeviceName(p dbus.ObjectPath) string {
	return strings.TrimPrefix(string(p), BlockDevicesPath+"/")
}
