package udisks2

import (
	"context"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/samber/lo"

	"github.com/ftahirops/xinfo/model"
)

// DriveDetails builds a full inventory record. It always returns a record;
// fields the service does not expose are left empty.
func DriveDetails(ctx context.Context, dev string, block, drive Object) *model.DriveInfo {
	d := &model.DriveInfo{BlockDev: dev}

	if v, ok := drive.String(ctx, DriveInterface, "Model"); ok {
		d.Model = v
	}
	if v, ok := drive.String(ctx, DriveInterface, "Vendor"); ok {
		d.Vendor = v
	}
	if v, ok := drive.String(ctx, DriveInterface, "Revision"); ok {
		d.Revision = v
	}
	if v, ok := drive.String(ctx, DriveInterface, "Serial"); ok {
		d.Serial = v
	}
	if v, ok := drive.String(ctx, DriveInterface, "ConnectionBus"); ok {
		d.ConnectionBus = v
	}
	if v, ok := drive.Int32(ctx, DriveInterface, "RotationRate"); ok {
		d.RotationRate = v
	}
	if v, ok := drive.Uint64(ctx, DriveInterface, "Size"); ok {
		d.Size = v
	}
	// Empty string means no media inserted.
	if v, ok := drive.String(ctx, DriveInterface, "Media"); ok && v != "" {
		d.Media = v
	}
	if v, ok := drive.Strings(ctx, DriveInterface, "MediaCompatibility"); ok {
		d.MediaCompatibility = make([]string, len(v))
		copy(d.MediaCompatibility, v)
	}
	if v, ok := drive.Bool(ctx, DriveInterface, "Ejectable"); ok {
		d.Ejectable = v
	}
	if v, ok := drive.Bool(ctx, DriveInterface, "Removable"); ok {
		d.Removable = v
	}
	if v, ok := drive.Bool(ctx, DriveATAInterface, "PmSupported"); ok {
		d.PMSupported = v
	}
	if v, ok := drive.Bool(ctx, DriveATAInterface, "ApmSupported"); ok {
		d.APMSupported = v
	}
	if v, ok := drive.Bool(ctx, DriveATAInterface, "AamSupported"); ok {
		d.AAMSupported = v
	}
	if v, ok := drive.Bool(ctx, DriveATAInterface, "SmartSupported"); ok {
		d.SmartSupported = v
	}
	if v, ok := drive.Bool(ctx, DriveATAInterface, "SmartEnabled"); ok {
		d.SmartEnabled = v
	}
	if d.SmartEnabled {
		readSmart(ctx, drive, d)
	}

	if v, ok := block.String(ctx, PartTableInterface, "Type"); ok {
		d.PartitionTable = v
	}
	// PartitionTable.Partitions needs UDisks2 2.7.2+.
	if v, ok := block.ObjectPaths(ctx, PartTableInterface, "Partitions"); ok {
		d.Partitions = partitionList(v)
	}
	return d
}

func readSmart(ctx context.Context, drive Object, d *model.DriveInfo) {
	if v, ok := drive.Uint64(ctx, DriveATAInterface, "SmartPowerOnSeconds"); ok {
		d.SmartPowerOn = v
	}
	if v, ok := drive.Int64(ctx, DriveATAInterface, "SmartNumBadSectors"); ok {
		d.SmartBadSectors = v
	}
	if v, ok := drive.Float64(ctx, DriveATAInterface, "SmartTemperature"); ok {
		d.SmartTemperature = truncCelsius(v)
	}
	if v, ok := drive.Bool(ctx, DriveATAInterface, "SmartFailing"); ok {
		d.SmartFailing = v
	}
}

// partitionList keeps partitions under block_devices and joins their short names.
func partitionList(paths []dbus.ObjectPath) string {
	names := lo.FilterMap(paths, func(p dbus.ObjectPath, _ int) (string, bool) {
		s := string(p)
		if !strings.HasPrefix(s, BlockDevicesPath+"/") {
			return "", false
		}
		return strings.TrimPrefix(s, BlockDevicesPath+"/"), true
	})
	return strings.Join(names, ", ")
}
