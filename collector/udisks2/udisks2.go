// Package udisks2 collects drive inventory and SMART health from the UDisks2
// service on the system bus.
//
// Every property read is soft: a missing property, a type mismatch or a failed
// call all mean "field unknown" and leave the record field at its zero value.
// Block devices are listed through the manager's GetBlockDevices method (UDisks2
// 2.7.2+) with a fallback to /sys/class/block on older services. Partitions and
// loop devices are skipped; every remaining block device is resolved to its
// owning drive and handed to an Aggregator.
package udisks2

const (
	Service             = "org.freedesktop.UDisks2"
	ManagerInterface    = "org.freedesktop.UDisks2.Manager"
	BlockInterface      = "org.freedesktop.UDisks2.Block"
	LoopInterface       = "org.freedesktop.UDisks2.Loop"
	PartitionInterface  = "org.freedesktop.UDisks2.Partition"
	PartTableInterface  = "org.freedesktop.UDisks2.PartitionTable"
	DriveInterface      = "org.freedesktop.UDisks2.Drive"
	DriveATAInterface   = "org.freedesktop.UDisks2.Drive.Ata"
	PropertiesInterface = "org.freedesktop.DBus.Properties"

	ManagerPath      = "/org/freedesktop/UDisks2/Manager"
	BlockDevicesPath = "/org/freedesktop/UDisks2/block_devices"

	// DefaultSysfsBlockDir is listed when the manager cannot enumerate devices.
	DefaultSysfsBlockDir = "/sys/class/block"

	// noDrive is what Block.Drive holds for devices without a backing drive.
	noDrive = "/"
)

// kelvinOffset converts UDisks2 temperatures (Kelvin) to Celsius.
const kelvinOffset = 273.15
