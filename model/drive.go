package model

// DriveTemp is a SMART temperature reading for one drive.
type DriveTemp struct {
	Drive       string `json:"drive,omitempty"` // drive model, empty if unknown
	Temperature int    `json:"temperature"`     // Celsius
}

// DriveInfo holds everything UDisks2 reports about a physical drive.
// Fields the service does not expose stay at their zero value.
type DriveInfo struct {
	BlockDev           string   `json:"block_dev"` // short name: "sda", "nvme0n1"
	Model              string   `json:"model,omitempty"`
	Vendor             string   `json:"vendor,omitempty"`
	Revision           string   `json:"revision,omitempty"`
	Serial             string   `json:"serial,omitempty"`
	ConnectionBus      string   `json:"connection_bus,omitempty"`
	RotationRate       int32    `json:"rotation_rate"` // RPM, 0 for non-rotating or unknown
	Size               uint64   `json:"size"`          // bytes
	Media              string   `json:"media,omitempty"`
	MediaCompatibility []string `json:"media_compatibility,omitempty"`
	Ejectable          bool     `json:"ejectable"`
	Removable          bool     `json:"removable"`
	PMSupported        bool     `json:"pm_supported"`
	APMSupported       bool     `json:"apm_supported"`
	AAMSupported       bool     `json:"aam_supported"`
	SmartSupported     bool     `json:"smart_supported"`
	SmartEnabled       bool     `json:"smart_enabled"`

	// Populated only when SmartEnabled is true.
	SmartPowerOn     uint64 `json:"smart_poweron,omitempty"` // seconds
	SmartBadSectors  int64  `json:"smart_bad_sectors,omitempty"`
	SmartTemperature int    `json:"smart_temperature,omitempty"` // Celsius
	SmartFailing     bool   `json:"smart_failing,omitempty"`

	PartitionTable string `json:"partition_table,omitempty"` // "gpt", "dos"
	Partitions     string `json:"partitions,omitempty"`      // "sda1, sda2"
}

// IsRotational reports whether the drive spins.
func (d DriveInfo) IsRotational() bool {
	return d.RotationRate > 0
}
