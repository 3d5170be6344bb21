package udisks2

import (
	"context"
	"math"

	"github.com/ftahirops/xinfo/model"
)

// DriveTemperature reports the SMART temperature of a drive. Drives without
// SMART enabled, or without a reading, produce no record.
func DriveTemperature(ctx context.Context, _ string, _, drive Object) *model.DriveTemp {
	enabled, _ := drive.Bool(ctx, DriveATAInterface, "SmartEnabled")
	if !enabled {
		return nil
	}

	kelvin, ok := drive.Float64(ctx, DriveATAInterface, "SmartTemperature")
	if !ok {
		return nil
	}
	t := &model.DriveTemp{Temperature: roundCelsius(kelvin)}

	if name, ok := drive.String(ctx, DriveInterface, "Model"); ok {
		t.Drive = name
	}
	return t
}

func roundCelsius(kelvin float64) int {
	return int(math.Round(kelvin - kelvinOffset))
}

// truncCelsius drops the fraction. DriveDetails reports SMART temperature this
// way, so it can read one degree below DriveTemperature for the same drive.
func truncCelsius(kelvin float64) int {
	return int(kelvin - kelvinOffset)
}
