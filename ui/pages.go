package ui

import (
	"fmt"
	"strings"

	"github.com/ftahirops/xinfo/model"
	"github.com/ftahirops/xinfo/util"
)

func renderDrivesPage(snap *model.Snapshot, selected, width int) string {
	if len(snap.Drives) == 0 {
		return " " + dimStyle.Render("No drives reported. Is udisks2 running?") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(" " + headerStyle.Render(fmt.Sprintf("%-10s %-28s %10s  %s", "DEVICE", "MODEL", "SIZE", "SMART")) + "\n")
	for i, d := range snap.Drives {
		smart := smartColor(d.SmartEnabled, d.SmartFailing, d.SmartBadSectors).Render(smartLabel(d))
		line := fmt.Sprintf("%-10s %-28s %10s  %s", d.BlockDev, util.Truncate(util.OrDash(d.Model), 28), util.FormatBytes(d.Size), smart)
		if i == selected {
			line = selectedStyle.Render(padRight(line, pageInnerW(width)))
		}
		sb.WriteString(" " + line + "\n")
	}
	sb.WriteString("\n")

	if selected < 0 || selected >= len(snap.Drives) {
		return sb.String()
	}
	sb.WriteString(renderDriveDetail(snap.Drives[selected], pageInnerW(width)))
	return sb.String()
}

func smartLabel(d model.DriveInfo) string {
	switch {
	case !d.SmartEnabled:
		return "off"
	case d.SmartFailing:
		return "FAILING"
	case d.SmartBadSectors > 0:
		return fmt.Sprintf("%d bad sectors", d.SmartBadSectors)
	default:
		return "ok"
	}
}

func renderDriveDetail(d model.DriveInfo, innerW int) string {
	details := []kv{
		{"Model", util.OrDash(d.Model)},
		{"Vendor", util.OrDash(d.Vendor)},
		{"Revision", util.OrDash(d.Revision)},
		{"Serial", util.OrDash(d.Serial)},
		{"Connection", util.OrDash(d.ConnectionBus)},
		{"Size", fmt.Sprintf("%s (%s)", util.FormatBytes(d.Size), util.FormatIBytes(d.Size))},
		{"Rotation", util.FormatRPM(d.RotationRate)},
		{"Media", util.OrDash(d.Media)},
	}
	if len(d.MediaCompatibility) > 0 {
		details = append(details, kv{"Compatibility", util.Truncate(strings.Join(d.MediaCompatibility, ", "), innerW-colKey-1)})
	}
	details = append(details,
		kv{"Removable", util.YesNo(d.Removable)},
		kv{"Ejectable", util.YesNo(d.Ejectable)},
		kv{"PM / APM / AAM", fmt.Sprintf("%s / %s / %s", util.YesNo(d.PMSupported), util.YesNo(d.APMSupported), util.YesNo(d.AAMSupported))},
		kv{"SMART", fmt.Sprintf("supported %s, enabled %s", util.YesNo(d.SmartSupported), util.YesNo(d.SmartEnabled))},
	)
	if d.SmartEnabled {
		details = append(details,
			kv{"Power on", util.FormatPowerOn(d.SmartPowerOn)},
			kv{"Bad sectors", fmt.Sprintf("%d", d.SmartBadSectors)},
			kv{"Temperature", fmt.Sprintf("%d°C", d.SmartTemperature)},
			kv{"Failing", util.YesNo(d.SmartFailing)},
		)
	}
	details = append(details,
		kv{"Partition table", util.OrDash(d.PartitionTable)},
		kv{"Partitions", util.Truncate(util.OrDash(d.Partitions), innerW-colKey-1)},
	)
	return renderKVBox("/dev/"+d.BlockDev, details, innerW)
}

func renderTempsPage(snap *model.Snapshot, series func(string) []int, width int) string {
	if len(snap.Temperatures) == 0 {
		return " " + dimStyle.Render("No SMART temperatures. SMART must be enabled on the drive.") + "\n"
	}
	barW := pageInnerW(width) - 44
	if barW < 10 {
		barW = 10
	}
	var sb strings.Builder
	sb.WriteString(" " + headerStyle.Render(fmt.Sprintf("%-30s %6s  %-*s  %s", "DRIVE", "TEMP", barW, "", "TREND")) + "\n")
	for _, t := range snap.Temperatures {
		temp := tempColor(t.Temperature).Render(fmt.Sprintf("%4d°C", t.Temperature))
		trend := ""
		if series != nil {
			trend = sparkline(series(t.Drive), 24)
		}
		sb.WriteString(fmt.Sprintf(" %-30s %s  %s  %s\n", util.Truncate(util.OrDash(t.Drive), 30), temp, bar(t.Temperature, barW), trend))
	}
	if hot, ok := snap.HottestDrive(); ok && hot.Temperature >= tempWarn {
		sb.WriteString("\n " + warnStyle.Render(fmt.Sprintf("%s is running hot (%d°C)", util.OrDash(hot.Drive), hot.Temperature)) + "\n")
	}
	return sb.String()
}

func renderFlavorsPage(snap *model.Snapshot, width int) string {
	if len(snap.Flavors) == 0 {
		return " " + dimStyle.Render("No Ubuntu desktop flavor package installed.") + "\n"
	}
	var sb strings.Builder
	for _, f := range snap.Flavors {
		sb.WriteString(renderKVBox(f.Name, []kv{
			{"Package", f.Package},
			{"Homepage", f.URL},
			{"Icon", f.Icon},
		}, pageInnerW(width)))
	}
	return sb.String()
}
