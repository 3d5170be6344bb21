package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ftahirops/xinfo/model"
	"github.com/ftahirops/xinfo/util"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF79C6"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C")).Bold(true)
	critStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

// Temperature thresholds in Celsius.
const (
	tTempWarn = 50
	tTempCrit = 60
)

func tempStyle(c int) lipgloss.Style {
	switch {
	case c >= tTempCrit:
		return critStyle
	case c >= tTempWarn:
		return warnStyle
	default:
		return okStyle
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
}

func renderDrivesTable(drives []model.DriveInfo) string {
	if len(drives) == 0 {
		return dimStyle.Render("no drives reported by UDisks2") + "\n"
	}
	t := newTable("DEVICE", "MODEL", "VENDOR", "BUS", "SIZE", "TYPE", "TABLE", "PARTITIONS", "SMART")
	for _, d := range drives {
		t.Row(
			d.BlockDev,
			util.OrDash(d.Model),
			util.OrDash(d.Vendor),
			util.OrDash(d.ConnectionBus),
			util.FormatBytes(d.Size),
			util.FormatRPM(d.RotationRate),
			util.OrDash(d.PartitionTable),
			util.OrDash(d.Partitions),
			smartSummary(d),
		)
	}
	return t.String() + "\n"
}

func smartSummary(d model.DriveInfo) string {
	switch {
	case !d.SmartSupported && !d.SmartEnabled:
		return "n/a"
	case !d.SmartEnabled:
		return "off"
	case d.SmartFailing:
		return critStyle.Render("FAILING")
	case d.SmartBadSectors > 0:
		return warnStyle.Render(fmt.Sprintf("%d bad", d.SmartBadSectors))
	default:
		return okStyle.Render(fmt.Sprintf("ok %dC", d.SmartTemperature))
	}
}

func renderTempsTable(temps []model.DriveTemp) string {
	if len(temps) == 0 {
		return dimStyle.Render("no SMART temperatures available") + "\n"
	}
	t := newTable("DRIVE", "TEMP")
	for _, tt := range temps {
		t.Row(util.OrDash(tt.Drive), tempStyle(tt.Temperature).Render(fmt.Sprintf("%d°C", tt.Temperature)))
	}
	return t.String() + "\n"
}

func renderFlavorsTable(flavors []model.Flavor) string {
	if len(flavors) == 0 {
		return dimStyle.Render("no desktop flavor packages installed") + "\n"
	}
	t := newTable("FLAVOR", "PACKAGE", "HOMEPAGE")
	for _, f := range flavors {
		t.Row(f.Name, f.Package, f.URL)
	}
	return t.String() + "\n"
}

// renderMarkdownReport generates a ticket-friendly drive report.
func renderMarkdownReport(snap *model.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("# xinfo Drive Report\n\n")
	sb.WriteString(fmt.Sprintf("**Timestamp:** %s\n\n", snap.Timestamp.Format(time.RFC3339)))
	if h := snap.Host; h != nil {
		sb.WriteString(fmt.Sprintf("**Host:** %s (%s, kernel %s, %s)\n\n",
			util.OrDash(h.Hostname), util.OrDash(h.OS), util.OrDash(h.Kernel), h.Virtualization))
	}

	sb.WriteString("## Drives\n\n")
	if len(snap.Drives) == 0 {
		sb.WriteString("_No drives reported._\n\n")
	}
	for _, d := range snap.Drives {
		sb.WriteString(fmt.Sprintf("### %s\n\n", d.BlockDev))
		sb.WriteString("| Property | Value |\n|---|---|\n")
		row := func(k, v string) {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", k, v))
		}
		row("Model", util.OrDash(d.Model))
		row("Vendor", util.OrDash(d.Vendor))
		row("Revision", util.OrDash(d.Revision))
		row("Serial", util.OrDash(d.Serial))
		row("Connection", util.OrDash(d.ConnectionBus))
		row("Size", util.FormatBytes(d.Size))
		row("Rotation", util.FormatRPM(d.RotationRate))
		row("Media", util.OrDash(d.Media))
		if len(d.MediaCompatibility) > 0 {
			row("Media compatibility", strings.Join(d.MediaCompatibility, ", "))
		}
		row("Removable", util.YesNo(d.Removable))
		row("Ejectable", util.YesNo(d.Ejectable))
		row("Power management", fmt.Sprintf("PM %s, APM %s, AAM %s",
			util.YesNo(d.PMSupported), util.YesNo(d.APMSupported), util.YesNo(d.AAMSupported)))
		row("SMART", fmt.Sprintf("supported %s, enabled %s", util.YesNo(d.SmartSupported), util.YesNo(d.SmartEnabled)))
		if d.SmartEnabled {
			row("SMART status", smartStatusText(d))
			row("Power on", util.FormatPowerOn(d.SmartPowerOn))
			row("Bad sectors", fmt.Sprintf("%d", d.SmartBadSectors))
			row("Temperature", fmt.Sprintf("%d°C", d.SmartTemperature))
		}
		row("Partition table", util.OrDash(d.PartitionTable))
		row("Partitions", util.OrDash(d.Partitions))
		sb.WriteString("\n")
	}

	if len(snap.Temperatures) > 0 {
		sb.WriteString("## Temperatures\n\n")
		for _, t := range snap.Temperatures {
			sb.WriteString(fmt.Sprintf("- %s: %d°C\n", util.OrDash(t.Drive), t.Temperature))
		}
		sb.WriteString("\n")
	}

	if len(snap.Flavors) > 0 {
		sb.WriteString("## Desktop flavors\n\n")
		for _, f := range snap.Flavors {
			sb.WriteString(fmt.Sprintf("- %s (`%s`) %s\n", f.Name, f.Package, f.URL))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func smartStatusText(d model.DriveInfo) string {
	if d.SmartFailing {
		return "**FAILING**"
	}
	return "OK"
}
