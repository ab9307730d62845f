// Package render turns engine state into the printed report.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/captop/captop/pkg/captop"
)

// Mode selects which report body follows the date line.
type Mode int

const (
	// ModeDetailed prints the aggregate block plus the per-process table.
	ModeDetailed Mode = iota
	// ModeSummary prints only the two aggregate figures.
	ModeSummary
)

// Options configure one report.
type Options struct {
	Mode Mode

	// Styled draws the table header in inverse video. Leave false when the
	// output is not a terminal.
	Styled bool
}

const timeFormat = "2006-01-02 15:04:05"

// Column layout of the process table. The header shares the row widths so
// the inverse-video bar lines up with the cells under it.
const (
	headerFormat = "%5s %-8s %6s %5s %5s %10s %-20s"
	rowFormat    = "%5d %-8s %6s %5.1f %5.1f %10s %-20s\n"
)

var headerStyle = lipgloss.NewStyle().Reverse(true)

// Report writes one complete report for the engine's current state.
func Report(w io.Writer, st *captop.Stats, opts Options) error {
	if opts.Mode == ModeSummary {
		return summary(w, st)
	}
	return detailed(w, st, opts.Styled)
}

func detailed(w io.Writer, st *captop.Stats, styled bool) error {
	if _, err := fmt.Fprintf(w, "Date: %s\n", st.Timestamp().Format(timeFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "MEM: %s/%s (%.1f%%)\n",
		st.UsedMemory().SI(), st.MemoryLimit().SI(), st.MemoryPercent()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "CPU: %.1f%%\n\n", st.CPUPercent()); err != nil {
		return err
	}

	header := fmt.Sprintf(headerFormat, "PID", "USER", "MEM", "%MEM", "%CPU", "RUNTIME", "COMMAND")
	if styled {
		header = headerStyle.Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, p := range st.Processes() {
		_, err := fmt.Fprintf(w, rowFormat,
			p.PID,
			p.Owner,
			p.ResidentBytes.SI(),
			p.PercentMem,
			p.PercentCPU,
			cpuRuntime(p.CPUSeconds()),
			p.Command,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func summary(w io.Writer, st *captop.Stats) error {
	if _, err := fmt.Fprintf(w, "Date: %s\n", st.Timestamp().Format(timeFormat)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "MEM\t%s/%s (%.1f%%)\n",
		st.UsedMemory().SI(), st.MemoryLimit().SI(), st.MemoryPercent())
	fmt.Fprintf(tw, "CPU\t%.1f%%\n", st.CPUPercent())
	return tw.Flush()
}

// cpuRuntime renders cumulative CPU seconds as minutes:seconds.hundredths,
// top's TIME+ shape: 83.45s -> "1:23.45".
func cpuRuntime(seconds float64) string {
	minutes := int(seconds / 60)
	rem := seconds - float64(minutes)*60
	whole := int(rem)
	hundredths := int((rem - float64(whole)) * 100)
	return fmt.Sprintf("%d:%02d.%02d", minutes, whole, hundredths)
}
