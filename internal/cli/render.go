package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/homeroute/homeroute/internal/plugin"
)

// Duration formatting constants.
const (
	secondsPerMinute = 60
	minutesPerHour   = 60
)

// tabwriterPadding is the minimum padding between step table columns.
const tabwriterPadding = 2

// renderPlan writes a human-readable route summary. Styling is disabled when
// stdout is not a terminal.
func renderPlan(w io.Writer, result *plugin.PlanResult, units string, styled bool) error {
	titleStyle := lipgloss.NewStyle()
	labelStyle := lipgloss.NewStyle()
	if styled {
		titleStyle = titleStyle.Bold(true).Foreground(lipgloss.Color("33"))
		labelStyle = labelStyle.Bold(true)
	}

	title := fmt.Sprintf("%s to %s (%s)", result.Origin.Address, result.Destination.Address, result.Profile)
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Distance:"), formatDistance(result.Distance, units))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Duration:"), formatRouteDuration(result.Duration))
	fmt.Fprintf(w, "%s [%.6f, %.6f] to [%.6f, %.6f]\n",
		labelStyle.Render("Coordinates:"),
		result.Origin.Coordinates.Lon(), result.Origin.Coordinates.Lat(),
		result.Destination.Coordinates.Lon(), result.Destination.Coordinates.Lat(),
	)

	if len(result.Segments) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, labelStyle.Render("Directions:"))

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	step := 1
	for _, segment := range result.Segments {
		for _, s := range segment.Steps {
			road := s.Name
			if road != "" {
				road = " (" + road + ")"
			}
			fmt.Fprintf(tw, "  %d.\t%s%s\t%s\t%s\n",
				step, s.Instruction, road, formatDistance(s.Distance, units), formatRouteDuration(s.Duration))
			step++
		}
	}
	return tw.Flush()
}

// formatDistance renders a distance with its unit label.
func formatDistance(distance float64, units string) string {
	return fmt.Sprintf("%.2f %s", distance, units)
}

// formatRouteDuration formats a duration in seconds in a human-readable way.
// Examples: "45s", "6m", "1h30m".
func formatRouteDuration(seconds float64) string {
	total := int(seconds + 0.5)
	if total < secondsPerMinute {
		return fmt.Sprintf("%ds", total)
	}

	minutes := total / secondsPerMinute
	if minutes < minutesPerHour {
		if rem := total % secondsPerMinute; rem != 0 {
			return fmt.Sprintf("%dm%ds", minutes, rem)
		}
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / minutesPerHour
	if rem := minutes % minutesPerHour; rem != 0 {
		return fmt.Sprintf("%dh%dm", hours, rem)
	}
	return fmt.Sprintf("%dh", hours)
}
