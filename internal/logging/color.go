package logging

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// Severity palette, matching the usual traffic-light convention.
var (
	colorCritical = lipgloss.Color("196") // Red
	colorError    = lipgloss.Color("203") // Light red
	colorWarning  = lipgloss.Color("214") // Orange
	colorInfo     = lipgloss.Color("39")  // Blue
	colorMuted    = lipgloss.Color("240") // Dark gray
)

var severityStyles = map[about.Severity]lipgloss.Style{
	about.Critical: lipgloss.NewStyle().Bold(true).Foreground(colorCritical),
	about.Error:    lipgloss.NewStyle().Foreground(colorError),
	about.Warning:  lipgloss.NewStyle().Foreground(colorWarning),
	about.Info:     lipgloss.NewStyle().Foreground(colorInfo),
	about.Debug:    lipgloss.NewStyle().Foreground(colorMuted),
}

// ColorEnabled reports whether diagnostics written to f should be styled.
//
// Returns false if:
//   - NO_COLOR is set (https://no-color.org)
//   - CI is set (log collectors rarely render ANSI codes)
//   - f is not a terminal
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func styleSeverity(sev about.Severity) string {
	style, ok := severityStyles[sev]
	if !ok {
		return sev.String()
	}
	return style.Render(sev.String())
}
