// Package tui provides the live terminal dashboard for Controle Plus.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/controleplus/internal/classify"
)

// Color palette for the TUI dashboard.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorOrange    = lipgloss.Color("#F97316")
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorActive    = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for subtitles and secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleArtist is used for artist names.
	StyleArtist = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSong is used for song titles.
	StyleSong = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// StyleCount is used for counters.
	StyleCount = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleActive marks a running sync.
	StyleActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleInactive marks a disabled sync.
	StyleInactive = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleWarning is used for warning messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleSuccess is used for success messages.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// StyleMuted is used for muted text.
var StyleMuted = StyleSubtitle

// Box styles for different sections.
var (
	// StyleBox is the default panel border.
	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleAlertBox highlights a panel with fresh data.
	StyleAlertBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(1, 2).
			MarginBottom(1)
)

var levelColors = map[classify.Level]lipgloss.Color{
	classify.LevelCritical:  ColorError,
	classify.LevelUrgent:    ColorError,
	classify.LevelToday:     ColorOrange,
	classify.LevelSoon:      ColorOrange,
	classify.LevelWarning:   ColorWarning,
	classify.LevelScheduled: ColorActive,
	classify.LevelLater:     ColorActive,
	classify.LevelOK:        ColorSuccess,
	classify.LevelReleased:  ColorSuccess,
}

// RenderStatus renders a status label in the color of its level.
func RenderStatus(s classify.Status) string {
	color, ok := levelColors[s.Level]
	if !ok {
		return StyleMuted.Render(s.Label)
	}
	style := lipgloss.NewStyle().Foreground(color)
	if s.Level == classify.LevelCritical || s.Level == classify.LevelToday {
		style = style.Bold(true)
	}
	return style.Render(s.Label)
}

// ProgressBar creates a progress bar string.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}

// FormatSong formats "artist - title" with styles.
func FormatSong(artist, title string) string {
	if artist == "" {
		return StyleSong.Render(title)
	}
	return StyleArtist.Render(artist) + " - " + StyleSong.Render(title)
}
