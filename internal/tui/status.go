package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/poller"
	"github.com/manav03panchal/controleplus/internal/views"
)

func boxWidth(width int) int {
	if width < 24 {
		return 20
	}
	return width - 4
}

// StatsComponent displays the record counters.
type StatsComponent struct {
	Stats views.Stats
	Width int
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent(stats views.Stats, width int) *StatsComponent {
	return &StatsComponent{Stats: stats, Width: width}
}

// View renders the stats component.
func (sc *StatsComponent) View() string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render("Overview"))
	content.WriteString("\n")

	rows := []struct {
		label string
		n     int
	}{
		{"Radios", sc.Stats.Radios},
		{"City halls", sc.Stats.CityHalls},
		{"Businesses", sc.Stats.Businesses},
		{"Artists", sc.Stats.Artists},
		{"Songs", sc.Stats.Music},
		{"Promotions", sc.Stats.Promotions},
		{"Events", sc.Stats.Events},
		{"Blitz visits", sc.Stats.Blitzes},
		{"Campaigns", sc.Stats.Campaigns},
	}
	for i, r := range rows {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(fmt.Sprintf("%-14s %s", r.label, StyleCount.Render(output.FormatCount(r.n))))
	}
	if sc.Stats.Submissions > 0 {
		content.WriteString("\n\n")
		content.WriteString(StyleWarning.Render(fmt.Sprintf("%d submission(s) waiting for review", sc.Stats.Submissions)))
	}

	return StyleBox.Width(boxWidth(sc.Width)).Render(content.String())
}

// ReleasesComponent displays the upcoming releases.
type ReleasesComponent struct {
	Releases []views.Release
	Days     int
	Width    int
}

// NewReleasesComponent creates a new releases component.
func NewReleasesComponent(releases []views.Release, days, width, limit int) *ReleasesComponent {
	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}
	return &ReleasesComponent{Releases: releases, Days: days, Width: width}
}

// View renders the releases component.
func (rc *ReleasesComponent) View() string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render(fmt.Sprintf("Releases (next %d days)", rc.Days)))
	content.WriteString("\n")

	if len(rc.Releases) == 0 {
		content.WriteString(StyleMuted.Render("No releases scheduled"))
	}
	for i, r := range rc.Releases {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(FormatSong(r.ArtistName, r.Music.Title))
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render("  " + classify.FormatDate(r.Music.ReleaseDate) + "  "))
		if r.Status != nil {
			content.WriteString(RenderStatus(*r.Status))
		}
	}

	return StyleBox.Width(boxWidth(rc.Width)).Render(content.String())
}

// BlitzComponent displays the blitz visits of the current week.
type BlitzComponent struct {
	Agenda views.BlitzAgenda
	Width  int
}

// NewBlitzComponent creates a new blitz component.
func NewBlitzComponent(agenda views.BlitzAgenda, width int) *BlitzComponent {
	return &BlitzComponent{Agenda: agenda, Width: width}
}

// View renders the blitz component.
func (bc *BlitzComponent) View() string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render("Blitz " + bc.Agenda.Week.Label()))
	content.WriteString("\n")

	if len(bc.Agenda.ThisWeek) == 0 {
		content.WriteString(StyleMuted.Render("No visits this week"))
	}
	for i, e := range bc.Agenda.ThisWeek {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(FormatSong(e.Artist.Name, e.Music.Title))
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render("  " + classify.FormatDate(e.Blitz.EventDate) + "  "))
		content.WriteString(RenderStatus(e.Countdown))
	}
	if n := len(bc.Agenda.Future); n > 0 {
		content.WriteString("\n\n")
		content.WriteString(StyleMuted.Render(fmt.Sprintf("%d more scheduled after this week", n)))
	}

	return StyleBox.Width(boxWidth(bc.Width)).Render(content.String())
}

// SyncState is what the sync panel shows about the poller.
type SyncState struct {
	Configured  bool
	LastAttempt time.Time
	NextRun     time.Time
	NewData     bool
	Metrics     poller.MetricsSnapshot
}

// SyncComponent displays the spreadsheet sync status.
type SyncComponent struct {
	State SyncState
	Now   time.Time
	Width int
}

// NewSyncComponent creates a new sync component.
func NewSyncComponent(state SyncState, now time.Time, width int) *SyncComponent {
	return &SyncComponent{State: state, Now: now, Width: width}
}

// View renders the sync component.
func (sc *SyncComponent) View() string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render("Spreadsheet Sync"))
	content.WriteString("\n")

	st := sc.State
	if !st.Configured {
		content.WriteString(StyleInactive.Render("Not configured"))
		content.WriteString("\n")
		content.WriteString(StyleMuted.Render("Run 'controleplus sync url <URL>' to enable"))
		return StyleBox.Width(boxWidth(sc.Width)).Render(content.String())
	}

	if st.NewData {
		content.WriteString(StyleActive.Render("● New submissions"))
	} else {
		content.WriteString(StyleActive.Render("● Watching"))
	}
	content.WriteString("\n")
	content.WriteString(StyleSubtitle.Render("Last check  " + output.FormatRelative(st.LastAttempt, sc.Now)))
	content.WriteString("\n")
	content.WriteString(StyleSubtitle.Render("Next check  " + output.FormatRelative(st.NextRun, sc.Now)))

	if !st.LastAttempt.IsZero() && st.NextRun.After(st.LastAttempt) {
		total := st.NextRun.Sub(st.LastAttempt)
		elapsed := sc.Now.Sub(st.LastAttempt)
		barWidth := boxWidth(sc.Width) - 8
		if barWidth < 10 {
			barWidth = 10
		}
		content.WriteString("\n")
		content.WriteString(ProgressBar(float64(elapsed)/float64(total)*100, barWidth))
	}

	content.WriteString("\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d checks, %d failed, %d merged",
		st.Metrics.AttemptsTotal, st.Metrics.FailuresTotal, st.Metrics.MergedTotal)))
	if st.Metrics.LastError != "" && st.Metrics.LastErrorAt != nil &&
		(st.Metrics.LastSuccessAt == nil || st.Metrics.LastErrorAt.After(*st.Metrics.LastSuccessAt)) {
		content.WriteString("\n")
		content.WriteString(StyleError.Render("Last error: " + st.Metrics.LastError))
	}

	box := StyleBox
	if st.NewData {
		box = StyleAlertBox
	}
	return box.Width(boxWidth(sc.Width)).Render(content.String())
}

type helpKey struct {
	key  string
	desc string
}

// HelpBar renders the help bar at the bottom.
func HelpBar(syncEnabled bool) string {
	keys := []helpKey{{"r", "refresh"}}
	if syncEnabled {
		keys = append(keys, helpKey{"s", "sync now"})
	}
	keys = append(keys, helpKey{"q", "quit"})

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

// columns lays panels side by side when the terminal is wide enough.
func columns(width int, left, right string) string {
	if width >= 120 {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, right)
}
