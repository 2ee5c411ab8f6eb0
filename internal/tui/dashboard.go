package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/controleplus/internal/poller"
	"github.com/manav03panchal/controleplus/internal/store"
	"github.com/manav03panchal/controleplus/internal/views"
)

// tickMsg is sent when the clock ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be reloaded from the store.
type refreshMsg struct{}

// syncEventMsg is sent when the poller merged new submissions.
type syncEventMsg poller.Event

// syncDoneMsg carries the result of a manual sync.
type syncDoneMsg poller.Result

// syncClosedMsg is sent when the poller subscription is closed.
type syncClosedMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// Source is the data the dashboard reads.
type Source interface {
	Snapshot() store.Snapshot
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	stats    views.Stats
	releases []views.Release
	agenda   views.BlitzAgenda
	sync     SyncState

	source Source
	poller *poller.Poller
	events <-chan poller.Event
	now    func() time.Time

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time
	syncing    bool

	// Configuration
	refreshInterval time.Duration
	releaseDays     int
	maxReleases     int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Source Source
	// Poller is optional. Without it the sync panel only shows whether a
	// URL is configured.
	Poller          *poller.Poller
	Now             func() time.Time
	RefreshInterval time.Duration
	ReleaseDays     int
	MaxReleases     int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.ReleaseDays == 0 {
		config.ReleaseDays = views.DashboardReleaseDays
	}
	if config.MaxReleases == 0 {
		config.MaxReleases = 8
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	m := &DashboardModel{
		source:          config.Source,
		poller:          config.Poller,
		now:             config.Now,
		refreshInterval: config.RefreshInterval,
		releaseDays:     config.ReleaseDays,
		maxReleases:     config.MaxReleases,
	}
	if m.poller != nil {
		m.events = m.poller.Subscribe()
	}
	return m
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd(), m.refreshCmd()}
	if m.events != nil {
		cmds = append(cmds, m.waitForSync())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && m.now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		m.loadSyncState()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case syncEventMsg:
		m.loadData()
		m.setMessage(fmt.Sprintf("%d new submission(s) received", msg.Added), 5*time.Second)
		return m, m.waitForSync()

	case syncClosedMsg:
		m.events = nil
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		m.handleSyncResult(poller.Result(msg))
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil

	case "s":
		if m.poller == nil {
			m.setMessage("Sync is not running here. Use 'controleplus sync once'", 3*time.Second)
			return m, nil
		}
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.setMessage("Checking the spreadsheet...", 10*time.Second)
		return m, m.syncCmd()
	}

	return m, nil
}

func (m *DashboardModel) handleSyncResult(res poller.Result) {
	switch {
	case res.Skipped == poller.SkipNoURL:
		m.setMessage("No spreadsheet URL configured", 3*time.Second)
	case res.Skipped == poller.SkipDebounce:
		m.setMessage("Checked moments ago, try again shortly", 3*time.Second)
	case res.Skipped == poller.SkipInFlight:
		m.setMessage("A check is already running", 3*time.Second)
	case res.Err != nil && res.Added == 0:
		m.err = res.Err
		m.message = ""
	default:
		m.err = nil
		if res.Added > 0 {
			m.loadData()
		}
		m.setMessage(fmt.Sprintf("Synced: %d new of %d received", res.Added, res.Fetched), 3*time.Second)
	}
	m.loadSyncState()
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	panel := m.width
	if m.width >= 120 {
		panel = m.width / 2
	}
	now := m.now()
	sections = append(sections,
		columns(m.width,
			NewStatsComponent(m.stats, panel).View(),
			NewSyncComponent(m.sync, now, panel).View()),
		columns(m.width,
			NewReleasesComponent(m.releases, m.releaseDays, panel, m.maxReleases).View(),
			NewBlitzComponent(m.agenda, panel).View()),
		HelpBar(m.poller != nil),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Controle Plus")
	timeStr := StyleSubtitle.Render(m.now().Format("Mon 02/01/2006, 15:04:05"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// loadData rebuilds every panel from a fresh snapshot.
func (m *DashboardModel) loadData() {
	snap := m.source.Snapshot()
	now := m.now()

	m.stats = views.DashboardStats(snap)
	m.releases = views.UpcomingReleases(snap, now, m.releaseDays)
	m.agenda = views.Agenda(snap.Blitzes, snap.Music, snap.Artists, "", now)
	m.sync.Configured = snap.SheetsURL != ""
	m.loadSyncState()
	m.err = nil
}

func (m *DashboardModel) loadSyncState() {
	if m.poller == nil {
		return
	}
	m.sync.LastAttempt = m.poller.LastAttempt()
	m.sync.NextRun = m.poller.NextRun()
	m.sync.NewData = m.poller.NewData()
	m.sync.Metrics = m.poller.Metrics().Snapshot()
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// waitForSync blocks on the poller subscription until the next event.
func (m *DashboardModel) waitForSync() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return syncClosedMsg{}
		}
		return syncEventMsg(ev)
	}
}

// syncCmd runs one sync cycle off the UI goroutine.
func (m *DashboardModel) syncCmd() tea.Cmd {
	p := m.poller
	return func() tea.Msg {
		return syncDoneMsg(p.Poll(context.Background()))
	}
}

// Run starts the dashboard TUI. When config.Poller is set it is started for
// the lifetime of the program and stopped on exit.
func Run(ctx context.Context, config DashboardConfig) error {
	model := NewDashboardModel(config)

	if config.Poller != nil {
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := config.Poller.Start(runCtx); err != nil {
			return err
		}
		defer config.Poller.Stop()
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
