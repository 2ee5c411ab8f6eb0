package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/tui"
	"github.com/manav03panchal/controleplus/internal/views"
)

// Dashboard command flags.
var (
	dashboardFlagLive bool
	dashboardFlagDays int
	dashboardFlagSync bool
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Show record counts and upcoming releases",
	Long: `Show how many records of each kind are active and which songs are released
in the next days. With --live an interactive dashboard opens instead.

The live dashboard shows:
  - Record counts
  - Upcoming releases with their countdown
  - Sync state and the number of submissions waiting for review

Keyboard Controls:
  s - Check the spreadsheet now
  r - Refresh data
  q - Quit dashboard

Examples:
  controleplus dashboard
  controleplus dashboard --days 60
  controleplus dashboard --live`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVarP(&dashboardFlagLive, "live", "l", false, "Open the interactive dashboard")
	dashboardCmd.Flags().IntVar(&dashboardFlagDays, "days", views.DashboardReleaseDays, "Release horizon in days")
	dashboardCmd.Flags().BoolVar(&dashboardFlagSync, "sync", true, "Check the spreadsheet while the live dashboard is open")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !dashboardFlagLive {
		return printDashboard(dashboardFlagDays)
	}

	config := tui.DashboardConfig{
		Source:      ctx.Store,
		Now:         ctx.Now,
		ReleaseDays: dashboardFlagDays,
	}
	if dashboardFlagSync {
		p, err := ctx.NewPoller()
		if err != nil {
			return err
		}
		config.Poller = p
	}
	if warning, err := splitWarning(ctx.Store.SetActiveView("dashboard")); err != nil {
		return err
	} else if warning != "" {
		ctx.Debugf("active view not saved: %s", warning)
	}
	return tui.Run(cmd.Context(), config)
}

// runDashboardSummary is the default command.
func runDashboardSummary() error {
	return printDashboard(views.DashboardReleaseDays)
}

func printDashboard(days int) error {
	snap := ctx.Store.Snapshot()
	now := ctx.Now()
	stats := views.DashboardStats(snap)
	releases := views.UpcomingReleases(snap, now, days)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewDashboardResponse(stats, releases))
	}

	cli := ctx.CLIFormatter()
	cli.Title("Controle Plus")
	counts := []struct {
		label string
		n     int
	}{
		{"Rádios", stats.Radios},
		{"Prefeituras", stats.CityHalls},
		{"Empresários", stats.Businesses},
		{"Artistas", stats.Artists},
		{"Músicas", stats.Music},
		{"Promoções", stats.Promotions},
		{"Eventos", stats.Events},
		{"Blitz", stats.Blitzes},
		{"Campanhas", stats.Campaigns},
	}
	rows := make([]output.TableRow, len(counts))
	for i, c := range counts {
		rows[i] = output.TableRow{Columns: []string{c.label, output.FormatCount(c.n)}}
	}
	cli.PrintTable([]string{"Kind", "Active"}, rows, output.AlignLeft, output.AlignRight)

	ctx.Formatter.Println()
	cli.Title(fmt.Sprintf("Releases in the next %d days", days))
	if len(releases) == 0 {
		cli.Muted("No upcoming releases")
	} else {
		rows = make([]output.TableRow, len(releases))
		for i, r := range releases {
			rows[i] = output.TableRow{Columns: []string{
				r.Music.ReleaseDate,
				r.Music.Title,
				r.ArtistName,
				cli.Status(r.Status),
			}}
		}
		cli.PrintTable([]string{"Date", "Song", "Artist", "Status"}, rows)
	}

	printReminder(releases)
	if stats.Submissions > 0 {
		cli.Warning(strconv.Itoa(stats.Submissions) + " station submission(s) waiting for review: controleplus submission list")
	}
	return nil
}

// printReminder flags releases within the reminder horizon.
func printReminder(releases []views.Release) {
	soon := 0
	for _, r := range releases {
		if r.Status != nil && r.Status.Days <= views.ReminderDays {
			soon++
		}
	}
	if soon > 0 {
		ctx.CLIFormatter().Warning(fmt.Sprintf("%d release(s) in the next %d days", soon, views.ReminderDays))
	}
}
