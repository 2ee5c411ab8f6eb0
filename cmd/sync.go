package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/daemon"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/logging"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/poller"
	"github.com/manav03panchal/controleplus/internal/validate"
)

// Sync command flags.
var (
	syncURLFlagClear  bool
	syncRunFlagDetach bool
	syncLogsFlagTail  int
)

var noStore = map[string]string{annotationNoStore: ""}

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull station registrations from the intake spreadsheet",
	Long: `Stations registered through the public form land in a spreadsheet. Sync
reads it and queues new registrations for review ('controleplus submission
list'). 'sync run' keeps checking every minute; it holds the database while
it runs, so other commands wait until it is stopped.

Examples:
  controleplus sync url https://script.google.com/macros/s/.../exec
  controleplus sync once
  controleplus sync run --detach
  controleplus sync status
  controleplus sync stop`,
	RunE:        runSyncStatus,
	Annotations: noStore,
}

var syncURLCmd = &cobra.Command{
	Use:   "url [URL]",
	Short: "Show or set the spreadsheet URL",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSyncURL,
}

var syncOnceCmd = &cobra.Command{
	Use:   "once",
	Short: "Check the spreadsheet now",
	Args:  cobra.NoArgs,
	RunE:  runSyncOnce,
}

var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Keep checking the spreadsheet until stopped",
	Long: `Check the spreadsheet once at startup and then every sync interval
(default one minute) until interrupted. With --detach the process moves to
the background and writes its output to the sync log.`,
	Args: cobra.NoArgs,
	RunE: runSyncRun,
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show the sync configuration and the running process",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE:        runSyncStatus,
}

var syncStopCmd = &cobra.Command{
	Use:         "stop",
	Short:       "Stop a running 'sync run'",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE:        runSyncStop,
}

var syncLogsCmd = &cobra.Command{
	Use:         "logs",
	Short:       "Show the log of a detached sync process",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE:        runSyncLogs,
}

func init() {
	syncURLCmd.Flags().BoolVar(&syncURLFlagClear, "clear", false, "Remove the configured URL")
	syncRunCmd.Flags().BoolVarP(&syncRunFlagDetach, "detach", "d", false, "Run in the background")
	syncLogsCmd.Flags().IntVarP(&syncLogsFlagTail, "tail", "n", 20, "Number of lines to show")

	syncCmd.AddCommand(syncURLCmd, syncOnceCmd, syncRunCmd, syncStatusCmd, syncStopCmd, syncLogsCmd)
	rootCmd.AddCommand(syncCmd)
}

func newSyncDaemon() *daemon.Daemon {
	return daemon.NewDaemon(daemon.Options{Version: Version})
}

func runSyncURL(cmd *cobra.Command, args []string) error {
	switch {
	case syncURLFlagClear:
		err := ctx.Store.SetSheetsURL("")
		return reportAction(output.ActionResponse{Action: "clear", Kind: "sync"}, "Spreadsheet URL removed", err)
	case len(args) == 1:
		if err := validate.URL(args[0]); err != nil {
			return err
		}
		err := ctx.Store.SetSheetsURL(args[0])
		return reportAction(output.ActionResponse{Action: "set", Kind: "sync", Target: logging.MaskURL(args[0])},
			"Spreadsheet URL saved", err)
	}

	url := ctx.Store.SheetsURL()
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.SyncStatusResponse{URL: url, Configured: url != ""})
	}
	if url == "" {
		ctx.CLIFormatter().Muted("No spreadsheet URL configured")
		return nil
	}
	ctx.Formatter.Println(url)
	return nil
}

// syncOnceResponse is the JSON shape of sync once.
type syncOnceResponse struct {
	Status  string `json:"status"`
	Skipped string `json:"skipped,omitempty"`
	Fetched int    `json:"fetched"`
	Added   int    `json:"added"`
	Pending int    `json:"pending_submissions"`
	Warning string `json:"warning,omitempty"`
}

func runSyncOnce(cmd *cobra.Command, args []string) error {
	p, err := ctx.NewPoller()
	if err != nil {
		return err
	}
	res := p.Poll(cmd.Context())

	var warning string
	if res.Err != nil {
		if warning, err = splitWarning(res.Err); err != nil {
			return err
		}
	}
	if res.Skipped == poller.SkipNoURL {
		return errors.NewUserError("no spreadsheet URL configured", errors.GetSuggestion(errors.ErrSheetsNotConfigured)).
			WithCause(errors.ErrSheetsNotConfigured)
	}

	pending := ctx.Store.PendingSubmissions()
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(syncOnceResponse{
			Status: "ok", Skipped: string(res.Skipped), Fetched: res.Fetched,
			Added: res.Added, Pending: pending, Warning: warning,
		})
	}

	cli := ctx.CLIFormatter()
	if !res.Ran() {
		cli.Muted(fmt.Sprintf("Check skipped (%s), try again shortly", res.Skipped))
		return nil
	}
	if res.Added > 0 {
		cli.Success(fmt.Sprintf("%d new submission(s) of %d received", res.Added, res.Fetched))
	} else {
		cli.Muted(fmt.Sprintf("No new submissions (%d received)", res.Fetched))
	}
	if pending > 0 {
		cli.Muted(fmt.Sprintf("%d waiting for review: controleplus submission list", pending))
	}
	printWarning(warning)
	return nil
}

func runSyncRun(cmd *cobra.Command, args []string) error {
	d := newSyncDaemon()

	if syncRunFlagDetach {
		childArgs := []string{"sync", "run"}
		if flagConfig != "" {
			childArgs = append(childArgs, "--config", flagConfig)
		}
		if flagDebug {
			childArgs = append(childArgs, "--debug")
		}
		pid, err := d.StartBackground(childArgs)
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			return errors.NewUserError(fmt.Sprintf("sync is already running (PID %d)", pid),
				"Stop it with: controleplus sync stop")
		}
		if err != nil {
			return err
		}
		f := flagFormatter()
		if f.IsJSON() {
			return f.JSON(output.NewDaemonOutput(pid, time.Now(), time.Now()))
		}
		output.NewCLIFormatter(f).Success(fmt.Sprintf("Sync started in the background (PID %d)", pid))
		f.Println("Log: " + d.LogPath())
		return nil
	}

	if ctx.Store.SheetsURL() == "" {
		ctx.CLIFormatter().Warning("No spreadsheet URL configured; checks are skipped until one is set")
	}
	p, err := ctx.NewPoller()
	if err != nil {
		return err
	}
	if !ctx.IsJSON() {
		ctx.CLIFormatter().Muted("Checking for new submissions, press Ctrl+C to stop")
	}
	if err := d.Run(cmd.Context(), p, ctx.Store); err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			return errors.NewUserError("sync is already running", "Stop it with: controleplus sync stop")
		}
		return err
	}
	return nil
}

// runSyncStatus reads the state file of a running sync process. Without
// one it opens the store for the configured URL and pending count.
func runSyncStatus(cmd *cobra.Command, args []string) error {
	d := newSyncDaemon()
	status := d.GetStatus()
	resp := output.SyncStatusResponse{Daemon: output.NewDaemonOutput(0, time.Time{}, time.Time{})}

	if status.Running {
		resp.Daemon = &output.DaemonOutput{Running: true, PID: status.PID}
		if st := status.State; st != nil {
			resp.Daemon = output.NewDaemonOutput(status.PID, st.StartedAt, time.Now())
			resp.URL = st.URL
			resp.Configured = st.URL != ""
			resp.Pending = st.Submissions
			metrics := st.Metrics
			resp.Metrics = &metrics
		}
	} else {
		if err := initRuntime(); err != nil {
			return err
		}
		resp.URL = logging.MaskURL(ctx.Store.SheetsURL())
		resp.Configured = resp.URL != ""
		resp.Pending = ctx.Store.PendingSubmissions()
	}

	f := flagFormatter()
	if f.IsJSON() {
		return f.JSON(resp)
	}

	cli := output.NewCLIFormatter(f)
	cli.Title("Sync")
	if resp.Configured {
		cli.Field("URL", resp.URL)
	} else {
		cli.Field("URL", "not configured (controleplus sync url URL)")
	}
	cli.Field("Pending", fmt.Sprintf("%d submission(s)", resp.Pending))
	if !resp.Daemon.Running {
		cli.Field("Process", "stopped")
		return nil
	}
	cli.Field("Process", fmt.Sprintf("running (PID %d)", resp.Daemon.PID))
	cli.Field("Uptime", resp.Daemon.Uptime)
	if st := status.State; st != nil {
		now := time.Now()
		if st.Metrics.LastAttemptAt != nil {
			cli.Field("Last check", output.FormatRelative(*st.Metrics.LastAttemptAt, now))
		}
		if st.NextRun != nil {
			cli.Field("Next check", output.FormatRelative(*st.NextRun, now))
		}
		cli.Field("Checks", fmt.Sprintf("%d, %d failed, %d merged",
			st.Metrics.AttemptsTotal, st.Metrics.FailuresTotal, st.Metrics.MergedTotal))
		if st.Metrics.LastError != "" {
			cli.Field("Last error", st.Metrics.LastError)
		}
		if st.Health != nil {
			cli.Field("Health", st.Health.Status)
		}
	}
	return nil
}

func runSyncStop(cmd *cobra.Command, args []string) error {
	d := newSyncDaemon()
	status := d.GetStatus()
	f := flagFormatter()

	if err := d.Stop(); err != nil {
		if errors.Is(err, daemon.ErrNotRunning) {
			if f.IsJSON() {
				return f.JSON(output.ActionResponse{Status: "ok", Action: "stop", Kind: "sync"})
			}
			output.NewCLIFormatter(f).Muted("Sync is not running")
			return nil
		}
		return err
	}
	if f.IsJSON() {
		return f.JSON(output.ActionResponse{Status: "ok", Action: "stop", Kind: "sync", Count: 1})
	}
	output.NewCLIFormatter(f).Success(fmt.Sprintf("Sync stopped (was PID %d)", status.PID))
	return nil
}

func runSyncLogs(cmd *cobra.Command, args []string) error {
	path := newSyncDaemon().LogPath()
	f := flagFormatter()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		output.NewCLIFormatter(f).Muted("No log file at " + path)
		return nil
	}
	lines, err := tailFile(path, syncLogsFlagTail)
	if err != nil {
		return err
	}
	for _, line := range lines {
		f.Println(line)
	}
	return nil
}

// tailFile reads the last n lines from a file.
func tailFile(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
