package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/backup"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/runtime"
	"github.com/manav03panchal/controleplus/internal/storage"
)

var (
	backupExportFlagOutput  string
	backupImportFlagDryRun  bool
	backupFlagYes           bool
	backupSalvageFlagOutput string
)

var backupCmd = &cobra.Command{
	Use:     "backup",
	Aliases: []string{"backups", "bk"},
	Short:   "Export, import and store backups",
	Long: `A backup is one JSON document with every collection and the Crowley
markets. Pending submissions and settings are not included. Importing a
backup replaces all current records.

Backups can also be kept in the configured backup destination, a local
directory or an S3 compatible bucket (see the [backup] config section).

Examples:
  controleplus backup export
  controleplus backup export -o - > backup.json
  controleplus backup import controle-plus-backup-2026-03-04.json --dry-run
  controleplus backup push
  controleplus backup pull controle-plus-backup-2026-03-04.json --yes
  controleplus backup salvage -o salvage.json`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup file",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all records with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Store a backup in the backup destination",
	Args:  cobra.NoArgs,
	RunE:  runBackupPush,
}

var backupPullCmd = &cobra.Command{
	Use:   "pull NAME",
	Short: "Replace all records with a stored backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupPull,
}

var backupSalvageCmd = &cobra.Command{
	Use:   "salvage",
	Short: "Write every readable stored value to a file",
	Long: `Read the database key by key and write every value that still decodes to
a JSON file. Unreadable keys are listed in the file under "skipped". Use it
when commands report a corrupted database, before restoring a backup.`,
	Args: cobra.NoArgs,
	RunE: runBackupSalvage,
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored backups",
	Args:    cobra.NoArgs,
	RunE:    runBackupList,
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupExportFlagOutput, "output", "o", "",
		"Output file, - for stdout (default controle-plus-backup-DATE.json)")
	backupImportCmd.Flags().BoolVar(&backupImportFlagDryRun, "dry-run", false, "Check the file without importing")
	for _, c := range []*cobra.Command{backupImportCmd, backupPullCmd} {
		c.Flags().BoolVarP(&backupFlagYes, "yes", "y", false, "Do not ask for confirmation")
	}

	backupSalvageCmd.Flags().StringVarP(&backupSalvageFlagOutput, "output", "o", "",
		"Output file, - for stdout (default controle-plus-salvage-DATE.json)")

	backupCmd.AddCommand(backupExportCmd, backupImportCmd, backupPushCmd, backupPullCmd, backupListCmd,
		backupSalvageCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	doc := ctx.Store.ExportBackup()
	data, err := backup.Encode(doc)
	if err != nil {
		return err
	}

	target := backupExportFlagOutput
	if target == "" {
		target = backup.Filename(ctx.Now())
	}
	if target == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return errors.NewSystemErrorWithOp("backup export", "could not write "+target, err)
	}
	return reportAction(output.ActionResponse{Action: "export", Target: target, Count: doc.Total()},
		fmt.Sprintf("Exported %d records to %s", doc.Total(), target), nil)
}

func runBackupSalvage(cmd *cobra.Command, args []string) error {
	report, err := storage.Salvage(ctx.DB)
	if err != nil {
		return errors.NewSystemErrorWithOp("backup salvage", "could not read the database", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	target := backupSalvageFlagOutput
	if target == "" {
		target = "controle-plus-salvage-" + ctx.Now().Format("2006-01-02") + ".json"
	}
	if target == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := storage.SafeWrite(target, data, 0o600); err != nil {
		return err
	}
	message := fmt.Sprintf("Saved %d stored value(s) to %s", len(report.Values), target)
	if len(report.Skipped) > 0 {
		message += fmt.Sprintf(", %d unreadable", len(report.Skipped))
	}
	return reportAction(output.ActionResponse{Action: "salvage", Target: target, Count: len(report.Values)},
		message, nil)
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return errors.NewUserError("could not read "+args[0]+": "+err.Error(), "Check the file path")
	}
	doc, err := backup.Decode(data)
	if err != nil {
		return err
	}
	if backupImportFlagDryRun {
		return reportAction(output.ActionResponse{Action: "import", Target: args[0], Count: doc.Total()},
			fmt.Sprintf("%s is a valid backup with %d records", args[0], doc.Total()), nil)
	}
	if args[0] == "-" && !backupFlagYes {
		// stdin already holds the backup, so there is nothing to answer with.
		return runtime.ErrConfirmationRequired
	}
	return importDocument(doc, args[0], backupFlagYes)
}

func runBackupPush(cmd *cobra.Command, args []string) error {
	sink, err := ctx.BackupSink(cmd.Context())
	if err != nil {
		return err
	}
	doc := ctx.Store.ExportBackup()
	data, err := backup.Encode(doc)
	if err != nil {
		return err
	}
	where, err := sink.Put(cmd.Context(), backup.Filename(ctx.Now()), data)
	if err != nil {
		return err
	}
	return reportAction(output.ActionResponse{Action: "push", Target: where, Count: doc.Total()},
		fmt.Sprintf("Stored %d records at %s", doc.Total(), where), nil)
}

func runBackupPull(cmd *cobra.Command, args []string) error {
	sink, err := ctx.BackupSink(cmd.Context())
	if err != nil {
		return err
	}
	data, err := sink.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	doc, err := backup.Decode(data)
	if err != nil {
		return err
	}
	return importDocument(doc, args[0], backupFlagYes)
}

// importDocument replaces the store contents with doc after confirmation.
func importDocument(doc *backup.Document, source string, yes bool) error {
	question := fmt.Sprintf("Replace all records with the %d in %s?", doc.Total(), source)
	if err := confirm(question, yes); err != nil {
		return cancelled(err)
	}
	err := ctx.Store.ImportBackup(doc)
	return reportAction(output.ActionResponse{Action: "import", Target: source, Count: doc.Total()},
		fmt.Sprintf("Imported %d records from %s", doc.Total(), source), err)
}

func runBackupList(cmd *cobra.Command, args []string) error {
	sink, err := ctx.BackupSink(cmd.Context())
	if err != nil {
		return err
	}
	entries, err := sink.List(cmd.Context())
	if err != nil {
		return err
	}
	rows := make([]output.TableRow, len(entries))
	for i, e := range entries {
		rows[i] = output.TableRow{Columns: []string{
			e.Name, output.FormatBytes(uint64(e.Size)), output.FormatTimeShort(e.Modified),
		}}
	}
	return printList("backups", entries, len(entries), []string{"Name", "Size", "Modified"}, rows,
		output.AlignLeft, output.AlignRight)
}
