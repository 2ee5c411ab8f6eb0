package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/store"
	"github.com/manav03panchal/controleplus/internal/views"
)

var archiveFlagYes bool

// newArchiveCmd returns the "archive ID" subcommand of a record command.
func newArchiveCmd(kind model.Kind) *cobra.Command {
	long := fmt.Sprintf("Move a %s to the archive. It can be restored with 'controleplus archive restore %s ID'.",
		kind.Noun(), kind.Tag())
	if kind == model.KindArtist {
		long += "\nArchiving an artist also archives their songs."
	}
	var yes bool
	cmd := &cobra.Command{
		Use:               "archive ID",
		Short:             "Archive a " + kind.Noun(),
		Long:              long,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeIDs(kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(kind, args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// runArchive archives one record after confirmation.
func runArchive(kind model.Kind, id string, yes bool) error {
	question := fmt.Sprintf("Archive %s %s?", kind.Noun(), id)
	if kind == model.KindArtist {
		question = fmt.Sprintf("Archive artist %s and all of their songs?", id)
	}
	if err := confirm(question, yes); err != nil {
		return cancelled(err)
	}
	err := ctx.Store.Archive(kind, id)
	return reportAction(output.ActionResponse{
		Action: "archive", Kind: kind.Tag(), ID: id, Count: 1,
	}, fmt.Sprintf("Archived %s %s", kind.Noun(), id), err)
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Review, restore and purge archived records",
	Long: `Archived records are hidden from the lists. They can be restored or purged
for good. Purging an artist deletes their songs and removes them from
promotions, events and businesses.

Examples:
  controleplus archive list
  controleplus archive list artists
  controleplus archive restore radios id_...
  controleplus archive purge-all promotions --yes`,
	RunE: runArchiveList,
}

var archiveListCmd = &cobra.Command{
	Use:               "list [KIND]",
	Aliases:           []string{"ls"},
	Short:             "Count archived records, or list those of one kind",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeKinds,
	RunE:              runArchiveList,
}

var archiveRestoreCmd = &cobra.Command{
	Use:               "restore KIND ID",
	Short:             "Restore an archived record",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeKindAndID,
	RunE:              runArchiveRestore,
}

var archivePurgeCmd = &cobra.Command{
	Use:               "purge KIND ID",
	Short:             "Delete a record permanently",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeKindAndID,
	RunE:              runArchivePurge,
}

var archivePurgeAllCmd = &cobra.Command{
	Use:               "purge-all KIND",
	Short:             "Delete every archived record of a kind permanently",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKinds,
	RunE:              runArchivePurgeAll,
}

func init() {
	archivePurgeCmd.Flags().BoolVarP(&archiveFlagYes, "yes", "y", false, "Do not ask for confirmation")
	archivePurgeAllCmd.Flags().BoolVarP(&archiveFlagYes, "yes", "y", false, "Do not ask for confirmation")

	archiveCmd.AddCommand(archiveListCmd, archiveRestoreCmd, archivePurgeCmd, archivePurgeAllCmd)
	rootCmd.AddCommand(archiveCmd)
}

// archivedItem is one row of the archive listing.
type archivedItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	if len(args) == 0 {
		overview := views.ArchiveOverview(snap)
		if ctx.IsJSON() {
			counts := make(map[string]int, len(overview))
			for _, c := range overview {
				counts[c.Kind.Tag()] = c.Count
			}
			return ctx.Formatter.JSON(counts)
		}
		rows := make([]output.TableRow, len(overview))
		for i, c := range overview {
			rows[i] = output.TableRow{Columns: []string{c.Kind.Label(), c.Kind.Tag(), output.FormatCount(c.Count)}}
		}
		ctx.CLIFormatter().PrintTable([]string{"Kind", "Tag", "Archived"}, rows,
			output.AlignLeft, output.AlignLeft, output.AlignRight)
		return nil
	}

	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}
	items := archivedItems(snap, kind)
	rows := make([]output.TableRow, len(items))
	for i, it := range items {
		rows[i] = output.TableRow{Columns: []string{it.ID, it.Label}}
	}
	return printList(kind.Tag(), items, len(items), []string{"ID", kind.Label()}, rows)
}

// archivedItems lists the archived records of kind with a display label.
func archivedItems(snap store.Snapshot, kind model.Kind) []archivedItem {
	return labeledItems(snap, kind, true)
}

// labeledItems lists the records of kind whose archived flag matches, each
// with the label shown in tables and completions.
func labeledItems(snap store.Snapshot, kind model.Kind, archived bool) []archivedItem {
	var items []archivedItem
	add := func(rec model.Record, label string) {
		if rec.Archived() == archived {
			items = append(items, archivedItem{ID: rec.GetID(), Label: label})
		}
	}
	switch kind {
	case model.KindRadio:
		for i := range snap.Radios {
			add(&snap.Radios[i], snap.Radios[i].Name)
		}
	case model.KindCityHall:
		for i := range snap.CityHalls {
			c := &snap.CityHalls[i]
			add(c, c.CityName+"/"+c.State)
		}
	case model.KindBusiness:
		for i := range snap.Businesses {
			add(&snap.Businesses[i], snap.Businesses[i].Name)
		}
	case model.KindArtist:
		for i := range snap.Artists {
			add(&snap.Artists[i], snap.Artists[i].Name)
		}
	case model.KindMusic:
		for i := range snap.Music {
			add(&snap.Music[i], snap.Music[i].Title)
		}
	case model.KindPromotion:
		for i := range snap.Promotions {
			add(&snap.Promotions[i], snap.Promotions[i].Name)
		}
	case model.KindEvent:
		for i := range snap.Events {
			add(&snap.Events[i], snap.Events[i].Name)
		}
	case model.KindBlitz:
		for i := range snap.Blitzes {
			add(&snap.Blitzes[i], snap.Blitzes[i].EventDate)
		}
	case model.KindCampaign:
		for i := range snap.Campaigns {
			add(&snap.Campaigns[i], snap.Campaigns[i].Subject)
		}
	}
	return items
}

func runArchiveRestore(cmd *cobra.Command, args []string) error {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}
	err = ctx.Store.Restore(kind, args[1])
	return reportAction(output.ActionResponse{
		Action: "restore", Kind: kind.Tag(), ID: args[1], Count: 1,
	}, fmt.Sprintf("Restored %s %s", kind.Noun(), args[1]), err)
}

func runArchivePurge(cmd *cobra.Command, args []string) error {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}
	question := fmt.Sprintf("Delete %s %s permanently?", kind.Noun(), args[1])
	if kind == model.KindArtist {
		question = fmt.Sprintf("Delete artist %s and all of their songs permanently?", args[1])
	}
	if err := confirm(question, archiveFlagYes); err != nil {
		return cancelled(err)
	}
	err = ctx.Store.Purge(kind, args[1])
	return reportAction(output.ActionResponse{
		Action: "purge", Kind: kind.Tag(), ID: args[1], Count: 1,
	}, fmt.Sprintf("Deleted %s %s", kind.Noun(), args[1]), err)
}

func runArchivePurgeAll(cmd *cobra.Command, args []string) error {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}
	_, archived, err := ctx.Store.Counts(kind)
	if err != nil {
		return err
	}
	if archived == 0 {
		return reportAction(output.ActionResponse{Action: "purge-all", Kind: kind.Tag()},
			"Nothing archived", nil)
	}
	if err := confirm(fmt.Sprintf("Delete %d archived %s permanently?", archived, kind.Tag()), archiveFlagYes); err != nil {
		return cancelled(err)
	}
	n, err := ctx.Store.PurgeArchived(kind)
	return reportAction(output.ActionResponse{
		Action: "purge-all", Kind: kind.Tag(), Count: n,
	}, fmt.Sprintf("Deleted %d %s", n, kind.Tag()), err)
}
