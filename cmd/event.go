package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/validate"
	"github.com/manav03panchal/controleplus/internal/views"
)

var eventForm = form[model.AppEvent]{
	textField("name", "Event name", func(e *model.AppEvent) *string { return &e.Name }),
	dateField("date", "Event date", func(e *model.AppEvent) *string { return &e.Date }),
	textField("city", "City", func(e *model.AppEvent) *string { return &e.City }),
	textField("state", "State (UF)", func(e *model.AppEvent) *string { return &e.State }),
	textField("venue", "Venue", func(e *model.AppEvent) *string { return &e.Venue }),
	noteField("details", "Details", func(e *model.AppEvent) *string { return &e.Details }),
	listField("artists", "Linked artist ids", func(e *model.AppEvent) *[]string { return &e.LinkedArtistIDs }),
	listField("businesses", "Linked business ids", func(e *model.AppEvent) *[]string { return &e.LinkedBusinessIDs }),
}

var (
	eventListFlagSearch string
	eventListFlagAll    bool

	eventAddForm  *boundForm[model.AppEvent]
	eventEditForm *boundForm[model.AppEvent]
)

var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"events", "e"},
	Short:   "Manage shows and events",
	Long: `List, add and edit events linked to artists and businesses.

Examples:
  controleplus event add --name "Festa do Peão" --date 2026-08-20 --city Barretos --state SP --artists id_...
  controleplus event list --search barretos`,
	RunE: runEventList,
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List events by date",
	Args:    cobra.NoArgs,
	RunE:    runEventList,
}

var eventShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show an event",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindEvent),
	RunE:              runEventShow,
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an event",
	Args:  cobra.NoArgs,
	RunE:  runEventAdd,
}

var eventEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit an event",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindEvent),
	RunE:              runEventEdit,
}

func init() {
	eventListCmd.Flags().StringVarP(&eventListFlagSearch, "search", "s", "", "Search name, city, venue or artist")
	eventListCmd.Flags().BoolVar(&eventListFlagAll, "all", false, "Include archived events")

	eventAddForm = eventForm.bind(eventAddCmd)
	eventEditForm = eventForm.bind(eventEditCmd)

	eventCmd.AddCommand(eventListCmd, eventShowCmd, eventAddCmd, eventEditCmd,
		newArchiveCmd(model.KindEvent))
	rootCmd.AddCommand(eventCmd)
}

func runEventList(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	events := snap.Events
	if !eventListFlagAll {
		events = views.Active(events)
	}
	events = views.SortEvents(views.Search(events, eventListFlagSearch, views.EventFields(snap.Artists)))

	names := artistNameIndex(snap.Artists)
	rows := make([]output.TableRow, len(events))
	for i, e := range events {
		rows[i] = output.TableRow{Columns: []string{
			e.ID,
			e.Name + archivedMark(e.IsArchived),
			classify.FormatDate(e.Date),
			orDash(e.City + "/" + e.State),
			orDash(e.Venue),
			shortList(lookupNames(e.LinkedArtistIDs, names)),
		}}
	}
	return printList(model.KindEvent.Tag(), events, len(events),
		[]string{"ID", "Event", "Date", "City", "Venue", "Artists"}, rows)
}

func runEventShow(cmd *cobra.Command, args []string) error {
	e, ok := ctx.Store.Event(args[0])
	if !ok {
		return notFound(model.KindEvent, args[0])
	}
	snap := ctx.Store.Snapshot()
	businesses := make(map[string]string, len(snap.Businesses))
	for _, b := range snap.Businesses {
		businesses[b.ID] = b.Name
	}
	return printRecord(model.KindEvent, e, func(cli *output.CLIFormatter) {
		cli.Title(e.Name + archivedMark(e.IsArchived))
		cli.Field("ID", e.ID)
		cli.Field("Date", classify.FormatDate(e.Date))
		cli.Field("Venue", e.Venue)
		cli.Field("City", orDash(e.City)+"/"+orDash(e.State))
		cli.Field("Artists", strings.Join(lookupNames(e.LinkedArtistIDs, artistNameIndex(snap.Artists)), ", "))
		cli.Field("Businesses", strings.Join(lookupNames(e.LinkedBusinessIDs, businesses), ", "))
		cli.Field("Details", e.Details)
	})
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	var e model.AppEvent
	if err := applyEvent(&e, eventAddForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveEvent(e)
	e.ID = id
	return reportSaved(model.KindEvent, []string{id}, e, err)
}

func runEventEdit(cmd *cobra.Command, args []string) error {
	e, ok := ctx.Store.Event(args[0])
	if !ok {
		return notFound(model.KindEvent, args[0])
	}
	if err := applyEvent(&e, eventEditForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveEvent(e)
	return reportSaved(model.KindEvent, []string{id}, e, err)
}

// applyEvent fills e from the flags. Linked artists and businesses must
// exist.
func applyEvent(e *model.AppEvent, f *boundForm[model.AppEvent]) error {
	if err := f.apply(e); err != nil {
		return err
	}
	if err := validate.Name("name", e.Name); err != nil {
		return err
	}
	for _, id := range e.LinkedArtistIDs {
		if _, ok := ctx.Store.Artist(id); !ok {
			return notFound(model.KindArtist, id)
		}
	}
	for _, id := range e.LinkedBusinessIDs {
		if _, ok := ctx.Store.Business(id); !ok {
			return notFound(model.KindBusiness, id)
		}
	}
	return nil
}
