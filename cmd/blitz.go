package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/views"
)

var blitzForm = form[model.MusicalBlitz]{
	textField("music", "Song id", func(b *model.MusicalBlitz) *string { return &b.MusicID }),
	dateField("date", "Visit date, weekdays only", func(b *model.MusicalBlitz) *string { return &b.EventDate }),
	noteField("notes", "Notes", func(b *model.MusicalBlitz) *string { return &b.Notes }),
}

var (
	blitzListFlagSearch string

	blitzAddForm  *boundForm[model.MusicalBlitz]
	blitzEditForm *boundForm[model.MusicalBlitz]
)

var blitzCmd = &cobra.Command{
	Use:     "blitz",
	Aliases: []string{"blitzes"},
	Short:   "Plan radio visit days",
	Long: `Show the blitz agenda and schedule radio visit days for a song. Visits
must fall on a weekday. The agenda shows the Monday to Friday week; on
weekends it shows the coming week.

Examples:
  controleplus blitz
  controleplus blitz songs
  controleplus blitz add --music id_... --date "next tuesday" --notes "Rádio Nova 9h"`,
	RunE: runBlitzAgenda,
}

var blitzListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "agenda"},
	Short:   "Show this week's visits and the ones after it",
	Args:    cobra.NoArgs,
	RunE:    runBlitzAgenda,
}

var blitzSongsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List the songs that can be scheduled",
	Args:  cobra.NoArgs,
	RunE:  runBlitzSongs,
}

var blitzShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a blitz visit",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindBlitz),
	RunE:              runBlitzShow,
}

var blitzAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule a blitz visit",
	Args:  cobra.NoArgs,
	RunE:  runBlitzAdd,
}

var blitzEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit a blitz visit",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindBlitz),
	RunE:              runBlitzEdit,
}

func init() {
	for _, c := range []*cobra.Command{blitzCmd, blitzListCmd} {
		c.Flags().StringVarP(&blitzListFlagSearch, "search", "s", "", "Search artist or song")
	}

	blitzAddForm = blitzForm.bind(blitzAddCmd)
	blitzEditForm = blitzForm.bind(blitzEditCmd)

	blitzCmd.AddCommand(blitzListCmd, blitzSongsCmd, blitzShowCmd, blitzAddCmd, blitzEditCmd,
		newArchiveCmd(model.KindBlitz))
	rootCmd.AddCommand(blitzCmd)
}

// blitzAgendaResponse is the JSON shape of the agenda.
type blitzAgendaResponse struct {
	WeekStart string             `json:"week_start"`
	WeekEnd   string             `json:"week_end"`
	ThisWeek  []blitzEntryOutput `json:"this_week"`
	Future    []blitzEntryOutput `json:"future"`
}

type blitzEntryOutput struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Artist    string `json:"artist"`
	Song      string `json:"song"`
	Notes     string `json:"notes,omitempty"`
	Countdown string `json:"countdown"`
	Level     string `json:"level"`
}

func newBlitzEntryOutputs(entries []views.BlitzEntry) []blitzEntryOutput {
	out := make([]blitzEntryOutput, len(entries))
	for i, e := range entries {
		out[i] = blitzEntryOutput{
			ID:        e.Blitz.ID,
			Date:      e.Blitz.EventDate,
			Artist:    e.Artist.Name,
			Song:      e.Music.Title,
			Notes:     e.Blitz.Notes,
			Countdown: e.Countdown.Label,
			Level:     string(e.Countdown.Level),
		}
	}
	return out
}

func runBlitzAgenda(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	now := ctx.Now()
	agenda := views.Agenda(snap.Blitzes, snap.Music, snap.Artists, blitzListFlagSearch, now)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(blitzAgendaResponse{
			WeekStart: agenda.Week.Start.Format(classify.DateLayout),
			WeekEnd:   agenda.Week.End.Format(classify.DateLayout),
			ThisWeek:  newBlitzEntryOutputs(agenda.ThisWeek),
			Future:    newBlitzEntryOutputs(agenda.Future),
		})
	}

	cli := ctx.CLIFormatter()
	printEntries := func(title string, entries []views.BlitzEntry, empty string) {
		cli.Title(title)
		if len(entries) == 0 {
			cli.Muted("  " + empty)
			return
		}
		rows := make([]output.TableRow, len(entries))
		for i, e := range entries {
			date := classify.FormatDate(e.Blitz.EventDate)
			if t, ok := classify.ParseDate(e.Blitz.EventDate, now.Location()); ok {
				date = classify.WeekdayName(t.Weekday()) + " " + date
			}
			rows[i] = output.TableRow{Columns: []string{
				e.Blitz.ID, date, e.Artist.Name, e.Music.Title,
				orDash(e.Blitz.Notes), cli.Status(&e.Countdown),
			}}
		}
		cli.PrintTable([]string{"ID", "Date", "Artist", "Song", "Notes", "When"}, rows)
	}

	printEntries("Blitz "+agenda.Week.Label(), agenda.ThisWeek, "No visits this week")
	cli.Println()
	printEntries("Later", agenda.Future, "Nothing scheduled")
	return nil
}

func runBlitzSongs(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	options := views.BlitzMusicOptions(snap.Artists, snap.Music)
	rows := make([]output.TableRow, len(options))
	for i, o := range options {
		rows[i] = output.TableRow{Columns: []string{o.Music.ID, o.Label()}}
	}
	return printList(model.KindMusic.Tag(), options, len(options), []string{"ID", "Song"}, rows)
}

func runBlitzShow(cmd *cobra.Command, args []string) error {
	b, ok := ctx.Store.Blitz(args[0])
	if !ok {
		return notFound(model.KindBlitz, args[0])
	}
	countdown := classify.BlitzCountdown(b.EventDate, ctx.Now())
	return printRecord(model.KindBlitz, b, func(cli *output.CLIFormatter) {
		song, ok := ctx.Store.Music(b.MusicID)
		title := "Blitz"
		if ok {
			title = fmt.Sprintf("Blitz: %s", song.Title)
			if a, ok := ctx.Store.Artist(song.ArtistID); ok {
				title = fmt.Sprintf("Blitz: %s - %s", a.Name, song.Title)
			}
		}
		cli.Title(title + archivedMark(b.IsArchived))
		cli.Field("ID", b.ID)
		cli.Field("Date", classify.FormatDate(b.EventDate)+"  "+cli.Status(&countdown))
		cli.Field("Notes", b.Notes)
	})
}

func runBlitzAdd(cmd *cobra.Command, args []string) error {
	var b model.MusicalBlitz
	if err := blitzAddForm.apply(&b); err != nil {
		return err
	}
	id, err := ctx.Store.SaveBlitz(b)
	b.ID = id
	return reportSaved(model.KindBlitz, []string{id}, b, err)
}

func runBlitzEdit(cmd *cobra.Command, args []string) error {
	b, ok := ctx.Store.Blitz(args[0])
	if !ok {
		return notFound(model.KindBlitz, args[0])
	}
	if err := blitzEditForm.apply(&b); err != nil {
		return err
	}
	id, err := ctx.Store.SaveBlitz(b)
	return reportSaved(model.KindBlitz, []string{id}, b, err)
}
