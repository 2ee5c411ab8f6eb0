package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/validate"
	"github.com/manav03panchal/controleplus/internal/views"
)

var musicForm = form[model.Music]{
	textField("title", "Song title", func(m *model.Music) *string { return &m.Title }),
	textField("artist", "Artist id", func(m *model.Music) *string { return &m.ArtistID }),
	linkField("wav", "Link to the WAV master", func(m *model.Music) *string { return &m.WavURL }),
	textField("composers", "Composers", func(m *model.Music) *string { return &m.Composers }),
	dateField("release", "Release date, weekdays only", func(m *model.Music) *string { return &m.ReleaseDate }),
	boolField("hide", "Hide from the dashboard reminders", func(m *model.Music) *bool { return &m.HideFromDashboard }),
}

var (
	musicListFlagSearch   string
	musicListFlagArtist   string
	musicListFlagUpcoming int
	musicListFlagAll      bool

	musicAddForm  *boundForm[model.Music]
	musicEditForm *boundForm[model.Music]
)

var musicCmd = &cobra.Command{
	Use:     "music",
	Aliases: []string{"song", "songs", "m"},
	Short:   "Manage songs and releases",
	Long: `List, add and edit songs. Release dates must fall on a weekday.

Examples:
  controleplus music list --upcoming 30
  controleplus music add --artist id_... --title "Seu Brilho" --release 2026-03-06
  controleplus music toggle-dashboard id_...`,
	RunE: runMusicList,
}

var musicListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List songs",
	Args:    cobra.NoArgs,
	RunE:    runMusicList,
}

var musicShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a song",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindMusic),
	RunE:              runMusicShow,
}

var musicAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a song",
	Args:  cobra.NoArgs,
	RunE:  runMusicAdd,
}

var musicEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit a song",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindMusic),
	RunE:              runMusicEdit,
}

var musicToggleCmd = &cobra.Command{
	Use:               "toggle-dashboard ID",
	Short:             "Show or hide a song in the dashboard reminders",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindMusic),
	RunE:              runMusicToggle,
}

func init() {
	f := musicListCmd.Flags()
	f.StringVarP(&musicListFlagSearch, "search", "s", "", "Search title or composers")
	f.StringVar(&musicListFlagArtist, "artist", "", "Filter by artist id")
	f.IntVar(&musicListFlagUpcoming, "upcoming", 0, "Only releases within the next N days")
	f.BoolVar(&musicListFlagAll, "all", false, "Include archived songs")

	musicAddForm = musicForm.bind(musicAddCmd)
	musicEditForm = musicForm.bind(musicEditCmd)

	musicCmd.AddCommand(musicListCmd, musicShowCmd, musicAddCmd, musicEditCmd, musicToggleCmd,
		newArchiveCmd(model.KindMusic))
	rootCmd.AddCommand(musicCmd)
}

func runMusicList(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	now := ctx.Now()
	cli := ctx.CLIFormatter()

	if musicListFlagUpcoming > 0 {
		releases := views.UpcomingReleases(snap, now, musicListFlagUpcoming)
		if ctx.IsJSON() {
			out := make([]output.ReleaseOutput, len(releases))
			for i, r := range releases {
				out[i] = output.NewReleaseOutput(r)
			}
			return printList("release", out, len(out), nil, nil)
		}
		rows := make([]output.TableRow, len(releases))
		for i, r := range releases {
			rows[i] = output.TableRow{Columns: []string{
				r.Music.ID, r.ArtistName, r.Music.Title,
				classify.FormatDate(r.Music.ReleaseDate), cli.Status(r.Status),
			}}
		}
		return printList("release", releases, len(releases),
			[]string{"ID", "Artist", "Song", "Release", "Status"}, rows)
	}

	songs := snap.Music
	if !musicListFlagAll {
		songs = views.Active(songs)
	}
	songs = views.Search(songs, musicListFlagSearch, views.MusicFields)
	if musicListFlagArtist != "" {
		songs = slices.DeleteFunc(songs, func(m model.Music) bool { return m.ArtistID != musicListFlagArtist })
	}

	names := artistNameIndex(snap.Artists)
	rows := make([]output.TableRow, len(songs))
	for i, m := range songs {
		title := m.Title + archivedMark(m.IsArchived)
		if m.HideFromDashboard {
			title += " (hidden)"
		}
		rows[i] = output.TableRow{Columns: []string{
			m.ID,
			orDash(names[m.ArtistID]),
			title,
			orDash(classify.FormatDate(m.ReleaseDate)),
			cli.Status(classify.ReleaseStatus(m.ReleaseDate, now)),
		}}
	}
	return printList(model.KindMusic.Tag(), songs, len(songs),
		[]string{"ID", "Artist", "Song", "Release", "Status"}, rows)
}

func runMusicShow(cmd *cobra.Command, args []string) error {
	m, ok := ctx.Store.Music(args[0])
	if !ok {
		return notFound(model.KindMusic, args[0])
	}
	now := ctx.Now()
	return printRecord(model.KindMusic, m, func(cli *output.CLIFormatter) {
		cli.Title(m.Title + archivedMark(m.IsArchived))
		cli.Field("ID", m.ID)
		if a, ok := ctx.Store.Artist(m.ArtistID); ok {
			cli.Field("Artist", a.Name)
		}
		cli.Field("Composers", m.Composers)
		cli.Field("WAV", m.WavURL)
		if m.ReleaseDate != "" {
			cli.Field("Release", classify.FormatDate(m.ReleaseDate)+"  "+
				cli.Status(classify.ReleaseStatus(m.ReleaseDate, now)))
			cli.Field("Promotion", cli.Status(classify.ExpirationStatus(m.ReleaseDate, now)))
		}
		if m.HideFromDashboard {
			cli.Field("Dashboard", "hidden")
		}
	})
}

func runMusicAdd(cmd *cobra.Command, args []string) error {
	var m model.Music
	if err := applyMusic(&m, musicAddForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveMusic(m)
	m.ID = id
	return reportSaved(model.KindMusic, []string{id}, m, err)
}

func runMusicEdit(cmd *cobra.Command, args []string) error {
	m, ok := ctx.Store.Music(args[0])
	if !ok {
		return notFound(model.KindMusic, args[0])
	}
	if err := applyMusic(&m, musicEditForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveMusic(m)
	return reportSaved(model.KindMusic, []string{id}, m, err)
}

func applyMusic(m *model.Music, f *boundForm[model.Music]) error {
	if err := f.apply(m); err != nil {
		return err
	}
	return validate.Name("title", m.Title)
}

func runMusicToggle(cmd *cobra.Command, args []string) error {
	hidden, err := ctx.Store.ToggleMusicDashboard(args[0])
	message := "Song is shown on the dashboard"
	if hidden {
		message = "Song is hidden from the dashboard"
	}
	return reportAction(output.ActionResponse{
		Action: "toggle-dashboard",
		Kind:   model.KindMusic.Tag(),
		ID:     args[0],
	}, message, err)
}
