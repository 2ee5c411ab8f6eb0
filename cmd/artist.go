package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/validate"
	"github.com/manav03panchal/controleplus/internal/views"
)

var artistForm = form[model.Artist]{
	textField("name", "Artist name", func(a *model.Artist) *string { return &a.Name }),
	choiceField("genre", "Genre", model.Genres, func(a *model.Artist) *model.Genre { return &a.Genre }),
	textField("business", "Business id that represents the artist", func(a *model.Artist) *string { return &a.BusinessID }),
	noteField("bio", "Short biography", func(a *model.Artist) *string { return &a.Bio }),
}

var (
	artistListFlagSearch string
	artistListFlagGenre  string
	artistListFlagAll    bool

	artistAddForm  *boundForm[model.Artist]
	artistEditForm *boundForm[model.Artist]

	artistAddFlagSongs   []string
	artistEditFlagSongs  []string
	artistEditFlagRemove []string
)

var artistCmd = &cobra.Command{
	Use:     "artist",
	Aliases: []string{"artists", "a"},
	Short:   "Manage artists and their songs",
	Long: `List, add and edit artists. Songs can be added together with the artist
using --song "Title@date"; the date is optional.

Examples:
  controleplus artist add "Zé Neto" --genre Sertanejo --song "Seu Brilho@2026-03-06"
  controleplus artist edit id_... --song "Nova Faixa@next friday" --remove-song id_...
  controleplus artist show id_...`,
	RunE: runArtistList,
}

var artistListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List artists",
	Args:    cobra.NoArgs,
	RunE:    runArtistList,
}

var artistShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show an artist with their songs",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindArtist),
	RunE:              runArtistShow,
}

var artistAddCmd = &cobra.Command{
	Use:   "add [NAME]",
	Short: "Add an artist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArtistAdd,
}

var artistEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit an artist and their songs",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindArtist),
	RunE:              runArtistEdit,
}

func init() {
	f := artistListCmd.Flags()
	f.StringVarP(&artistListFlagSearch, "search", "s", "", "Search name, genre or business")
	f.StringVar(&artistListFlagGenre, "genre", "", "Filter by genre")
	f.BoolVar(&artistListFlagAll, "all", false, "Include archived artists")

	artistAddForm = artistForm.bind(artistAddCmd)
	artistAddCmd.Flags().StringArrayVar(&artistAddFlagSongs, "song", nil, `Song as "Title@YYYY-MM-DD" (repeatable)`)

	artistEditForm = artistForm.bind(artistEditCmd)
	artistEditCmd.Flags().StringArrayVar(&artistEditFlagSongs, "song", nil, `New song as "Title@YYYY-MM-DD" (repeatable)`)
	artistEditCmd.Flags().StringSliceVar(&artistEditFlagRemove, "remove-song", nil, "Song id to delete (repeatable)")

	artistCmd.AddCommand(artistListCmd, artistShowCmd, artistAddCmd, artistEditCmd,
		newArchiveCmd(model.KindArtist))
	rootCmd.AddCommand(artistCmd)
}

func runArtistList(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	artists := snap.Artists
	if !artistListFlagAll {
		artists = views.Active(artists)
	}
	artists = views.SortArtists(views.Search(artists, artistListFlagSearch, views.ArtistFields(snap.Businesses)))
	if artistListFlagGenre != "" {
		filtered := artists[:0]
		for _, a := range artists {
			if string(a.Genre) == artistListFlagGenre {
				filtered = append(filtered, a)
			}
		}
		artists = filtered
	}

	songs := make(map[string]int)
	for _, m := range views.Active(snap.Music) {
		songs[m.ArtistID]++
	}
	businesses := make(map[string]string, len(snap.Businesses))
	for _, b := range snap.Businesses {
		businesses[b.ID] = b.Name
	}

	rows := make([]output.TableRow, len(artists))
	for i, a := range artists {
		rows[i] = output.TableRow{Columns: []string{
			a.ID,
			a.Name + archivedMark(a.IsArchived),
			orDash(string(a.Genre)),
			orDash(businesses[a.BusinessID]),
			fmt.Sprintf("%d", songs[a.ID]),
		}}
	}
	return printList(model.KindArtist.Tag(), artists, len(artists),
		[]string{"ID", "Name", "Genre", "Business", "Songs"}, rows,
		output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight)
}

// artistDetail is the JSON shape of artist show.
type artistDetail struct {
	model.Artist
	Songs []model.Music `json:"songs"`
}

func runArtistShow(cmd *cobra.Command, args []string) error {
	a, ok := ctx.Store.Artist(args[0])
	if !ok {
		return notFound(model.KindArtist, args[0])
	}
	snap := ctx.Store.Snapshot()
	detail := artistDetail{Artist: a, Songs: []model.Music{}}
	for _, m := range snap.Music {
		if m.ArtistID == a.ID {
			detail.Songs = append(detail.Songs, m)
		}
	}

	return printRecord(model.KindArtist, detail, func(cli *output.CLIFormatter) {
		cli.Title(a.Name + archivedMark(a.IsArchived))
		cli.Field("ID", a.ID)
		cli.Field("Genre", string(a.Genre))
		if b, ok := ctx.Store.Business(a.BusinessID); ok {
			cli.Field("Business", b.Name)
		}
		cli.Field("Since", output.FormatStamp(a.CreatedAt))
		cli.Field("Bio", a.Bio)
		if len(detail.Songs) == 0 {
			cli.Muted("  No songs")
			return
		}

		now := ctx.Now()
		rows := make([]output.TableRow, len(detail.Songs))
		for i, m := range detail.Songs {
			rows[i] = output.TableRow{Columns: []string{
				m.ID,
				m.Title + archivedMark(m.IsArchived),
				orDash(classify.FormatDate(m.ReleaseDate)),
				cli.Status(classify.ReleaseStatus(m.ReleaseDate, now)),
			}}
		}
		cli.Println()
		cli.PrintTable([]string{"ID", "Song", "Release", "Status"}, rows)
	})
}

func runArtistAdd(cmd *cobra.Command, args []string) error {
	var a model.Artist
	if len(args) == 1 {
		a.Name = validate.SanitizeField(args[0])
	}
	if err := applyArtist(&a, artistAddForm); err != nil {
		return err
	}
	songs, err := parseSongs(artistAddFlagSongs)
	if err != nil {
		return err
	}
	id, err := ctx.Store.SaveArtistWithMusic(a, songs, nil)
	a.ID = id
	return reportSaved(model.KindArtist, []string{id}, a, err)
}

func runArtistEdit(cmd *cobra.Command, args []string) error {
	a, ok := ctx.Store.Artist(args[0])
	if !ok {
		return notFound(model.KindArtist, args[0])
	}
	if err := applyArtist(&a, artistEditForm); err != nil {
		return err
	}
	songs, err := parseSongs(artistEditFlagSongs)
	if err != nil {
		return err
	}
	id, err := ctx.Store.SaveArtistWithMusic(a, songs, artistEditFlagRemove)
	return reportSaved(model.KindArtist, []string{id}, a, err)
}

func applyArtist(a *model.Artist, f *boundForm[model.Artist]) error {
	if err := f.apply(a); err != nil {
		return err
	}
	if err := validate.Name("name", a.Name); err != nil {
		return err
	}
	if a.Genre == "" {
		a.Genre = model.GenreOutro
	}
	if a.BusinessID != "" {
		if _, ok := ctx.Store.Business(a.BusinessID); !ok {
			return notFound(model.KindBusiness, a.BusinessID)
		}
	}
	return nil
}

// parseSongs turns "Title@date" values into new song rows.
func parseSongs(values []string) ([]model.MusicEdit, error) {
	edits := make([]model.MusicEdit, 0, len(values))
	for i, v := range values {
		title, date, hasDate := strings.Cut(v, "@")
		title = validate.SanitizeField(title)
		if err := validate.Name("song", title); err != nil {
			return nil, err
		}
		edit := model.MusicEdit{
			ID:    fmt.Sprintf("%s%d", model.TempIDPrefix, i),
			Title: &title,
		}
		if hasDate && strings.TrimSpace(date) != "" {
			parsed, err := parseDate("release", date)
			if err != nil {
				return nil, err
			}
			edit.ReleaseDate = &parsed
		}
		edits = append(edits, edit)
	}
	return edits, nil
}
