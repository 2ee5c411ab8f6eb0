package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/textutil"
	"github.com/manav03panchal/controleplus/internal/validate"
	"github.com/manav03panchal/controleplus/internal/views"
)

var promotionForm = form[model.PromotionFields]{
	textField("name", "Promotion name", func(f *model.PromotionFields) *string { return &f.Name }),
	textField("artist", "Artist id", func(f *model.PromotionFields) *string { return &f.ArtistID }),
	textField("music", "Song id", func(f *model.PromotionFields) *string { return &f.MusicID }),
	choiceField("type", "Verba, Brindes, Parceria de Show, Divulgação or Outro", model.PromotionTypes,
		func(f *model.PromotionFields) *model.PromotionType { return &f.Type }),
	noteField("details", "Details", func(f *model.PromotionFields) *string { return &f.Details }),
	dateField("start", "Start date", func(f *model.PromotionFields) *string { return &f.StartDate }),
	dateField("end", "End date", func(f *model.PromotionFields) *string { return &f.EndDate }),
	textField("value", "Amount in reais, e.g. 1.500,00", func(f *model.PromotionFields) *string { return &f.Value }),
}

var (
	promotionListFlags    views.PromotionFilter
	promotionListFlagType string
	promotionListFlagAll  bool

	promotionAddForm    *boundForm[model.PromotionFields]
	promotionCloneForm  *boundForm[model.PromotionFields]
	promotionEditForm   *boundForm[model.PromotionFields]
	promotionAddRadios  []string
	promotionCloneRadio []string
	promotionEditRadio  string
)

var promotionCmd = &cobra.Command{
	Use:     "promotion",
	Aliases: []string{"promotions", "promo", "p"},
	Short:   "Manage promotions with radio stations",
	Long: `List, add, clone and edit promotion deals. Adding or cloning with several
stations creates one promotion per station.

Examples:
  controleplus promotion add --name "Verba março" --artist id_... --radio id_1,id_2 --type Verba --value 1.500,00
  controleplus promotion clone id_... --radio id_3
  controleplus promotion list --type Verba --state GO`,
	RunE: runPromotionList,
}

var promotionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List promotions",
	Args:    cobra.NoArgs,
	RunE:    runPromotionList,
}

var promotionFiltersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the values available to the list filters",
	Args:  cobra.NoArgs,
	RunE:  runPromotionFilters,
}

var promotionShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a promotion",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindPromotion),
	RunE:              runPromotionShow,
}

var promotionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a promotion for one or more stations",
	Args:  cobra.NoArgs,
	RunE:  runPromotionAdd,
}

var promotionCloneCmd = &cobra.Command{
	Use:               "clone ID",
	Short:             "Copy a promotion to other stations",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindPromotion),
	RunE:              runPromotionClone,
}

var promotionEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit a promotion",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindPromotion),
	RunE:              runPromotionEdit,
}

func init() {
	f := promotionListCmd.Flags()
	f.StringVar(&promotionListFlags.ArtistID, "artist", "", "Filter by artist id")
	f.StringVar(&promotionListFlagType, "type", "", "Filter by type")
	f.StringVar(&promotionListFlags.State, "state", "", "Filter by station state (UF)")
	f.StringVar(&promotionListFlags.CrowleyMarket, "market", "", "Filter by station Crowley market")
	f.StringVar(&promotionListFlags.City, "city", "", "Filter by station city")
	f.BoolVar(&promotionListFlagAll, "all", false, "Include archived promotions")

	promotionAddForm = promotionForm.bind(promotionAddCmd)
	promotionAddCmd.Flags().StringSliceVar(&promotionAddRadios, "radio", nil, "Radio station ids (repeatable)")

	promotionCloneForm = promotionForm.bind(promotionCloneCmd)
	promotionCloneCmd.Flags().StringSliceVar(&promotionCloneRadio, "radio", nil, "Radio station ids (repeatable)")

	promotionEditForm = promotionForm.bind(promotionEditCmd)
	promotionEditCmd.Flags().StringVar(&promotionEditRadio, "radio", "", "Move the promotion to another station")

	promotionCmd.AddCommand(promotionListCmd, promotionFiltersCmd, promotionShowCmd,
		promotionAddCmd, promotionCloneCmd, promotionEditCmd, newArchiveCmd(model.KindPromotion))
	rootCmd.AddCommand(promotionCmd)
}

// promotionListResponse is the JSON shape of promotion list.
type promotionListResponse struct {
	Kind       string               `json:"kind"`
	Count      int                  `json:"count"`
	TotalVerba float64              `json:"total_verba"`
	Items      []views.PromotionRow `json:"items"`
}

func runPromotionList(cmd *cobra.Command, args []string) error {
	if err := validate.OneOf("type", model.PromotionType(promotionListFlagType), model.PromotionTypes); err != nil {
		return err
	}
	filter := promotionListFlags
	filter.Type = model.PromotionType(promotionListFlagType)

	snap := ctx.Store.Snapshot()
	promotions := snap.Promotions
	if !promotionListFlagAll {
		promotions = views.Active(promotions)
	}
	rows := views.FilterPromotions(promotions, snap.Radios, snap.Artists, snap.Music, filter)
	total := views.TotalVerba(rows)

	if ctx.IsJSON() {
		if rows == nil {
			rows = []views.PromotionRow{}
		}
		return ctx.Formatter.JSON(promotionListResponse{
			Kind: model.KindPromotion.Tag(), Count: len(rows), TotalVerba: total, Items: rows,
		})
	}

	cli := ctx.CLIFormatter()
	now := ctx.Now()
	table := make([]output.TableRow, len(rows))
	for i, r := range rows {
		p := r.Promotion
		table[i] = output.TableRow{Columns: []string{
			p.ID,
			p.Name + archivedMark(p.IsArchived),
			r.Radio.Name,
			orDash(r.ArtistName),
			string(p.Type),
			orDash(textutil.FormatCurrencyPtr(p.Value)),
			cli.Status(classify.PromotionDaysLeft(p.EndDate, now)),
		}}
	}
	if err := printList(model.KindPromotion.Tag(), rows, len(rows),
		[]string{"ID", "Name", "Station", "Artist", "Type", "Value", "Ends"}, table,
		output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight); err != nil {
		return err
	}
	if total > 0 {
		cli.Println(cli.Bold("Total verba: " + textutil.FormatCurrency(total)))
	}
	return nil
}

func runPromotionFilters(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	opts := views.FilterOptions(views.Active(snap.Promotions), snap.Radios)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(opts)
	}

	types := make([]string, len(opts.Types))
	for i, t := range opts.Types {
		types[i] = string(t)
	}
	cli := ctx.CLIFormatter()
	cli.Title("Promotion filters")
	cli.Field("Types", shortList(types))
	cli.Field("States", shortList(opts.States))
	cli.Field("Cities", shortList(opts.Cities))
	cli.Field("Markets", shortList(opts.Markets))
	return nil
}

func runPromotionShow(cmd *cobra.Command, args []string) error {
	p, ok := ctx.Store.Promotion(args[0])
	if !ok {
		return notFound(model.KindPromotion, args[0])
	}
	now := ctx.Now()
	return printRecord(model.KindPromotion, p, func(cli *output.CLIFormatter) {
		cli.Title(p.Name + archivedMark(p.IsArchived))
		cli.Field("ID", p.ID)
		cli.Field("Type", string(p.Type))
		if r, ok := ctx.Store.Radio(p.RadioStationID); ok {
			cli.Field("Station", r.Name+" ("+orDash(r.City)+"/"+orDash(r.State)+")")
		}
		if a, ok := ctx.Store.Artist(p.ArtistID); ok {
			cli.Field("Artist", a.Name)
		}
		if m, ok := ctx.Store.Music(p.MusicID); ok {
			cli.Field("Song", m.Title)
		}
		cli.Field("Value", textutil.FormatCurrencyPtr(p.Value))
		cli.Field("Start", classify.FormatDate(p.StartDate))
		if p.EndDate != "" {
			cli.Field("End", classify.FormatDate(p.EndDate)+"  "+
				cli.Status(classify.PromotionDaysLeft(p.EndDate, now)))
		}
		cli.Field("Details", p.Details)
	})
}

func runPromotionAdd(cmd *cobra.Command, args []string) error {
	var fields model.PromotionFields
	if err := promotionAddForm.apply(&fields); err != nil {
		return err
	}
	if err := validate.Name("name", fields.Name); err != nil {
		return err
	}
	if fields.Type == "" {
		fields.Type = model.PromotionOutro
	}
	if err := checkPromotionLinks(fields); err != nil {
		return err
	}
	ids, err := ctx.Store.SavePromotion(model.NewPromotionRequest{
		Fields:          fields,
		RadioStationIDs: promotionAddRadios,
	})
	return reportSaved(model.KindPromotion, ids, nil, err)
}

func runPromotionClone(cmd *cobra.Command, args []string) error {
	var fields model.PromotionFields
	if err := promotionCloneForm.apply(&fields); err != nil {
		return err
	}
	if err := checkPromotionLinks(fields); err != nil {
		return err
	}
	ids, err := ctx.Store.SavePromotion(model.ClonePromotionRequest{
		SourceID:        args[0],
		Fields:          fields,
		RadioStationIDs: promotionCloneRadio,
	})
	return reportSaved(model.KindPromotion, ids, nil, err)
}

func runPromotionEdit(cmd *cobra.Command, args []string) error {
	p, ok := ctx.Store.Promotion(args[0])
	if !ok {
		return notFound(model.KindPromotion, args[0])
	}
	fields := model.FieldsOf(p, textutil.FormatDecimal)
	if err := promotionEditForm.apply(&fields); err != nil {
		return err
	}
	if err := validate.Name("name", fields.Name); err != nil {
		return err
	}
	if err := checkPromotionLinks(fields); err != nil {
		return err
	}
	ids, err := ctx.Store.SavePromotion(model.EditPromotionRequest{
		ID:             p.ID,
		Fields:         fields,
		RadioStationID: promotionEditRadio,
	})
	return reportSaved(model.KindPromotion, ids, nil, err)
}

// checkPromotionLinks verifies that the artist and song exist and that the
// song belongs to the artist.
func checkPromotionLinks(f model.PromotionFields) error {
	if f.ArtistID != "" {
		if _, ok := ctx.Store.Artist(f.ArtistID); !ok {
			return notFound(model.KindArtist, f.ArtistID)
		}
	}
	if f.MusicID == "" {
		return nil
	}
	m, ok := ctx.Store.Music(f.MusicID)
	if !ok {
		return notFound(model.KindMusic, f.MusicID)
	}
	if f.ArtistID != "" && m.ArtistID != f.ArtistID {
		return errors.NewUserErrorWithField("music", f.MusicID,
			"song belongs to another artist", "Pick one of the artist's songs")
	}
	return nil
}
