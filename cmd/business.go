package cmd

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/textutil"
	"github.com/manav03panchal/controleplus/internal/validate"
	"github.com/manav03panchal/controleplus/internal/views"
)

var businessForm = append(form[model.Business]{
	textField("name", "Business name", func(b *model.Business) *string { return &b.Name }),
	textField("category", "Category, e.g. Escritório", func(b *model.Business) *string { return &b.Category }),
	textField("contact", "Contact person", func(b *model.Business) *string { return &b.ContactPerson }),
	textField("phone", "Phone", func(b *model.Business) *string { return &b.Phone }),
	emailField("email", func(b *model.Business) *string { return &b.Email }),
	textField("city", "City", func(b *model.Business) *string { return &b.City }),
	textField("state", "State (UF)", func(b *model.Business) *string { return &b.State }),
	textField("whatsapp", "WhatsApp", func(b *model.Business) *string { return &b.WhatsApp }),
	linkField("website", "Website", func(b *model.Business) *string { return &b.Website }),
	textField("instagram", "Instagram", func(b *model.Business) *string { return &b.Instagram }),
	textField("facebook", "Facebook", func(b *model.Business) *string { return &b.Facebook }),
	listField("regions", "Regions of operation", func(b *model.Business) *[]string { return &b.RegionsOfOperation }),
	listField("artists", "Represented artist ids", func(b *model.Business) *[]string { return &b.ArtistIDs }),
}, addressFields(func(b *model.Business) address {
	return address{&b.Street, &b.Number, &b.Complement, &b.Neighborhood, &b.ZipCode}
})...)

var (
	businessListFlagSearch string
	businessListFlagState  string
	businessListFlagArtist string
	businessListFlagAll    bool

	businessAddForm  *boundForm[model.Business]
	businessEditForm *boundForm[model.Business]
)

var businessCmd = &cobra.Command{
	Use:     "business",
	Aliases: []string{"businesses", "empresario", "b"},
	Short:   "Manage businesses and managers",
	Long: `List, add and edit the businesses and managers that represent artists.

Examples:
  controleplus business list --search sertanejo
  controleplus business add --name "Brilho Produções" --contact Ana --artists id_1,id_2`,
	RunE: runBusinessList,
}

var businessListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List businesses",
	Args:    cobra.NoArgs,
	RunE:    runBusinessList,
}

var businessShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a business",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindBusiness),
	RunE:              runBusinessShow,
}

var businessAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a business",
	Args:  cobra.NoArgs,
	RunE:  runBusinessAdd,
}

var businessEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit a business",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindBusiness),
	RunE:              runBusinessEdit,
}

func init() {
	f := businessListCmd.Flags()
	f.StringVarP(&businessListFlagSearch, "search", "s", "", "Search name, contact, city or artist")
	f.StringVar(&businessListFlagState, "state", "", "Filter by state (UF)")
	f.StringVar(&businessListFlagArtist, "artist", "", "Only businesses representing this artist id")
	f.BoolVar(&businessListFlagAll, "all", false, "Include archived businesses")

	businessAddForm = businessForm.bind(businessAddCmd)
	businessEditForm = businessForm.bind(businessEditCmd)

	businessCmd.AddCommand(businessListCmd, businessShowCmd, businessAddCmd, businessEditCmd,
		newArchiveCmd(model.KindBusiness))
	rootCmd.AddCommand(businessCmd)
}

func runBusinessList(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	list := snap.Businesses
	if !businessListFlagAll {
		list = views.Active(list)
	}
	list = views.Search(list, businessListFlagSearch, views.BusinessFields(snap.Artists))
	list = slices.DeleteFunc(list, func(b model.Business) bool {
		if businessListFlagState != "" && b.State != businessListFlagState {
			return true
		}
		return businessListFlagArtist != "" && !b.HasArtist(businessListFlagArtist)
	})

	names := artistNameIndex(snap.Artists)
	rows := make([]output.TableRow, len(list))
	for i, b := range list {
		rows[i] = output.TableRow{Columns: []string{
			b.ID,
			b.Name + archivedMark(b.IsArchived),
			orDash(b.ContactPerson),
			orDash(textutil.FormatPhone(b.Phone)),
			shortList(lookupNames(b.ArtistIDs, names)),
		}}
	}
	return printList(model.KindBusiness.Tag(), list, len(list),
		[]string{"ID", "Name", "Contact", "Phone", "Artists"}, rows)
}

func runBusinessShow(cmd *cobra.Command, args []string) error {
	b, ok := ctx.Store.Business(args[0])
	if !ok {
		return notFound(model.KindBusiness, args[0])
	}
	names := artistNameIndex(ctx.Store.Snapshot().Artists)
	return printRecord(model.KindBusiness, b, func(cli *output.CLIFormatter) {
		cli.Title(b.Name + archivedMark(b.IsArchived))
		cli.Field("ID", b.ID)
		cli.Field("Category", b.Category)
		cli.Field("Contact", b.ContactPerson)
		cli.Field("Phone", textutil.FormatPhone(b.Phone))
		cli.Field("WhatsApp", waLink(b.WhatsApp))
		cli.Field("Email", b.Email)
		cli.Field("Website", b.Website)
		cli.Field("Instagram", b.Instagram)
		cli.Field("Facebook", b.Facebook)
		cli.Field("Address", formatAddress(b.Street, b.Number, b.Complement, b.Neighborhood))
		cli.Field("City", orDash(b.City)+"/"+orDash(b.State))
		cli.Field("CEP", textutil.FormatCEP(b.ZipCode))
		cli.Field("Regions", strings.Join(b.RegionsOfOperation, ", "))
		cli.Field("Artists", strings.Join(lookupNames(b.ArtistIDs, names), ", "))
	})
}

func runBusinessAdd(cmd *cobra.Command, args []string) error {
	var b model.Business
	if err := applyBusiness(&b, businessAddForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveBusiness(b)
	b.ID = id
	return reportSaved(model.KindBusiness, []string{id}, b, err)
}

func runBusinessEdit(cmd *cobra.Command, args []string) error {
	b, ok := ctx.Store.Business(args[0])
	if !ok {
		return notFound(model.KindBusiness, args[0])
	}
	if err := applyBusiness(&b, businessEditForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveBusiness(b)
	return reportSaved(model.KindBusiness, []string{id}, b, err)
}

// applyBusiness fills b from the flags. Represented artists must exist.
func applyBusiness(b *model.Business, f *boundForm[model.Business]) error {
	if err := f.apply(b); err != nil {
		return err
	}
	if err := validate.Name("name", b.Name); err != nil {
		return err
	}
	for _, id := range b.ArtistIDs {
		if _, ok := ctx.Store.Artist(id); !ok {
			return notFound(model.KindArtist, id)
		}
	}
	return nil
}

func artistNameIndex(artists []model.Artist) map[string]string {
	names := make(map[string]string, len(artists))
	for _, a := range artists {
		names[a.ID] = a.Name
	}
	return names
}

// lookupNames resolves ids through names, skipping unknown ones.
func lookupNames(ids []string, names map[string]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
