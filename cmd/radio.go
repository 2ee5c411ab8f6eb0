package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/textutil"
	"github.com/manav03panchal/controleplus/internal/validate"
	"github.com/manav03panchal/controleplus/internal/views"
)

// stationForm holds the station flags, shared with submission promote.
var stationForm = form[model.StationInfo]{
	textField("name", "Station name", func(r *model.StationInfo) *string { return &r.Name }),
	choiceField("type", "FM, AM, WEB or Comunitária", model.RadioTypes, func(r *model.StationInfo) *model.RadioType { return &r.Type }),
	textField("frequency", "Frequency, e.g. 98.5", func(r *model.StationInfo) *string { return &r.Frequency }),
	linkField("website", "Website", func(r *model.StationInfo) *string { return &r.Website }),
	textField("phone", "Phone", func(r *model.StationInfo) *string { return &r.Phone }),
	textField("city", "City", func(r *model.StationInfo) *string { return &r.City }),
	textField("state", "State (UF)", func(r *model.StationInfo) *string { return &r.State }),
	textField("slogan", "Slogan", func(r *model.StationInfo) *string { return &r.Slogan }),
	textField("instagram", "Instagram", func(r *model.StationInfo) *string { return &r.Instagram }),
	textField("facebook", "Facebook", func(r *model.StationInfo) *string { return &r.Facebook }),
	textField("whatsapp", "WhatsApp", func(r *model.StationInfo) *string { return &r.WhatsApp }),
	textField("listeners-whatsapp", "Listeners' WhatsApp", func(r *model.StationInfo) *string { return &r.ListenersWhatsApp }),
	linkField("logo-url", "Logo URL", func(r *model.StationInfo) *string { return &r.LogoURL }),
	textField("pix", "PIX key", func(r *model.StationInfo) *string { return &r.PixKey }),
	textField("cnpj", "CNPJ", func(r *model.StationInfo) *string { return &r.CNPJ }),
	textField("corporate-name", "Corporate name", func(r *model.StationInfo) *string { return &r.CorporateName }),
	emailField("email", func(r *model.StationInfo) *string { return &r.Email }),
	textField("director", "Artistic director", func(r *model.StationInfo) *string { return &r.ArtisticDirector }),
	choiceField("profile", "Programming profile", model.RadioProfiles, func(r *model.StationInfo) *model.RadioProfile { return &r.Profile }),
	boolField("crowley", "Audited by Crowley", func(r *model.StationInfo) *bool { return &r.IsCrowleyAudited }),
	listField("markets", "Crowley markets", func(r *model.StationInfo) *[]string { return &r.CrowleyMarkets }),
}

var stationAddressForm = addressFields(func(r *model.StationInfo) address {
	return address{&r.Street, &r.Number, &r.Complement, &r.Neighborhood, &r.ZipCode}
})

// Radio command flags.
var (
	radioListFlagSearch  string
	radioListFlagState   string
	radioListFlagType    string
	radioListFlagProfile string
	radioListFlagMarket  string
	radioListFlagAll     bool

	radioAddForm  *boundForm[model.StationInfo]
	radioAddAddr  *boundForm[model.StationInfo]
	radioEditForm *boundForm[model.StationInfo]
	radioEditAddr *boundForm[model.StationInfo]
)

// radioCmd represents the radio command.
var radioCmd = &cobra.Command{
	Use:     "radio",
	Aliases: []string{"radios", "r"},
	Short:   "Manage radio stations",
	Long: `List, add and edit radio station contacts.

Examples:
  controleplus radio list --state GO --type FM
  controleplus radio list --search 62
  controleplus radio add --name "Rádio Nova" --type FM --frequency 98.5 --city Goiânia --state GO
  controleplus radio edit id_... --crowley --markets Goiânia
  controleplus radio archive id_...`,
	RunE: runRadioList,
}

var radioListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List radio stations",
	Args:    cobra.NoArgs,
	RunE:    runRadioList,
}

var radioShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a radio station",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindRadio),
	RunE:              runRadioShow,
}

var radioAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a radio station",
	Args:  cobra.NoArgs,
	RunE:  runRadioAdd,
}

var radioEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit a radio station",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindRadio),
	RunE:              runRadioEdit,
}

func init() {
	f := radioListCmd.Flags()
	f.StringVarP(&radioListFlagSearch, "search", "s", "", "Search name, city, frequency or area code")
	f.StringVar(&radioListFlagState, "state", "", "Filter by state (UF)")
	f.StringVar(&radioListFlagType, "type", "", "Filter by type")
	f.StringVar(&radioListFlagProfile, "profile", "", "Filter by profile")
	f.StringVar(&radioListFlagMarket, "market", "", "Filter by Crowley market")
	f.BoolVar(&radioListFlagAll, "all", false, "Include archived stations")

	radioAddForm = stationForm.bind(radioAddCmd)
	radioAddAddr = stationAddressForm.bind(radioAddCmd)
	radioEditForm = stationForm.bind(radioEditCmd)
	radioEditAddr = stationAddressForm.bind(radioEditCmd)

	radioCmd.AddCommand(radioListCmd, radioShowCmd, radioAddCmd, radioEditCmd,
		newArchiveCmd(model.KindRadio))
	rootCmd.AddCommand(radioCmd)
}

func runRadioList(cmd *cobra.Command, args []string) error {
	snap := ctx.Store.Snapshot()
	radios := snap.Radios
	if !radioListFlagAll {
		radios = views.Active(radios)
	}
	radios = views.Search(radios, radioListFlagSearch, views.RadioFields)
	radios = slices.DeleteFunc(radios, func(r model.RadioStation) bool {
		switch {
		case radioListFlagState != "" && r.State != radioListFlagState:
			return true
		case radioListFlagType != "" && string(r.Type) != radioListFlagType:
			return true
		case radioListFlagProfile != "" && string(r.Profile) != radioListFlagProfile:
			return true
		case radioListFlagMarket != "" && !slices.Contains(r.CrowleyMarkets, radioListFlagMarket):
			return true
		}
		return false
	})

	rows := make([]output.TableRow, len(radios))
	for i, r := range radios {
		rows[i] = output.TableRow{Columns: []string{
			r.ID,
			r.Name + archivedMark(r.IsArchived),
			orDash(string(r.Type) + " " + r.Frequency),
			orDash(r.City + "/" + r.State),
			orDash(textutil.FormatPhone(r.Phone)),
			shortList(r.CrowleyMarkets),
		}}
	}
	return printList(model.KindRadio.Tag(), radios, len(radios),
		[]string{"ID", "Name", "Dial", "City", "Phone", "Crowley"}, rows)
}

func runRadioShow(cmd *cobra.Command, args []string) error {
	r, ok := ctx.Store.Radio(args[0])
	if !ok {
		return notFound(model.KindRadio, args[0])
	}
	return printRecord(model.KindRadio, r, func(cli *output.CLIFormatter) {
		cli.Title(r.Name + archivedMark(r.IsArchived))
		cli.Field("ID", r.ID)
		cli.Field("Type", string(r.Type))
		cli.Field("Frequency", r.Frequency)
		cli.Field("Profile", string(r.Profile))
		cli.Field("Slogan", r.Slogan)
		cli.Field("Phone", textutil.FormatPhone(r.Phone))
		cli.Field("WhatsApp", waLink(r.WhatsApp))
		cli.Field("Listeners", waLink(r.ListenersWhatsApp))
		if info, ok := views.StationDDD(r.Phone, r.WhatsApp); ok {
			cli.Field("Area code", info.DDD+" ("+info.Region.City+"/"+info.Region.State+")")
		}
		cli.Field("Email", r.Email)
		cli.Field("Website", r.Website)
		cli.Field("Instagram", r.Instagram)
		cli.Field("Facebook", r.Facebook)
		cli.Field("Address", formatAddress(r.Street, r.Number, r.Complement, r.Neighborhood))
		cli.Field("City", orDash(r.City)+"/"+orDash(r.State))
		cli.Field("CEP", textutil.FormatCEP(r.ZipCode))
		cli.Field("Corporate name", r.CorporateName)
		cli.Field("CNPJ", textutil.FormatCNPJ(r.CNPJ))
		cli.Field("PIX", r.PixKey)
		cli.Field("Director", r.ArtisticDirector)
		if r.IsCrowleyAudited {
			cli.Field("Crowley", shortList(r.CrowleyMarkets))
		}
	})
}

func runRadioAdd(cmd *cobra.Command, args []string) error {
	var info model.StationInfo
	if err := applyStation(&info, radioAddForm, radioAddAddr); err != nil {
		return err
	}
	r := model.RadioStation{StationInfo: info}
	id, err := ctx.Store.SaveRadio(r)
	r.ID = id
	return reportSaved(model.KindRadio, []string{id}, r, err)
}

func runRadioEdit(cmd *cobra.Command, args []string) error {
	r, ok := ctx.Store.Radio(args[0])
	if !ok {
		return notFound(model.KindRadio, args[0])
	}
	if err := applyStation(&r.StationInfo, radioEditForm, radioEditAddr); err != nil {
		return err
	}
	id, err := ctx.Store.SaveRadio(r)
	return reportSaved(model.KindRadio, []string{id}, r, err)
}

// applyStation fills info from the station flags and checks the required
// fields and the Crowley markets.
func applyStation(info *model.StationInfo, forms ...*boundForm[model.StationInfo]) error {
	for _, f := range forms {
		if err := f.apply(info); err != nil {
			return err
		}
	}
	if err := validate.Name("name", info.Name); err != nil {
		return err
	}
	if info.Type == "" {
		info.Type = model.RadioFM
	}
	flags := forms[0].cmd.Flags()
	if flags.Changed("markets") && !flags.Changed("crowley") {
		info.IsCrowleyAudited = len(info.CrowleyMarkets) > 0
	}
	if info.IsCrowleyAudited {
		known := ctx.Store.Markets()
		for _, m := range info.CrowleyMarkets {
			if err := validate.OneOf("market", m, known); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatAddress(street, number, complement, neighborhood string) string {
	addr := street
	if number != "" {
		addr += ", " + number
	}
	if complement != "" {
		addr += " - " + complement
	}
	if neighborhood != "" {
		addr += " - " + neighborhood
	}
	return addr
}
