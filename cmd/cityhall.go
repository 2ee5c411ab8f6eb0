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

var cityHallForm = append(form[model.CityHall]{
	textField("city", "City name", func(c *model.CityHall) *string { return &c.CityName }),
	textField("state", "State (UF)", func(c *model.CityHall) *string { return &c.State }),
	textField("mayor", "Mayor", func(c *model.CityHall) *string { return &c.Mayor }),
	linkField("website", "Website", func(c *model.CityHall) *string { return &c.Website }),
	textField("phone", "Phone", func(c *model.CityHall) *string { return &c.Phone }),
	emailField("email", func(c *model.CityHall) *string { return &c.Email }),
	textField("whatsapp", "WhatsApp", func(c *model.CityHall) *string { return &c.WhatsApp }),
	textField("instagram", "Instagram", func(c *model.CityHall) *string { return &c.Instagram }),
	textField("facebook", "Facebook", func(c *model.CityHall) *string { return &c.Facebook }),
	linkField("logo-url", "Logo URL", func(c *model.CityHall) *string { return &c.LogoURL }),
}, addressFields(func(c *model.CityHall) address {
	return address{&c.Street, &c.Number, &c.Complement, &c.Neighborhood, &c.ZipCode}
})...)

var (
	cityHallListFlagSearch string
	cityHallListFlagState  string
	cityHallListFlagAll    bool

	cityHallAddForm  *boundForm[model.CityHall]
	cityHallEditForm *boundForm[model.CityHall]
)

var cityHallCmd = &cobra.Command{
	Use:     "cityhall",
	Aliases: []string{"cityhalls", "prefeitura", "ch"},
	Short:   "Manage city halls",
	Long: `List, add and edit city hall contacts.

Examples:
  controleplus cityhall list --state GO
  controleplus cityhall add --city Anápolis --state GO --mayor "Maria Souza"`,
	RunE: runCityHallList,
}

var cityHallListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List city halls",
	Args:    cobra.NoArgs,
	RunE:    runCityHallList,
}

var cityHallShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a city hall",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindCityHall),
	RunE:              runCityHallShow,
}

var cityHallAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a city hall",
	Args:  cobra.NoArgs,
	RunE:  runCityHallAdd,
}

var cityHallEditCmd = &cobra.Command{
	Use:               "edit ID",
	Short:             "Edit a city hall",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindCityHall),
	RunE:              runCityHallEdit,
}

func init() {
	f := cityHallListCmd.Flags()
	f.StringVarP(&cityHallListFlagSearch, "search", "s", "", "Search city, mayor or state")
	f.StringVar(&cityHallListFlagState, "state", "", "Filter by state (UF)")
	f.BoolVar(&cityHallListFlagAll, "all", false, "Include archived city halls")

	cityHallAddForm = cityHallForm.bind(cityHallAddCmd)
	cityHallEditForm = cityHallForm.bind(cityHallEditCmd)

	cityHallCmd.AddCommand(cityHallListCmd, cityHallShowCmd, cityHallAddCmd, cityHallEditCmd,
		newArchiveCmd(model.KindCityHall))
	rootCmd.AddCommand(cityHallCmd)
}

func runCityHallList(cmd *cobra.Command, args []string) error {
	halls := ctx.Store.Snapshot().CityHalls
	if !cityHallListFlagAll {
		halls = views.Active(halls)
	}
	halls = views.Search(halls, cityHallListFlagSearch, views.CityHallFields)
	if cityHallListFlagState != "" {
		halls = slices.DeleteFunc(halls, func(c model.CityHall) bool { return c.State != cityHallListFlagState })
	}

	rows := make([]output.TableRow, len(halls))
	for i, c := range halls {
		rows[i] = output.TableRow{Columns: []string{
			c.ID,
			c.CityName + archivedMark(c.IsArchived),
			orDash(c.State),
			orDash(c.Mayor),
			orDash(textutil.FormatPhone(c.Phone)),
		}}
	}
	return printList(model.KindCityHall.Tag(), halls, len(halls),
		[]string{"ID", "City", "UF", "Mayor", "Phone"}, rows)
}

func runCityHallShow(cmd *cobra.Command, args []string) error {
	c, ok := ctx.Store.CityHall(args[0])
	if !ok {
		return notFound(model.KindCityHall, args[0])
	}
	return printRecord(model.KindCityHall, c, func(cli *output.CLIFormatter) {
		cli.Title(c.CityName + "/" + c.State + archivedMark(c.IsArchived))
		cli.Field("ID", c.ID)
		cli.Field("Mayor", c.Mayor)
		cli.Field("Phone", textutil.FormatPhone(c.Phone))
		cli.Field("WhatsApp", waLink(c.WhatsApp))
		cli.Field("Email", c.Email)
		cli.Field("Website", c.Website)
		cli.Field("Instagram", c.Instagram)
		cli.Field("Facebook", c.Facebook)
		cli.Field("Address", formatAddress(c.Street, c.Number, c.Complement, c.Neighborhood))
		cli.Field("CEP", textutil.FormatCEP(c.ZipCode))
	})
}

func runCityHallAdd(cmd *cobra.Command, args []string) error {
	var c model.CityHall
	if err := applyCityHall(&c, cityHallAddForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveCityHall(c)
	c.ID = id
	return reportSaved(model.KindCityHall, []string{id}, c, err)
}

func runCityHallEdit(cmd *cobra.Command, args []string) error {
	c, ok := ctx.Store.CityHall(args[0])
	if !ok {
		return notFound(model.KindCityHall, args[0])
	}
	if err := applyCityHall(&c, cityHallEditForm); err != nil {
		return err
	}
	id, err := ctx.Store.SaveCityHall(c)
	return reportSaved(model.KindCityHall, []string{id}, c, err)
}

func applyCityHall(c *model.CityHall, f *boundForm[model.CityHall]) error {
	if err := f.apply(c); err != nil {
		return err
	}
	return validate.Name("city", c.CityName)
}
