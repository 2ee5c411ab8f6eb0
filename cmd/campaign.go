package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/validate"
	"github.com/manav03panchal/controleplus/internal/views"
)

var (
	campaignListFlagSearch string
	campaignListFlagAll    bool

	campaignSendFlagSubject string
	campaignSendFlagBody    string
	campaignSendFlagTo      string
	campaignSendFlagMusic   string
	campaignSendFlagDryRun  bool
	campaignSendFlagFilter  views.RecipientFilter
	campaignSendFlagProfile string
	campaignSendFlagType    string
)

var campaignCmd = &cobra.Command{
	Use:     "campaign",
	Aliases: []string{"campaigns", "email"},
	Short:   "Send and review email campaigns",
	Long: `Build an email campaign for radio stations, city halls or businesses and
keep a record of what was sent. Campaigns cannot be edited once recorded.

Examples:
  controleplus campaign send --to Rádios --state GO --subject "Novo single" --body "..." --music id_...
  controleplus campaign send --to Prefeituras --ddd 62 --subject "Show" --body "..." --dry-run
  controleplus campaign list`,
	RunE: runCampaignList,
}

var campaignListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sent campaigns, newest first",
	Args:    cobra.NoArgs,
	RunE:    runCampaignList,
}

var campaignShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a sent campaign",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeIDs(model.KindCampaign),
	RunE:              runCampaignShow,
}

var campaignSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build the mail link for a campaign and record it",
	Long: `Select the recipients, print a mailto link with them in BCC and record the
campaign. When the link gets too long for a mail client the addresses are
printed for pasting into the BCC field instead.`,
	Args: cobra.NoArgs,
	RunE: runCampaignSend,
}

func init() {
	campaignListCmd.Flags().StringVarP(&campaignListFlagSearch, "search", "s", "", "Search subject or filter")
	campaignListCmd.Flags().BoolVar(&campaignListFlagAll, "all", false, "Include archived campaigns")

	f := campaignSendCmd.Flags()
	f.StringVar(&campaignSendFlagTo, "to", string(model.RecipientRadios), "Recipients: Rádios, Prefeituras or Empresários")
	f.StringVar(&campaignSendFlagSubject, "subject", "", "Subject")
	f.StringVar(&campaignSendFlagBody, "body", "", "Message body")
	f.StringVar(&campaignSendFlagMusic, "music", "", "Attach the WAV link of this song id")
	f.StringVar(&campaignSendFlagFilter.State, "state", "", "Only recipients in this state (UF)")
	f.StringVar(&campaignSendFlagFilter.DDD, "ddd", "", "Only recipients with this area code")
	f.StringVar(&campaignSendFlagProfile, "profile", "", "Radio profile")
	f.StringVar(&campaignSendFlagType, "type", "", "Radio type")
	f.StringVar(&campaignSendFlagFilter.CrowleyMarket, "market", "", "Radio Crowley market")
	f.StringVar(&campaignSendFlagFilter.Category, "category", "", "Business category")
	f.BoolVar(&campaignSendFlagDryRun, "dry-run", false, "Show the recipients without recording")
	_ = campaignSendCmd.MarkFlagRequired("subject")

	campaignCmd.AddCommand(campaignListCmd, campaignShowCmd, campaignSendCmd,
		newArchiveCmd(model.KindCampaign))
	rootCmd.AddCommand(campaignCmd)
}

func runCampaignList(cmd *cobra.Command, args []string) error {
	campaigns := ctx.Store.Snapshot().Campaigns
	if !campaignListFlagAll {
		campaigns = views.Active(campaigns)
	}
	campaigns = views.SortCampaigns(views.Search(campaigns, campaignListFlagSearch, views.CampaignFields))

	rows := make([]output.TableRow, len(campaigns))
	for i, c := range campaigns {
		rows[i] = output.TableRow{Columns: []string{
			c.ID,
			output.FormatStamp(c.SentAt),
			c.Subject + archivedMark(c.IsArchived),
			string(c.RecipientCategory),
			c.RecipientFilter,
			fmt.Sprintf("%d", c.RecipientCount),
		}}
	}
	return printList(model.KindCampaign.Tag(), campaigns, len(campaigns),
		[]string{"ID", "Sent", "Subject", "To", "Filter", "Count"}, rows,
		output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight)
}

func runCampaignShow(cmd *cobra.Command, args []string) error {
	c, ok := ctx.Store.Campaign(args[0])
	if !ok {
		return notFound(model.KindCampaign, args[0])
	}
	return printRecord(model.KindCampaign, c, func(cli *output.CLIFormatter) {
		cli.Title(c.Subject + archivedMark(c.IsArchived))
		cli.Field("ID", c.ID)
		cli.Field("Sent", output.FormatStamp(c.SentAt))
		cli.Field("To", fmt.Sprintf("%s (%d)", c.RecipientCategory, c.RecipientCount))
		cli.Field("Filter", c.RecipientFilter)
		if m, ok := ctx.Store.Music(c.AttachedMusicID); ok {
			cli.Field("Song", m.Title)
		}
		cli.Println()
		cli.Println(c.Body)
	})
}

// campaignSendResponse is the JSON shape of campaign send.
type campaignSendResponse struct {
	Status     string            `json:"status"`
	ID         string            `json:"id,omitempty"`
	Filter     string            `json:"filter"`
	Recipients []views.Recipient `json:"recipients"`
	Mailto     string            `json:"mailto"`
	Fits       bool              `json:"mailto_has_recipients"`
	Warning    string            `json:"warning,omitempty"`
}

func runCampaignSend(cmd *cobra.Command, args []string) error {
	category := model.RecipientCategory(campaignSendFlagTo)
	if err := validate.OneOf("to", category, model.RecipientCategories); err != nil {
		return err
	}
	filter := campaignSendFlagFilter
	filter.Profile = model.RadioProfile(campaignSendFlagProfile)
	filter.Type = model.RadioType(campaignSendFlagType)
	if err := validate.OneOf("profile", filter.Profile, model.RadioProfiles); err != nil {
		return err
	}
	if err := validate.OneOf("type", filter.Type, model.RadioTypes); err != nil {
		return err
	}
	subject := validate.SanitizeField(campaignSendFlagSubject)
	if err := validate.Name("subject", subject); err != nil {
		return err
	}

	campaign := model.EmailCampaign{
		Subject:           subject,
		RecipientCategory: category,
		RecipientFilter:   filter.Summary(category),
	}
	var downloadLink string
	if campaignSendFlagMusic != "" {
		m, ok := ctx.Store.Music(campaignSendFlagMusic)
		if !ok {
			return notFound(model.KindMusic, campaignSendFlagMusic)
		}
		campaign.AttachedMusicID = m.ID
		campaign.AttachedArtistID = m.ArtistID
		downloadLink = m.WavURL
	}
	campaign.Body = views.CampaignBody(validate.SanitizeNote(campaignSendFlagBody), downloadLink)

	recipients := views.Recipients(ctx.Store.Snapshot(), category, filter)
	emails := views.Emails(recipients)
	if len(emails) == 0 {
		return errors.NewUserErrorWithField("to", string(category),
			"no recipient with an email address matches the filters",
			"Loosen the filters or add email addresses to the contacts")
	}
	campaign.RecipientIDs = views.RecipientIDs(recipients)
	link, fits := views.Mailto(emails, campaign.Subject, campaign.Body)

	var id, warning string
	if !campaignSendFlagDryRun {
		var err error
		id, err = ctx.Store.RecordCampaign(campaign)
		if warning, err = splitWarning(err); err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		status := "recorded"
		if campaignSendFlagDryRun {
			status = "dry_run"
		}
		return ctx.Formatter.JSON(campaignSendResponse{
			Status: status, ID: id, Filter: campaign.RecipientFilter,
			Recipients: recipients, Mailto: link, Fits: fits, Warning: warning,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Title(fmt.Sprintf("%s: %d recipient(s), %d with email", campaign.RecipientFilter, len(recipients), len(emails)))
	if !fits {
		cli.Warning("Too many addresses for a mail link. Paste these into the BCC field:")
		cli.Println(strings.Join(emails, ","))
		cli.Println()
	}
	cli.Println(link)
	if campaignSendFlagDryRun {
		cli.Muted("Dry run, nothing recorded")
		return nil
	}
	cli.Success("Recorded campaign " + id)
	printWarning(warning)
	return nil
}
