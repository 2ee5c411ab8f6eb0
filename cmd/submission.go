package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/textutil"
	"github.com/manav03panchal/controleplus/internal/views"
)

var (
	submissionListFlagSearch string

	submissionPromoteForm *boundForm[model.StationInfo]
	submissionPromoteAddr *boundForm[model.StationInfo]
	submissionSubmitForm  *boundForm[model.StationInfo]
	submissionSubmitAddr  *boundForm[model.StationInfo]
	submissionFlagYes     bool
)

var submissionCmd = &cobra.Command{
	Use:     "submission",
	Aliases: []string{"submissions", "sub"},
	Short:   "Review stations registered through the public form",
	Long: `Stations that register through the public form wait here until they are
promoted to radio stations or deleted. 'controleplus sync once' pulls new
registrations from the spreadsheet.

Examples:
  controleplus submission list
  controleplus submission review SUBMISSION_ID
  controleplus submission promote SUBMISSION_ID --profile Popular
  controleplus submission submit --name "Rádio Teste" --city Goiânia --state GO`,
	RunE: runSubmissionList,
}

var submissionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List pending submissions",
	Args:    cobra.NoArgs,
	RunE:    runSubmissionList,
}

var submissionReviewCmd = &cobra.Command{
	Use:               "review SUBMISSION_ID",
	Aliases:           []string{"show"},
	Short:             "Show a pending submission",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSubmissions,
	RunE:              runSubmissionReview,
}

var submissionPromoteCmd = &cobra.Command{
	Use:               "promote SUBMISSION_ID",
	Aliases:           []string{"approve"},
	Short:             "Save a submission as a radio station",
	Long:              "Save a submission as a radio station. Station flags override the submitted values.",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSubmissions,
	RunE:              runSubmissionPromote,
}

var submissionDeleteCmd = &cobra.Command{
	Use:               "delete SUBMISSION_ID",
	Aliases:           []string{"rm", "reject"},
	Short:             "Discard a submission",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSubmissions,
	RunE:              runSubmissionDelete,
}

var submissionSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a registration to the spreadsheet like the public form",
	Args:  cobra.NoArgs,
	RunE:  runSubmissionSubmit,
}

func init() {
	submissionListCmd.Flags().StringVarP(&submissionListFlagSearch, "search", "s", "", "Search name, city or state")

	submissionPromoteForm = stationForm.bind(submissionPromoteCmd)
	submissionPromoteAddr = stationAddressForm.bind(submissionPromoteCmd)
	submissionSubmitForm = stationForm.bind(submissionSubmitCmd)
	submissionSubmitAddr = stationAddressForm.bind(submissionSubmitCmd)
	submissionDeleteCmd.Flags().BoolVarP(&submissionFlagYes, "yes", "y", false, "Do not ask for confirmation")

	submissionCmd.AddCommand(submissionListCmd, submissionReviewCmd, submissionPromoteCmd,
		submissionDeleteCmd, submissionSubmitCmd)
	rootCmd.AddCommand(submissionCmd)
}

func runSubmissionList(cmd *cobra.Command, args []string) error {
	subs := views.Search(ctx.Store.Submissions(), submissionListFlagSearch, views.SubmissionFields)
	rows := make([]output.TableRow, len(subs))
	for i, s := range subs {
		rows[i] = output.TableRow{Columns: []string{
			s.SubmissionID,
			orDash(s.Name),
			orDash(string(s.Type) + " " + s.Frequency),
			orDash(s.City + "/" + s.State),
			orDash(textutil.FormatPhone(s.Phone)),
		}}
	}
	return printList("submissions", subs, len(subs),
		[]string{"Submission", "Name", "Dial", "City", "Phone"}, rows)
}

func runSubmissionReview(cmd *cobra.Command, args []string) error {
	s, ok := ctx.Store.Submission(args[0])
	if !ok {
		return errors.NotFound("submission", args[0])
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.RecordResponse{Status: "ok", Kind: "submissions", Record: s})
	}
	cli := ctx.CLIFormatter()
	cli.Title(orDash(s.Name) + " (pending)")
	cli.Field("Submission", s.SubmissionID)
	cli.Field("Type", string(s.Type))
	cli.Field("Frequency", s.Frequency)
	cli.Field("Profile", string(s.Profile))
	cli.Field("Phone", textutil.FormatPhone(s.Phone))
	cli.Field("WhatsApp", waLink(s.WhatsApp))
	cli.Field("Email", s.Email)
	cli.Field("Website", s.Website)
	cli.Field("Address", formatAddress(s.Street, s.Number, s.Complement, s.Neighborhood))
	cli.Field("City", orDash(s.City)+"/"+orDash(s.State))
	cli.Field("CEP", textutil.FormatCEP(s.ZipCode))
	cli.Field("CNPJ", textutil.FormatCNPJ(s.CNPJ))
	cli.Field("Director", s.ArtisticDirector)
	if s.IsCrowleyAudited {
		cli.Field("Crowley", shortList(s.CrowleyMarkets))
	}
	return nil
}

func runSubmissionPromote(cmd *cobra.Command, args []string) error {
	sub, ok := ctx.Store.Submission(args[0])
	if !ok {
		return errors.NotFound("submission", args[0])
	}
	station := sub.ToStation()
	if err := applyStation(&station.StationInfo, submissionPromoteForm, submissionPromoteAddr); err != nil {
		return err
	}
	id, err := ctx.Store.PromoteSubmission(args[0], func(r *model.RadioStation) {
		*r = station
	})
	station.ID = id
	return reportSaved(model.KindRadio, []string{id}, station, err)
}

func runSubmissionDelete(cmd *cobra.Command, args []string) error {
	if _, ok := ctx.Store.Submission(args[0]); !ok {
		return errors.NotFound("submission", args[0])
	}
	if err := confirm(fmt.Sprintf("Discard submission %s?", args[0]), submissionFlagYes); err != nil {
		return cancelled(err)
	}
	err := ctx.Store.DeleteSubmission(args[0])
	return reportAction(output.ActionResponse{Action: "delete", Kind: "submissions", ID: args[0], Count: 1},
		"Discarded submission "+args[0], err)
}

func runSubmissionSubmit(cmd *cobra.Command, args []string) error {
	url := ctx.Store.SheetsURL()
	if url == "" {
		return errors.NewUserError("no spreadsheet URL configured", errors.GetSuggestion(errors.ErrSheetsNotConfigured)).
			WithCause(errors.ErrSheetsNotConfigured)
	}
	var info model.StationInfo
	if err := applyStation(&info, submissionSubmitForm, submissionSubmitAddr); err != nil {
		return err
	}
	if !info.IsCrowleyAudited {
		info.CrowleyMarkets = nil
	}
	if err := ctx.Sheets.Submit(cmd.Context(), url, info); err != nil {
		return err
	}
	return reportAction(output.ActionResponse{Action: "submit", Kind: "submissions", Target: info.Name, Count: 1},
		fmt.Sprintf("Sent %q to the spreadsheet", info.Name), nil)
}
