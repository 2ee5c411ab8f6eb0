package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/views"
)

var marketListFlagSearch string

var marketCmd = &cobra.Command{
	Use:     "market",
	Aliases: []string{"markets", "praca"},
	Short:   "Manage Crowley markets",
	Long: `Crowley markets are the audited regions offered when marking a station as
Crowley audited. Renaming or deleting a market does not change the
stations already saved with it.

Examples:
  controleplus market list
  controleplus market add "Goiânia"
  controleplus market rename "Goiania" "Goiânia"`,
	RunE: runMarketList,
}

var marketListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List markets",
	Args:    cobra.NoArgs,
	RunE:    runMarketList,
}

var marketAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a market",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := ctx.Store.AddMarket(args[0])
		return reportAction(output.ActionResponse{Action: "add", Kind: "market", Target: args[0], Count: 1},
			fmt.Sprintf("Added market %q", args[0]), err)
	},
}

var marketRenameCmd = &cobra.Command{
	Use:               "rename OLD NEW",
	Short:             "Rename a market",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeMarkets,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := ctx.Store.RenameMarket(args[0], args[1])
		return reportAction(output.ActionResponse{Action: "rename", Kind: "market", ID: args[0], Target: args[1], Count: 1},
			fmt.Sprintf("Renamed market %q to %q", args[0], args[1]), err)
	},
}

var marketDeleteCmd = &cobra.Command{
	Use:               "delete NAME",
	Aliases:           []string{"rm"},
	Short:             "Delete a market",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeMarkets,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := ctx.Store.DeleteMarket(args[0])
		return reportAction(output.ActionResponse{Action: "delete", Kind: "market", Target: args[0], Count: 1},
			fmt.Sprintf("Deleted market %q", args[0]), err)
	},
}

func init() {
	marketListCmd.Flags().StringVarP(&marketListFlagSearch, "search", "s", "", "Search market names")

	marketCmd.AddCommand(marketListCmd, marketAddCmd, marketRenameCmd, marketDeleteCmd)
	rootCmd.AddCommand(marketCmd)
}

func runMarketList(cmd *cobra.Command, args []string) error {
	markets := views.Search(ctx.Store.Markets(), marketListFlagSearch, views.MarketFields)

	stations := make(map[string]int)
	for _, r := range views.Active(ctx.Store.Snapshot().Radios) {
		for _, m := range r.CrowleyMarkets {
			stations[m]++
		}
	}
	rows := make([]output.TableRow, len(markets))
	for i, m := range markets {
		rows[i] = output.TableRow{Columns: []string{m, output.FormatCount(stations[m])}}
	}
	return printList("markets", markets, len(markets), []string{"Market", "Stations"}, rows,
		output.AlignLeft, output.AlignRight)
}
