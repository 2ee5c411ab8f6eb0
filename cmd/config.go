package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/config"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/logging"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/store"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings", "prefs"},
	Short:   "Show settings and change preferences",
	Long: `Show the effective configuration and change the preferences kept in the
database.

Settings come from the config file ($XDG_CONFIG_HOME/controleplus/config.toml),
a .env file and CONTROLEPLUS_* environment variables. Preferences are stored
with the data and travel with backups.

Examples:
  controleplus config get
  controleplus config get sync.interval
  controleplus config set theme dark
  controleplus config set view promotions`,
}

// configGetCmd gets configuration values.
var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get configuration value",
	Long: `Get a configuration value or show all values.

Keys:
  theme               Color theme (light or dark)
  view                Last opened view
  sync.url            Spreadsheet URL (masked)
  sync.interval       Time between checks
  sync.debounce       Minimum time between two checks
  sync.timeout        Request timeout
  storage.path        Database directory
  backup.driver       Backup destination (fs or s3)
  logging.level       Log level`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigGet,
}

// configSetCmd sets preferences.
var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a preference",
	Long: `Set a preference kept in the database.

Keys and values:
  theme light|dark     Color theme
  view NAME            View opened by default (dashboard, submissions or a
                       record kind such as radios or promotions)

File and environment settings are changed in the config file.`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 0:
			return []string{"theme", "view"}, cobra.ShellCompDirectiveNoFileComp
		case 1:
			if args[0] == "theme" {
				return store.Themes, cobra.ShellCompDirectiveNoFileComp
			}
			return viewNames(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// viewNames lists the views a user can open.
func viewNames() []string {
	names := []string{"dashboard", "submissions", "archive"}
	for _, k := range model.Kinds {
		names = append(names, k.Tag())
	}
	return names
}

// configValues returns every readable key with its current value, in
// display order.
func configValues() [][2]string {
	c := ctx.Config
	path := c.Storage.Path
	if path == "" {
		path = "default (XDG data directory)"
	}
	return [][2]string{
		{"theme", ctx.Store.Theme()},
		{"view", ctx.Store.ActiveView()},
		{"sync.url", logging.MaskURL(ctx.Store.SheetsURL())},
		{"sync.interval", c.Sync.Interval.String()},
		{"sync.debounce", c.Sync.Debounce.String()},
		{"sync.timeout", c.Sync.Timeout.String()},
		{"storage.path", path},
		{"backup.driver", c.Backup.Driver},
		{"logging.level", c.Logging.Level},
	}
}

func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var keys []string
	for _, kv := range configValues() {
		if strings.HasPrefix(kv[0], toComplete) {
			keys = append(keys, kv[0])
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

// runConfigGet handles the config get command.
func runConfigGet(cmd *cobra.Command, args []string) error {
	values := configValues()

	if len(args) == 1 {
		i := slices.IndexFunc(values, func(kv [2]string) bool { return kv[0] == args[0] })
		if i < 0 {
			return errors.NewUserErrorWithField("key", args[0], "unknown config key",
				"Run 'controleplus config get' to list the keys")
		}
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]string{"key": values[i][0], "value": values[i][1]})
		}
		ctx.Formatter.Println(values[i][1])
		return nil
	}

	if ctx.IsJSON() {
		out := make(map[string]string, len(values))
		for _, kv := range values {
			out[kv[0]] = kv[1]
		}
		return ctx.Formatter.JSON(out)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Settings")
	for _, kv := range values {
		cli.Field(kv[0], orDash(kv[1]))
	}
	cli.Muted("Config file: " + configPath())
	return nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultConfigPath()
}

// runConfigSet handles the config set command.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])

	var err error
	switch key {
	case "theme":
		err = ctx.Store.SetTheme(value)
	case "view":
		if !slices.Contains(viewNames(), value) {
			return errors.NewUserErrorWithField("view", value, "unknown view",
				"Use one of: "+strings.Join(viewNames(), ", "))
		}
		err = ctx.Store.SetActiveView(value)
	case "sync.url":
		return errors.NewUserError("sync.url is set with its own command", "Use 'controleplus sync url URL'")
	default:
		return errors.NewUserErrorWithField("key", key, "not a preference", "Preferences are theme and view")
	}

	return reportAction(output.ActionResponse{Action: "set", Kind: "config", Target: key},
		fmt.Sprintf("%s set to %s", key, value), err)
}
