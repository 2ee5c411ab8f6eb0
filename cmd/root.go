// Package cmd provides the CLI commands for Controle Plus.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
)

// annotationNoStore marks commands that must not open the database, either
// because they never touch it or because a running sync process holds it.
const annotationNoStore = "controleplus/no-store"

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "controleplus",
	Short: "Promotion contacts, releases and radio submissions in one place",
	Long: `Controle Plus keeps the radio stations, city halls, businesses, artists,
songs, promotions, events, blitz visits and email campaigns of a music
promotion office, and pulls new station registrations from the intake
spreadsheet.

Examples:
  controleplus radio list --state GO
  controleplus artist add "Zé Neto" --genre Sertanejo --song "Seu Brilho@2026-03-06"
  controleplus promotion add --name "Verba março" --radio id_1,id_2 --type Verba --value 1.500,00
  controleplus sync url https://script.google.com/macros/s/.../exec
  controleplus dashboard --live`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" || skipStore(cmd) {
			return nil
		}
		return initRuntime()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the dashboard summary
		return runDashboardSummary()
	},
}

// runtimeOptions builds the runtime options from the global flags.
func runtimeOptions() runtime.Options {
	f := flagFormatter()
	opts := runtime.DefaultOptions()
	opts.ConfigPath = flagConfig
	opts.Format = f.Format
	opts.ColorMode = f.ColorMode
	opts.Debug = flagDebug
	return opts
}

// flagFormatter returns a formatter for the --format and --color flags, for
// commands that run without the runtime context.
func flagFormatter() *output.Formatter {
	f := output.NewFormatter()
	switch flagFormat {
	case "json":
		f.Format = output.FormatJSON
	case "plain":
		f.Format = output.FormatPlain
	default:
		f.Format = output.FormatCLI
	}

	switch flagColor {
	case "always":
		f.ColorMode = output.ColorAlways
	case "never":
		f.ColorMode = output.ColorNever
	default:
		f.ColorMode = output.ColorAuto
	}
	return f
}

// initRuntime opens the configuration, database and store into ctx.
func initRuntime() error {
	var err error
	ctx, err = runtime.New(runtimeOptions())
	return err
}

// skipStore reports whether cmd runs without the runtime context.
func skipStore(cmd *cobra.Command) bool {
	if _, ok := cmd.Annotations[annotationNoStore]; ok {
		return true
	}
	return cmd == syncRunCmd && syncRunFlagDetach
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if ctx != nil {
			_ = ctx.Close()
		}
		Die(err)
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/controleplus/config.toml)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{annotationNoStore: ""},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("controleplus %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Based on Zeit (https://github.com/mrusme/zeit)")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// Die prints an error and exits.
func Die(err error) {
	if f := flagFormatter(); f.IsJSON() {
		_ = output.NewJSONFormatter(f).PrintError(err, err.Error(), runtime.GetSuggestion(err))
	} else {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
	}
	os.Exit(1)
}
