package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/cohort/internal/app"
)

// Version is set at build time.
var Version = "0.1.0"

func newRootCmd() *cobra.Command {
	var (
		configPath string
		prefsPath  string
		address    string
	)

	rootCmd := &cobra.Command{
		Use:   "cohort",
		Short: "Browse patient lists in the terminal",
		Long: `cohort browses patient lists served by the cohort API.

Lists are grouped into starred, system, personal and all lists. Search by
name, page through results, star lists and create new ones without leaving
the terminal.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: configPath,
				PrefsPath:  prefsPath,
				Address:    address,
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/cohort/config.toml)")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default: ~/.config/cohort/prefs.toml)")
	rootCmd.Flags().StringVar(&address, "address", "", "starting address, e.g. '/home/patient-lists?new_cohort=true'")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newLogsCmd(&configPath))
	return rootCmd
}
