package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/five82/cohort/internal/app"
)

func newServeCmd(configPath *string) *cobra.Command {
	var (
		listen string
		dbPath string
		seed   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the patient-list API over a local SQLite catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return app.Serve(cmd.Context(), app.ServeOptions{
				ConfigPath: *configPath,
				Listen:     listen,
				DBPath:     dbPath,
				Seed:       seed,
				Ready: func(addr net.Addr) {
					fmt.Fprintf(out, "cohort api listening on %s\n", addr)
				},
			})
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, 127.0.0.1:7488)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo lists when the catalog is empty")
	return cmd
}
