package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/cohort/internal/config"
	"github.com/five82/cohort/internal/logging"
	"github.com/five82/cohort/internal/logtail"
)

const defaultLogLines = 50

func newLogsCmd(configPath *string) *cobra.Command {
	var (
		lines  int
		level  string
		file   string
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the cohort log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := file
			if path == "" {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				path = cfg.LogFile
			}
			minLevel, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !follow {
				entries, err := logtail.Read(path, lines, minLevel)
				if err != nil {
					return fmt.Errorf("read log: %w", err)
				}
				for _, e := range entries {
					printEntry(out, e)
				}
				return nil
			}

			entries, offset, err := logtail.Tail(path, lines, minLevel)
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			for _, e := range entries {
				printEntry(out, e)
			}
			return logtail.Follow(cmd.Context(), path, offset, minLevel, func(e logtail.Entry) {
				printEntry(out, e)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level: debug, info, warn or error")
	cmd.Flags().StringVar(&file, "file", "", "log file (default from config)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing new entries")
	return cmd
}

func printEntry(w io.Writer, e logtail.Entry) {
	fmt.Fprintln(w, logtail.Format(e))
}
