package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chanctl/internal/config"
)

func newUpdateCmd() *cobra.Command {
	var (
		connection string
		file       string
		dryRun     bool
		assumeYes  bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply a filter-and-update document to one instance",
		Long: `Loads an update document (filters plus per-field update rules), shows
the resulting plan and, after confirmation, snapshots and applies it.

With --watch the document is re-planned as a dry run every time the file
is saved, which makes iterating on filters cheap. Watch mode never
applies anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			o.AssumeYes = assumeYes
			o.DryRun = dryRun || watch

			runOnce := func() error {
				cfg, err := config.LoadUpdateConfig(file)
				if err != nil {
					return err
				}
				return o.RunUpdate(cmd.Context(), connection, cfg)
			}

			if !watch {
				return runOnce()
			}

			if err := runOnce(); err != nil {
				// Watch mode keeps going so the next save can fix the
				// document.
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
			}
			changes, err := config.Watch(cmd.Context(), []string{file}, 500*time.Millisecond)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s; every save re-plans as a dry run. Ctrl+C to stop.\n", file)
			for range changes {
				fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s changed ---\n", file)
				if err := runOnce(); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "connection profile name")
	cmd.MarkFlagRequired("connection")
	cmd.Flags().StringVarP(&file, "file", "f", "", "update document (YAML)")
	cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the plan without snapshotting or applying")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-plan on every save of the document (implies --dry-run)")
	return cmd
}
