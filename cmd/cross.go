package cmd

import (
	"github.com/spf13/cobra"

	"chanctl/internal/config"
)

func newCrossSiteCmd() *cobra.Command {
	var (
		file      string
		dryRun    bool
		assumeYes bool
	)

	cmd := &cobra.Command{
		Use:   "cross-site",
		Short: "Copy or compare channel configuration across two instances",
		Long: `Runs a cross-site job document. copy_fields resolves one template
channel on the source instance and writes the listed fields onto the
matched target channels; compare_fields and compare_channel_counts only
report and never mutate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCrossSiteConfig(file)
			if err != nil {
				return err
			}
			o, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			o.AssumeYes = assumeYes
			o.DryRun = dryRun
			return o.RunCrossSite(cmd.Context(), &cfg.Job)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "cross-site job document (YAML)")
	cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the plan without snapshotting or applying")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
