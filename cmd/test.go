package cmd

import (
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	var (
		connection string
		enable     bool
		dryRun     bool
		assumeYes  bool
	)
	filters := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the gateway connectivity test against matched channels",
		Long: `Dispatches the gateway's own channel test for every matched channel,
using each channel's test model (or its first served model). With
--enable the channels that pass are flipped to enabled; when the only
failures are upstream quota rejections the enable step proceeds without
asking, since quota says nothing about the channel configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			o, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			o.AssumeYes = assumeYes
			o.DryRun = dryRun
			return o.RunTestEnable(cmd.Context(), connection, spec, enable)
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "connection profile name")
	cmd.MarkFlagRequired("connection")
	cmd.Flags().BoolVar(&enable, "enable", false, "enable the channels that pass the test")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the enable plan without snapshotting or applying")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	filters.register(cmd)
	return cmd
}
