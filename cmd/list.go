package cmd

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var connection string
	filters := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List channels on a gateway instance",
		Long: `Fetches the full channel set from one instance and renders it as a
table. Filter flags narrow the listing; without them every channel is
shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			o, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			return o.ListChannels(cmd.Context(), connection, spec)
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "connection profile name")
	cmd.MarkFlagRequired("connection")
	filters.register(cmd)
	return cmd
}
