package cmd

import (
	"github.com/spf13/cobra"
)

func newFindKeyCmd() *cobra.Command {
	var connection string

	cmd := &cobra.Command{
		Use:   "find-key <key>",
		Short: "Locate the channel holding an exact secret key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			return o.FindByKey(cmd.Context(), connection, args[0])
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "connection profile name")
	cmd.MarkFlagRequired("connection")
	return cmd
}
