package cmd

import (
	"github.com/spf13/cobra"
)

func newUndoCmd() *cobra.Command {
	var (
		connection string
		list       bool
		file       string
		dryRun     bool
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore channels from a pre-operation snapshot",
		Long: `Every mutating operation snapshots the full state of the channels it
touches before dispatching anything. undo writes a snapshot back:
--list shows the stored snapshots for a connection, --file restores a
specific one, and without --file the newest snapshot is restored. The
restore itself is snapshotted first, so it can be undone too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			if list {
				return o.ListSnapshots(connection)
			}
			o.AssumeYes = assumeYes
			o.DryRun = dryRun
			return o.RunRestore(cmd.Context(), connection, file)
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "connection profile name")
	cmd.MarkFlagRequired("connection")
	cmd.Flags().BoolVar(&list, "list", false, "list stored snapshots instead of restoring")
	cmd.Flags().StringVarP(&file, "file", "f", "", "snapshot file to restore (default: newest)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the restore plan without applying")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
