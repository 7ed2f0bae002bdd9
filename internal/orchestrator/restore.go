package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"chanctl/internal/cli"
	"chanctl/internal/undo"
)

// ListSnapshots prints the stored undo snapshots for a connection, newest
// first.
func (o *Orchestrator) ListSnapshots(connName string) error {
	infos, err := o.Ledger.List(connName)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintf(o.Out, "No undo snapshots stored for %s.\n", connName)
		return nil
	}
	cli.RenderSnapshots(o.Out, infos)
	return nil
}

// RunRestore writes a snapshot's captured state back to the instance. An
// empty path restores the newest snapshot for the connection. The current
// remote state is snapshotted first, so a restore can itself be undone.
func (o *Orchestrator) RunRestore(ctx context.Context, connName, path string) error {
	var snap *undo.Snapshot
	var err error
	if path == "" {
		snap, err = o.Ledger.Latest(connName, "")
	} else {
		snap, err = o.Ledger.Load(path)
	}
	if err != nil {
		if errors.Is(err, undo.ErrNoSnapshot) {
			fmt.Fprintf(o.Out, "No undo snapshots stored for %s.\n", connName)
			return nil
		}
		return err
	}
	if snap.Instance != connName {
		return fmt.Errorf("snapshot was taken on %q, not %q", snap.Instance, connName)
	}

	cl, conn, err := o.connect(connName)
	if err != nil {
		return err
	}
	if conn.APIType != snap.APIType {
		return fmt.Errorf("snapshot API type %q does not match connection API type %q",
			snap.APIType, conn.APIType)
	}

	p, err := undo.RestorePlan(snap, cl.Codec())
	if err != nil {
		return err
	}

	fmt.Fprintf(o.Out, "Restoring %d channels on %s from snapshot taken %s (%s operation %s).\n",
		len(snap.Channels), conn.Name, snap.TakenAt.Format("2006-01-02 15:04:05"), snap.Kind, snap.OperationID)
	cli.RenderPlan(o.Out, p)
	if p.IsEmpty() {
		return nil
	}

	if o.DryRun {
		fmt.Fprintln(o.Out, "Dry run: no snapshot taken, no changes applied.")
		return nil
	}
	if !cli.Confirm(o.In, o.Out, fmt.Sprintf("Restore these channels on %s?", conn.Name), o.AssumeYes) {
		fmt.Fprintln(o.Out, "Aborted.")
		return nil
	}

	return o.applyPlan(ctx, cl, conn, "restore", p)
}
