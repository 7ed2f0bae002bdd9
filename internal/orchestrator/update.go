package orchestrator

import (
	"context"
	"fmt"

	"chanctl/internal/cli"
	"chanctl/internal/config"
	"chanctl/internal/plan"
)

// RunUpdate executes a single-site update: plan, show, confirm, snapshot,
// apply.
func (o *Orchestrator) RunUpdate(ctx context.Context, connName string, cfg *config.UpdateConfig) error {
	cl, conn, err := o.connect(connName)
	if err != nil {
		return err
	}
	channels, err := o.listChannels(ctx, cl, conn)
	if err != nil {
		return err
	}

	p, err := plan.Build(channels, &cfg.Filters, cfg.Updates, cl.Codec())
	if err != nil {
		if handled, err := o.reportNoMatch(err); handled {
			return err
		}
		return err
	}
	p.Instance = conn.Name

	cli.RenderPlan(o.Out, p)
	if p.IsEmpty() {
		return nil
	}
	if o.DryRun {
		fmt.Fprintln(o.Out, "Dry run: no snapshot taken, no changes applied.")
		return nil
	}

	if !cli.Confirm(o.In, o.Out, fmt.Sprintf("Apply these changes to %s?", conn.Name), o.AssumeYes) {
		fmt.Fprintln(o.Out, "Aborted.")
		return nil
	}

	return o.applyPlan(ctx, cl, conn, "update", p)
}
