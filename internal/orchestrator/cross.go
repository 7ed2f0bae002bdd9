package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"chanctl/internal/cli"
	"chanctl/internal/crosssite"
	"chanctl/internal/plan"
)

// RunCrossSite executes a cross-site job through its state machine.
// Compare actions terminate at a report; copy_fields proceeds through the
// plan, confirmation, snapshot and apply stages on the target instance.
func (o *Orchestrator) RunCrossSite(ctx context.Context, job *crosssite.Job) error {
	exec, err := crosssite.NewExecution(job)
	if err != nil {
		return err
	}

	srcClient, srcConn, err := o.connect(job.Source.Connection)
	if err != nil {
		return err
	}
	tgtClient, tgtConn, err := o.connect(job.Target.Connection)
	if err != nil {
		return err
	}

	sourceChannels, err := o.listChannels(ctx, srcClient, srcConn)
	if err != nil {
		return err
	}

	// compare_channel_counts skips filtering and resolution entirely.
	if job.Action == crosssite.ActionCompareCounts {
		if err := exec.Advance(crosssite.StateSourceResolved); err != nil {
			return err
		}
		targetChannels, err := o.listChannels(ctx, tgtClient, tgtConn)
		if err != nil {
			return err
		}
		if err := exec.Advance(crosssite.StateTargetResolved); err != nil {
			return err
		}
		cli.RenderCountReport(o.Out, crosssite.CompareCounts(len(sourceChannels), len(targetChannels)))
		return exec.Advance(crosssite.StateReported)
	}

	template, warning, err := crosssite.ResolveSource(sourceChannels, specOrNil(job.Source.Filter))
	if err != nil {
		if errors.Is(err, crosssite.ErrNoSourceMatch) {
			fmt.Fprintf(o.Out, "No source channel on %s matched the filters.\n", srcConn.Name)
			return exec.Advance(crosssite.StateAborted)
		}
		return err
	}
	if warning != "" {
		fmt.Fprintf(o.Out, "WARNING: %s\n", warning)
	}
	if err := exec.Advance(crosssite.StateSourceResolved); err != nil {
		return err
	}

	targetChannels, err := o.listChannels(ctx, tgtClient, tgtConn)
	if err != nil {
		return err
	}
	if err := exec.Advance(crosssite.StateTargetResolved); err != nil {
		return err
	}

	if job.Action == crosssite.ActionCompareFields {
		report, err := crosssite.CompareFields(template, targetChannels, specOrNil(job.Target.Filter), job.Fields)
		if err != nil {
			return err
		}
		cli.RenderFieldReport(o.Out, report)
		return exec.Advance(crosssite.StateReported)
	}

	p, err := crosssite.PlanCopy(template, targetChannels, specOrNil(job.Target.Filter),
		job.Fields, job.EffectiveCopyMode(), tgtClient.Codec())
	if err != nil {
		if errors.Is(err, plan.ErrNoMatch) {
			fmt.Fprintf(o.Out, "No target channel on %s matched the filters.\n", tgtConn.Name)
			return exec.Advance(crosssite.StateAborted)
		}
		return err
	}
	p.Instance = tgtConn.Name

	fmt.Fprintf(o.Out, "Copying from %q (id %d) on %s to %s:\n",
		template.Name, template.ID, srcConn.Name, tgtConn.Name)
	cli.RenderPlan(o.Out, p)
	if p.IsEmpty() {
		return exec.Advance(crosssite.StateReported)
	}
	if err := exec.Advance(crosssite.StatePlanBuilt); err != nil {
		return err
	}

	if o.DryRun {
		fmt.Fprintln(o.Out, "Dry run: no snapshot taken, no changes applied.")
		return nil
	}
	if err := exec.Advance(crosssite.StateAwaitingConfirmation); err != nil {
		return err
	}
	if !cli.Confirm(o.In, o.Out, fmt.Sprintf("Apply these changes to %s?", tgtConn.Name), o.AssumeYes) {
		fmt.Fprintln(o.Out, "Aborted.")
		return exec.Advance(crosssite.StateAborted)
	}

	applyErr := o.applyPlan(ctx, tgtClient, tgtConn, "cross_copy", p)
	if err := exec.Advance(crosssite.StateApplied); err != nil {
		return err
	}
	return applyErr
}
