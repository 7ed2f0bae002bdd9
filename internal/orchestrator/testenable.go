package orchestrator

import (
	"context"
	"fmt"

	"chanctl/internal/apply"
	"chanctl/internal/channel"
	"chanctl/internal/cli"
	"chanctl/internal/client"
	"chanctl/internal/filter"
	"chanctl/internal/plan"
)

// RunTestEnable runs the gateway connectivity test against every matched
// channel and, when enable is set, flips the passing ones to enabled. When
// every failure is a quota rejection the enable step proceeds without
// confirmation: an upstream quota error says nothing about the channel
// configuration being wrong.
func (o *Orchestrator) RunTestEnable(ctx context.Context, connName string, spec *filter.Spec, enable bool) error {
	cl, conn, err := o.connect(connName)
	if err != nil {
		return err
	}
	channels, err := o.listChannels(ctx, cl, conn)
	if err != nil {
		return err
	}
	matched, err := filter.Select(channels, spec)
	if err != nil {
		return err
	}
	if enable {
		// Enabling only ever concerns channels the gateway auto-disabled;
		// manually disabled ones stay an operator decision.
		kept := matched[:0]
		for i := range matched {
			if matched[i].Status == channel.StatusAutoDisabled {
				kept = append(kept, matched[i])
			}
		}
		matched = kept
	}
	if len(matched) == 0 {
		if enable {
			fmt.Fprintln(o.Out, "No auto-disabled channels matched the filters.")
		} else {
			fmt.Fprintln(o.Out, "No channels matched the filters.")
		}
		return nil
	}

	// Test dispatch rides the apply executor for its concurrency cap and
	// pacing; the entries carry no payload because nothing is written.
	testPlan := &plan.Plan{Instance: conn.Name}
	models := make(map[int64]string, len(matched))
	for i := range matched {
		c := &matched[i]
		testPlan.Entries = append(testPlan.Entries, plan.Entry{ChannelID: c.ID, ChannelName: c.Name})
		models[c.ID] = c.PreferredTestModel()
	}

	fmt.Fprintf(o.Out, "Testing %d channels on %s...\n", len(matched), conn.Name)
	report := apply.Run(ctx, testPlan, func(ctx context.Context, id int64, _ map[string]any) error {
		result, err := cl.TestChannel(ctx, id, models[id])
		if err != nil {
			return err
		}
		if !result.Success {
			return &client.APIError{StatusCode: result.StatusCode, Message: result.Message}
		}
		return nil
	}, o.applyOptions(""))
	cli.RenderReport(o.Out, report)

	if !enable {
		return nil
	}

	var passing []int64
	for _, outcome := range report.Outcomes {
		if outcome.Err == nil {
			passing = append(passing, outcome.ChannelID)
		}
	}
	if len(passing) == 0 {
		fmt.Fprintln(o.Out, "No channels passed the test; nothing to enable.")
		return nil
	}

	if report.Failed() > 0 && !report.OnlyQuotaFailures() {
		prompt := fmt.Sprintf("Some tests failed for reasons other than quota. Enable the %d passing channels anyway?", len(passing))
		if !cli.Confirm(o.In, o.Out, prompt, o.AssumeYes) {
			fmt.Fprintln(o.Out, "Aborted.")
			return nil
		}
	}

	enablePlan, err := plan.Build(matched, &filter.Spec{IDs: passing},
		plan.UpdateSpec{"status": {Enabled: true, Mode: plan.ModeOverwrite, Value: channel.StatusEnabled}},
		cl.Codec())
	if err != nil {
		if handled, herr := o.reportNoMatch(err); handled {
			return herr
		}
		return err
	}
	enablePlan.Instance = conn.Name

	cli.RenderPlan(o.Out, enablePlan)
	if enablePlan.IsEmpty() {
		return nil
	}
	if o.DryRun {
		fmt.Fprintln(o.Out, "Dry run: no snapshot taken, no changes applied.")
		return nil
	}

	return o.applyPlan(ctx, cl, conn, "test_enable", enablePlan)
}
