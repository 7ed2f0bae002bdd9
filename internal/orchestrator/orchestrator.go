package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"chanctl/internal/apply"
	"chanctl/internal/channel"
	"chanctl/internal/cli"
	"chanctl/internal/client"
	"chanctl/internal/config"
	"chanctl/internal/filter"
	"chanctl/internal/plan"
	"chanctl/internal/undo"
	"chanctl/pkg/logging"
)

// Orchestrator sequences operations against one or two gateway instances.
type Orchestrator struct {
	ConfigDir string
	App       config.AppConfig
	Ledger    *undo.Ledger

	In  io.Reader
	Out io.Writer

	// AssumeYes skips confirmation gates (-y).
	AssumeYes bool
	// DryRun stops every flow after showing the plan or report.
	DryRun bool
	// Quiet suppresses progress spinners.
	Quiet bool

	// NewClient builds the dialect client; swappable in tests.
	NewClient func(conn config.Connection, api config.APISettings) (client.Client, error)
}

// New wires an orchestrator from loaded configuration.
func New(configDir string, app config.AppConfig) *Orchestrator {
	return &Orchestrator{
		ConfigDir: configDir,
		App:       app,
		Ledger:    &undo.Ledger{Dir: app.Undo.Dir},
		In:        os.Stdin,
		Out:       os.Stdout,
		NewClient: client.New,
	}
}

// connect resolves a stored connection profile into a dialect client.
func (o *Orchestrator) connect(name string) (client.Client, config.Connection, error) {
	conn, err := config.LoadConnection(o.ConfigDir, name)
	if err != nil {
		return nil, config.Connection{}, err
	}
	cl, err := o.NewClient(conn, o.App.APISettings)
	if err != nil {
		return nil, config.Connection{}, err
	}
	return cl, conn, nil
}

// listChannels fetches the full channel set behind a spinner.
func (o *Orchestrator) listChannels(ctx context.Context, cl client.Client, conn config.Connection) ([]channel.Channel, error) {
	var channels []channel.Channel
	err := cli.WithSpinner(o.Out, o.Quiet, fmt.Sprintf("Fetching channels from %s...", conn.Name), func() error {
		var err error
		channels, err = cl.ListChannels(ctx)
		return err
	})
	return channels, err
}

// specOrNil treats a fully-empty filter spec as "no filtering": callers
// that pass a zero spec asked for the whole listing.
func specOrNil(spec filter.Spec) *filter.Spec {
	if spec.IsZero() {
		return nil
	}
	return &spec
}

func (o *Orchestrator) applyOptions(operationID string) apply.Options {
	return apply.Options{
		Concurrency: o.App.APISettings.MaxConcurrentRequests,
		MinInterval: o.App.APISettings.RequestInterval(),
		OperationID: operationID,
	}
}

// snapshotPlan captures and persists the pre-image of every channel in the
// plan. This must fully succeed before any mutation is dispatched.
func (o *Orchestrator) snapshotPlan(ctx context.Context, cl client.Client, conn config.Connection, kind string, p *plan.Plan) (*undo.Snapshot, error) {
	snap, err := undo.Capture(ctx, undo.Meta{
		Instance: conn.Name,
		APIType:  conn.APIType,
		Kind:     kind,
	}, p.IDs(), cl.GetChannel, undo.CaptureOptions{
		Concurrency: o.App.APISettings.MaxConcurrentRequests,
		MinInterval: o.App.APISettings.RequestInterval(),
	})
	if err != nil {
		return nil, fmt.Errorf("aborting before dispatch: %w", err)
	}
	path, err := o.Ledger.Save(snap)
	if err != nil {
		return nil, fmt.Errorf("aborting before dispatch: %w", err)
	}
	fmt.Fprintf(o.Out, "Undo snapshot saved: %s\n", path)

	if err := o.Ledger.Prune(conn.Name, o.App.Undo.Keep); err != nil {
		logging.Warn("Undo", "Pruning old snapshots failed: %v", err)
	}
	return snap, nil
}

// applyPlan runs the snapshot-then-apply tail shared by every mutating
// flow. The returned error is the report's partial-apply error, if any.
func (o *Orchestrator) applyPlan(ctx context.Context, cl client.Client, conn config.Connection, kind string, p *plan.Plan) error {
	snap, err := o.snapshotPlan(ctx, cl, conn, kind, p)
	if err != nil {
		return err
	}

	report := apply.Run(ctx, p, cl.UpdateChannel, o.applyOptions(snap.OperationID))
	cli.RenderReport(o.Out, report)
	return report.Err()
}

// ListChannels fetches, filters and renders one instance's channels.
func (o *Orchestrator) ListChannels(ctx context.Context, connName string, spec *filter.Spec) error {
	cl, conn, err := o.connect(connName)
	if err != nil {
		return err
	}
	channels, err := o.listChannels(ctx, cl, conn)
	if err != nil {
		return err
	}
	if spec != nil {
		if channels, err = filter.Select(channels, spec); err != nil {
			return err
		}
	}
	cli.RenderChannels(o.Out, channels)
	return nil
}

// FindByKey locates channels by their exact secret.
func (o *Orchestrator) FindByKey(ctx context.Context, connName, key string) error {
	cl, conn, err := o.connect(connName)
	if err != nil {
		return err
	}
	channels, err := o.listChannels(ctx, cl, conn)
	if err != nil {
		return err
	}
	matched, err := filter.Select(channels, &filter.Spec{KeyFilter: key})
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		fmt.Fprintln(o.Out, "No channel carries that key.")
		return nil
	}
	cli.RenderChannels(o.Out, matched)
	return nil
}

// reportNoMatch turns the no-match outcome into a message instead of a
// failure: an empty match set ends the operation, it does not break it.
func (o *Orchestrator) reportNoMatch(err error) (bool, error) {
	if errors.Is(err, plan.ErrNoMatch) {
		fmt.Fprintln(o.Out, "No channels matched the filters.")
		return true, nil
	}
	return false, err
}
