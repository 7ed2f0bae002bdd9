package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chanctl/internal/apply"
	"chanctl/internal/channel"
	"chanctl/internal/client"
	"chanctl/internal/config"
	"chanctl/internal/crosssite"
	"chanctl/internal/filter"
	"chanctl/internal/plan"
	"chanctl/internal/undo"
)

// passthroughCodec keeps test payloads readable: field name in, value out,
// lists comma-joined the way both real dialects send them.
type passthroughCodec struct{}

func (passthroughCodec) EncodeField(f channel.Field, value any) (string, any, error) {
	if f.Kind == channel.KindList {
		list, err := channel.ToList(value)
		if err != nil {
			return "", nil, err
		}
		return f.Name, channel.JoinList(list), nil
	}
	return f.Name, value, nil
}

type fakeClient struct {
	apiType  string
	channels []channel.Channel

	mu      sync.Mutex
	updates map[int64]map[string]any
	tested  []int64

	getErr    error
	updateErr map[int64]error
	testFail  map[int64]*client.TestResult
}

func newFakeClient(apiType string, channels ...channel.Channel) *fakeClient {
	return &fakeClient{
		apiType:  apiType,
		channels: channels,
		updates:  map[int64]map[string]any{},
	}
}

func (f *fakeClient) ListChannels(ctx context.Context) ([]channel.Channel, error) {
	out := make([]channel.Channel, 0, len(f.channels))
	for i := range f.channels {
		out = append(out, *f.channels[i].Clone())
	}
	return out, nil
}

func (f *fakeClient) GetChannel(ctx context.Context, id int64) (*channel.Channel, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.channels {
		if f.channels[i].ID == id {
			return f.channels[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("channel %d not found", id)
}

func (f *fakeClient) UpdateChannel(ctx context.Context, id int64, payload map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateErr[id]; err != nil {
		return err
	}
	f.updates[id] = payload
	return nil
}

func (f *fakeClient) TestChannel(ctx context.Context, id int64, model string) (*client.TestResult, error) {
	f.mu.Lock()
	f.tested = append(f.tested, id)
	f.mu.Unlock()
	if result, ok := f.testFail[id]; ok {
		return result, nil
	}
	return &client.TestResult{Success: true, StatusCode: http.StatusOK}, nil
}

func (f *fakeClient) Codec() plan.Codec { return passthroughCodec{} }
func (f *fakeClient) APIType() string   { return f.apiType }

// testOrchestrator wires an orchestrator around fake clients keyed by
// connection name, with stored profiles in a temp config dir.
func testOrchestrator(t *testing.T, clients map[string]*fakeClient) *Orchestrator {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "connections"), 0o755))
	for name, fc := range clients {
		profile := fmt.Sprintf("site_url: https://%s.example.com\napi_token: token-%s\napi_type: %s\n",
			name, name, fc.apiType)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "connections", name+".yaml"), []byte(profile), 0o600))
	}

	app := config.DefaultAppConfig(dir)
	o := New(dir, app)
	o.Out = &bytes.Buffer{}
	o.In = strings.NewReader("")
	o.Quiet = true
	o.AssumeYes = true
	o.NewClient = func(conn config.Connection, api config.APISettings) (client.Client, error) {
		fc, ok := clients[conn.Name]
		if !ok {
			return nil, fmt.Errorf("no fake client for %q", conn.Name)
		}
		return fc, nil
	}
	return o
}

func output(o *Orchestrator) string {
	return o.Out.(*bytes.Buffer).String()
}

func someChannel(id int64, name string) channel.Channel {
	return channel.Channel{
		ID:     id,
		Name:   name,
		Type:   1,
		Status: channel.StatusEnabled,
		Groups: []string{"default"},
		Models: []string{"gpt-4o", "gpt-4o-mini"},
	}
}

func TestRunUpdateAppliesAndSnapshots(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"), someChannel(2, "azure-b"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	err := o.RunUpdate(context.Background(), "prod", &config.UpdateConfig{
		Filters: filter.Spec{NameFilters: []string{"openai"}},
		Updates: plan.UpdateSpec{
			"group": {Enabled: true, Mode: plan.ModeAppend, Value: "vip"},
		},
	})
	require.NoError(t, err)

	require.Contains(t, fc.updates, int64(1))
	assert.Equal(t, "default,vip", fc.updates[1]["group"])
	assert.NotContains(t, fc.updates, int64(2), "unmatched channel must stay untouched")

	// The pre-image must be on disk.
	snap, err := o.Ledger.Latest("prod", "update")
	require.NoError(t, err)
	require.Len(t, snap.Channels, 1)
	assert.Equal(t, []string{"default"}, snap.Channels[0].Groups)
	assert.Contains(t, output(o), "Undo snapshot saved")
}

func TestRunUpdateDryRunTouchesNothing(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})
	o.DryRun = true

	err := o.RunUpdate(context.Background(), "prod", &config.UpdateConfig{
		Filters: filter.Spec{NameFilters: []string{"openai"}},
		Updates: plan.UpdateSpec{
			"group": {Enabled: true, Mode: plan.ModeOverwrite, Value: "vip"},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, fc.updates)
	_, err = o.Ledger.Latest("prod", "")
	assert.ErrorIs(t, err, undo.ErrNoSnapshot)
	assert.Contains(t, output(o), "Dry run")
}

func TestRunUpdateDeclinedConfirmation(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})
	o.AssumeYes = false
	o.In = strings.NewReader("n\n")

	err := o.RunUpdate(context.Background(), "prod", &config.UpdateConfig{
		Filters: filter.Spec{NameFilters: []string{"openai"}},
		Updates: plan.UpdateSpec{
			"group": {Enabled: true, Mode: plan.ModeOverwrite, Value: "vip"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, fc.updates)
	assert.Contains(t, output(o), "Aborted")
}

func TestRunUpdateNoMatchIsNotAnError(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	err := o.RunUpdate(context.Background(), "prod", &config.UpdateConfig{
		Filters: filter.Spec{NameFilters: []string{"no-such-channel"}},
		Updates: plan.UpdateSpec{
			"group": {Enabled: true, Mode: plan.ModeOverwrite, Value: "vip"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, fc.updates)
	assert.Contains(t, output(o), "No channels matched")
}

func TestRunUpdateSnapshotFailureAbortsDispatch(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"))
	fc.getErr = fmt.Errorf("boom")
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	err := o.RunUpdate(context.Background(), "prod", &config.UpdateConfig{
		Filters: filter.Spec{NameFilters: []string{"openai"}},
		Updates: plan.UpdateSpec{
			"group": {Enabled: true, Mode: plan.ModeOverwrite, Value: "vip"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborting before dispatch")
	assert.Empty(t, fc.updates, "no mutation may go out without a persisted snapshot")
}

func TestRunUpdatePartialFailure(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"), someChannel(2, "openai-b"))
	fc.updateErr = map[int64]error{2: &client.APIError{StatusCode: 500, Message: "internal"}}
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	err := o.RunUpdate(context.Background(), "prod", &config.UpdateConfig{
		Filters: filter.Spec{NameFilters: []string{"openai"}},
		Updates: plan.UpdateSpec{
			"group": {Enabled: true, Mode: plan.ModeOverwrite, Value: "vip"},
		},
	})
	var partial *apply.PartialError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.Failed)
	assert.Equal(t, 2, partial.Total)
	assert.Contains(t, fc.updates, int64(1), "the healthy channel still gets its update")
}

func TestListChannelsFiltered(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"), someChannel(2, "azure-b"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	err := o.ListChannels(context.Background(), "prod", &filter.Spec{NameFilters: []string{"azure"}})
	require.NoError(t, err)
	out := output(o)
	assert.Contains(t, out, "azure-b")
	assert.NotContains(t, out, "openai-a")
}

func TestFindByKey(t *testing.T) {
	a := someChannel(1, "openai-a")
	a.Key = "sk-live-123"
	b := someChannel(2, "azure-b")
	b.Key = "sk-live-456"
	fc := newFakeClient("newapi", a, b)
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	require.NoError(t, o.FindByKey(context.Background(), "prod", "sk-live-456"))
	out := output(o)
	assert.Contains(t, out, "azure-b")
	assert.NotContains(t, out, "openai-a")
}

func TestRunCrossSiteCopy(t *testing.T) {
	src := someChannel(10, "openai-main")
	src.Models = []string{"gpt-4o", "o3-mini"}
	source := newFakeClient("newapi", src)
	target := newFakeClient("voapi", someChannel(1, "openai-mirror"), someChannel(2, "azure-other"))
	o := testOrchestrator(t, map[string]*fakeClient{"src": source, "dst": target})

	err := o.RunCrossSite(context.Background(), &crosssite.Job{
		Action: crosssite.ActionCopyFields,
		Source: crosssite.Endpoint{Connection: "src", Filter: filter.Spec{NameFilters: []string{"openai-main"}}},
		Target: crosssite.Endpoint{Connection: "dst", Filter: filter.Spec{NameFilters: []string{"openai"}}},
		Fields: []string{"models"},
	})
	require.NoError(t, err)

	require.Contains(t, target.updates, int64(1))
	assert.Equal(t, "gpt-4o,o3-mini", target.updates[1]["models"])
	assert.NotContains(t, target.updates, int64(2))
	assert.Empty(t, source.updates, "the source instance is never written")

	snap, err := o.Ledger.Latest("dst", "cross_copy")
	require.NoError(t, err)
	assert.Len(t, snap.Channels, 1)
}

func TestRunCrossSiteCopyAmbiguousSourceWarns(t *testing.T) {
	source := newFakeClient("newapi", someChannel(10, "openai-a"), someChannel(11, "openai-b"))
	target := newFakeClient("newapi", someChannel(1, "openai-mirror"))
	o := testOrchestrator(t, map[string]*fakeClient{"src": source, "dst": target})

	err := o.RunCrossSite(context.Background(), &crosssite.Job{
		Action: crosssite.ActionCopyFields,
		Source: crosssite.Endpoint{Connection: "src", Filter: filter.Spec{NameFilters: []string{"openai"}}},
		Target: crosssite.Endpoint{Connection: "dst"},
		Fields: []string{"models"},
	})
	require.NoError(t, err)
	assert.Contains(t, output(o), "WARNING")
	assert.Contains(t, output(o), "openai-a")
}

func TestRunCrossSiteCompareFields(t *testing.T) {
	src := someChannel(10, "openai-main")
	src.Models = []string{"gpt-4o"}
	mirror := someChannel(1, "openai-mirror")
	mirror.Models = []string{"gpt-4o", "gpt-3.5-turbo"}
	source := newFakeClient("newapi", src)
	target := newFakeClient("newapi", mirror)
	o := testOrchestrator(t, map[string]*fakeClient{"src": source, "dst": target})

	err := o.RunCrossSite(context.Background(), &crosssite.Job{
		Action: crosssite.ActionCompareFields,
		Source: crosssite.Endpoint{Connection: "src"},
		Target: crosssite.Endpoint{Connection: "dst"},
		Fields: []string{"models"},
	})
	require.NoError(t, err)
	assert.Empty(t, target.updates, "comparing never mutates")
	assert.Contains(t, output(o), "openai-mirror")
}

func TestRunCrossSiteCompareCounts(t *testing.T) {
	source := newFakeClient("newapi", someChannel(1, "a"), someChannel(2, "b"), someChannel(3, "c"))
	target := newFakeClient("newapi", someChannel(1, "a"))
	o := testOrchestrator(t, map[string]*fakeClient{"src": source, "dst": target})

	err := o.RunCrossSite(context.Background(), &crosssite.Job{
		Action: crosssite.ActionCompareCounts,
		Source: crosssite.Endpoint{Connection: "src"},
		Target: crosssite.Endpoint{Connection: "dst"},
	})
	require.NoError(t, err)
	assert.Contains(t, output(o), "-2")
}

func TestRunTestEnable(t *testing.T) {
	disabled := someChannel(1, "openai-a")
	disabled.Status = channel.StatusAutoDisabled
	broken := someChannel(2, "openai-b")
	broken.Status = channel.StatusAutoDisabled
	fc := newFakeClient("newapi", disabled, broken)
	fc.testFail = map[int64]*client.TestResult{
		2: {Success: false, StatusCode: http.StatusTooManyRequests, Message: "quota exceeded"},
	}
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	err := o.RunTestEnable(context.Background(), "prod", &filter.Spec{NameFilters: []string{"openai"}}, true)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{1, 2}, fc.tested)
	require.Contains(t, fc.updates, int64(1), "the passing channel gets enabled")
	assert.Equal(t, channel.StatusEnabled, fc.updates[1]["status"])
	assert.NotContains(t, fc.updates, int64(2), "a failing channel never gets enabled")
}

func TestRunTestEnableMixedFailuresNeedConfirmation(t *testing.T) {
	ok := someChannel(1, "openai-a")
	ok.Status = channel.StatusAutoDisabled
	bad := someChannel(2, "openai-b")
	bad.Status = channel.StatusAutoDisabled
	fc := newFakeClient("newapi", ok, bad)
	fc.testFail = map[int64]*client.TestResult{
		2: {Success: false, StatusCode: http.StatusUnauthorized, Message: "invalid key"},
	}
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})
	o.AssumeYes = false
	o.In = strings.NewReader("n\n")

	err := o.RunTestEnable(context.Background(), "prod", &filter.Spec{NameFilters: []string{"openai"}}, true)
	require.NoError(t, err)
	assert.Empty(t, fc.updates, "a declined confirmation enables nothing")
	assert.Contains(t, output(o), "Aborted")
}

func TestRunTestOnlyReports(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	err := o.RunTestEnable(context.Background(), "prod", nil, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, fc.tested)
	assert.Empty(t, fc.updates)
}

func TestRunRestore(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc})

	// First mutate so a snapshot exists, then restore it.
	err := o.RunUpdate(context.Background(), "prod", &config.UpdateConfig{
		Filters: filter.Spec{NameFilters: []string{"openai"}},
		Updates: plan.UpdateSpec{
			"group": {Enabled: true, Mode: plan.ModeOverwrite, Value: "vip"},
		},
	})
	require.NoError(t, err)

	err = o.RunRestore(context.Background(), "prod", "")
	require.NoError(t, err)

	require.Contains(t, fc.updates, int64(1))
	assert.Equal(t, "default", fc.updates[1]["group"], "the restore writes the pre-update value back")

	// The restore itself snapshots first, so it can be undone too.
	_, err = o.Ledger.Latest("prod", "restore")
	require.NoError(t, err)
}

func TestRunRestoreWrongInstance(t *testing.T) {
	fc := newFakeClient("newapi", someChannel(1, "openai-a"))
	o := testOrchestrator(t, map[string]*fakeClient{"prod": fc, "staging": newFakeClient("newapi")})

	snap := &undo.Snapshot{
		Instance:    "staging",
		APIType:     "newapi",
		Kind:        "update",
		OperationID: "op",
		TakenAt:     time.Now().UTC(),
		Channels:    []channel.Channel{someChannel(1, "openai-a")},
	}
	path, err := o.Ledger.Save(snap)
	require.NoError(t, err)

	err = o.RunRestore(context.Background(), "prod", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not")
	assert.Empty(t, fc.updates)
}

func TestListSnapshotsEmpty(t *testing.T) {
	o := testOrchestrator(t, map[string]*fakeClient{"prod": newFakeClient("newapi")})
	require.NoError(t, o.ListSnapshots("prod"))
	assert.Contains(t, output(o), "No undo snapshots")
}
