package undo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"chanctl/internal/channel"
	"chanctl/pkg/logging"
)

// Snapshot is one operation's pre-mutation capture: the full field set of
// every channel the plan touches, in plan order.
type Snapshot struct {
	Instance    string            `json:"instance"`
	APIType     string            `json:"api_type"`
	Kind        string            `json:"kind"`
	OperationID string            `json:"operation_id"`
	TakenAt     time.Time         `json:"taken_at"`
	Channels    []channel.Channel `json:"channels"`
}

// Meta identifies the operation a snapshot belongs to.
type Meta struct {
	Instance string
	APIType  string
	// Kind is the operation kind: "update", "cross_copy", "test_enable",
	// "restore".
	Kind string
	// OperationID ties the snapshot to the apply report. Generated when
	// empty.
	OperationID string
}

// FetchFunc returns the full current state of one channel.
type FetchFunc func(ctx context.Context, id int64) (*channel.Channel, error)

// CaptureOptions bound the capture fetches the same way the executor bounds
// mutations.
type CaptureOptions struct {
	Concurrency int
	MinInterval time.Duration
}

func (o CaptureOptions) concurrency() int {
	if o.Concurrency <= 0 {
		return 5
	}
	return o.Concurrency
}

// Capture fetches the pre-image of every id and assembles a snapshot. Any
// single fetch failing fails the capture: a partial pre-image cannot back an
// undo.
func Capture(ctx context.Context, meta Meta, ids []int64, fetch FetchFunc, opts CaptureOptions) (*Snapshot, error) {
	snap := &Snapshot{
		Instance:    meta.Instance,
		APIType:     meta.APIType,
		Kind:        meta.Kind,
		OperationID: meta.OperationID,
		TakenAt:     time.Now().UTC(),
		Channels:    make([]channel.Channel, len(ids)),
	}
	if snap.OperationID == "" {
		snap.OperationID = uuid.NewString()
	}
	if len(ids) == 0 {
		return snap, nil
	}

	var limiter *rate.Limiter
	if opts.MinInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.MinInterval), 1)
	}

	logging.Info("Undo", "Capturing pre-images of %d channels on %s", len(ids), meta.Instance)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())
	for i, id := range ids {
		i, id := i, id
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		g.Go(func() error {
			c, err := fetch(gctx, id)
			if err != nil {
				return fmt.Errorf("capturing pre-image of channel %d: %w", id, err)
			}
			snap.Channels[i] = *c.Clone()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
