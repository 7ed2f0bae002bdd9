package apply

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"chanctl/internal/plan"
	"chanctl/pkg/logging"
)

// DefaultConcurrency caps in-flight mutations when Options leaves it unset.
const DefaultConcurrency = 5

// Mutator dispatches one mutation to the remote instance. The payload is the
// plan entry's transport-shaped changed-field set.
type Mutator func(ctx context.Context, id int64, payload map[string]any) error

// Options tune one executor run.
type Options struct {
	// Concurrency is the maximum number of in-flight mutations.
	Concurrency int
	// MinInterval spaces successive dispatches to respect downstream rate
	// limits. Zero disables pacing.
	MinInterval time.Duration
	// OperationID stamps the report. A fresh id is generated when empty.
	OperationID string
}

func (o Options) concurrency() int64 {
	if o.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return int64(o.Concurrency)
}

// Run dispatches every plan entry through mutate. Entries run concurrently up
// to the configured cap; each outcome is recorded independently and a failed
// entry never cancels its siblings. The returned report keeps plan order.
func Run(ctx context.Context, p *plan.Plan, mutate Mutator, opts Options) *Report {
	report := &Report{
		OperationID: opts.OperationID,
		Outcomes:    make([]Outcome, len(p.Entries)),
	}
	if report.OperationID == "" {
		report.OperationID = uuid.NewString()
	}
	if p.IsEmpty() {
		return report
	}

	var limiter *rate.Limiter
	if opts.MinInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.MinInterval), 1)
	}
	sem := semaphore.NewWeighted(opts.concurrency())

	logging.Info("Apply", "Dispatching %d updates (operation %s, concurrency %d)",
		len(p.Entries), report.OperationID, opts.concurrency())

	var wg sync.WaitGroup
	for i := range p.Entries {
		entry := &p.Entries[i]
		outcome := &report.Outcomes[i]
		outcome.ChannelID = entry.ChannelID
		outcome.ChannelName = entry.ChannelName

		// Acquire the slot and the pacing token in plan order so that
		// dispatch spacing holds even though completions are unordered.
		if err := sem.Acquire(ctx, 1); err != nil {
			outcome.Err = err
			outcome.Reason = Classify(err)
			continue
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				sem.Release(1)
				outcome.Err = err
				outcome.Reason = Classify(err)
				continue
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			if err := mutate(ctx, entry.ChannelID, entry.Payload); err != nil {
				outcome.Err = err
				outcome.Reason = Classify(err)
				logging.Error("Apply", err, "Update failed for channel %d (%s)",
					entry.ChannelID, entry.ChannelName)
				return
			}
			logging.Debug("Apply", "Channel %d (%s) updated", entry.ChannelID, entry.ChannelName)
		}()
	}
	wg.Wait()

	logging.Info("Apply", "Operation %s finished: %d succeeded, %d failed",
		report.OperationID, report.Succeeded(), report.Failed())
	return report
}
