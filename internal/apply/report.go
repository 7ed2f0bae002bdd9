package apply

import "fmt"

// Outcome is one plan entry's result.
type Outcome struct {
	ChannelID   int64
	ChannelName string
	Err         error
	Reason      Reason
}

// Failed reports whether the entry's mutation failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Report aggregates the outcomes of one executor run, ordered as the plan.
type Report struct {
	OperationID string
	Outcomes    []Outcome
}

// Succeeded counts entries that applied cleanly.
func (r *Report) Succeeded() int {
	return len(r.Outcomes) - r.Failed()
}

// Failed counts entries whose mutation failed.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes in plan order.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			out = append(out, o)
		}
	}
	return out
}

// OnlyQuotaFailures reports whether every failure is quota-classified and at
// least one entry succeeded. The test-and-enable workflow uses this to skip
// the confirmation gate: quota exhaustion says nothing about channel health.
func (r *Report) OnlyQuotaFailures() bool {
	if r.Failed() == 0 || r.Succeeded() == 0 {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Failed() && o.Reason != ReasonQuota {
			return false
		}
	}
	return true
}

// Err returns a PartialError when any entry failed, nil otherwise.
func (r *Report) Err() error {
	if failed := r.Failed(); failed > 0 {
		return &PartialError{Failed: failed, Total: len(r.Outcomes)}
	}
	return nil
}

// PartialError summarizes a run in which some entries failed. The caller
// decides on follow-up; successes stand, they are never rolled back
// implicitly.
type PartialError struct {
	Failed int
	Total  int
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%d of %d updates failed", e.Failed, e.Total)
}
