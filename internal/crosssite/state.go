package crosssite

import "fmt"

// State tracks where a job stands in its execution flow.
type State string

const (
	StateLoaded               State = "loaded"
	StateSourceResolved       State = "source_resolved"
	StateTargetResolved       State = "target_resolved"
	StatePlanBuilt            State = "plan_built"
	StateReported             State = "reported"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateApplied              State = "applied"
	StateAborted              State = "aborted"
)

// transitions lists the legal forward edges. Compare actions terminate at
// Reported; copy proceeds through the confirmation gate.
var transitions = map[State][]State{
	StateLoaded:               {StateSourceResolved, StateAborted},
	StateSourceResolved:       {StateTargetResolved, StateAborted},
	StateTargetResolved:       {StatePlanBuilt, StateReported, StateAborted},
	StatePlanBuilt:            {StateAwaitingConfirmation, StateAborted},
	StateAwaitingConfirmation: {StateApplied, StateAborted},
}

// Execution is one run of a job. The orchestrator advances it as each stage
// completes, so an unexpected flow order fails loudly instead of silently
// skipping a gate.
type Execution struct {
	Job   *Job
	State State
}

// NewExecution starts a validated job in the Loaded state.
func NewExecution(job *Job) (*Execution, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &Execution{Job: job, State: StateLoaded}, nil
}

// Advance moves to the next state, rejecting transitions the flow does not
// allow.
func (e *Execution) Advance(to State) error {
	for _, legal := range transitions[e.State] {
		if to == legal {
			e.State = to
			return nil
		}
	}
	return fmt.Errorf("cross-site job: illegal transition %s -> %s", e.State, to)
}

// Done reports whether the job reached a terminal state.
func (e *Execution) Done() bool {
	return e.State == StateApplied || e.State == StateReported || e.State == StateAborted
}
