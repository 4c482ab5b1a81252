package sim

import (
	"time"

	"github.com/simboot/simboot/sim/param"
	"github.com/simboot/simboot/sim/scenario"
)

// Simulation is the contract every implementation satisfies. Run is called
// exactly once; a returned error or a panic marks the run as failed.
type Simulation interface {
	Run() error
}

// Factory constructs a Simulation from the scenario's parameter tree and the
// file it came from. A factory may open resources for its own run but must
// not touch state owned by the bootstrap.
type Factory func(params *param.Node, src scenario.Source) (Simulation, error)

// Handle pairs a constructed simulation with the scenario that built it. It
// belongs to the supervisor for the duration of one run.
type Handle struct {
	Simulation Simulation
	Descriptor *scenario.Descriptor
}

// Status is the final state of one bootstrap invocation.
type Status string

const (
	// StatusCompleted means the simulation ran to completion.
	StatusCompleted Status = "completed"
	// StatusFailed means loading, resolution, construction or the run failed.
	StatusFailed Status = "failed"
	// StatusSkipped means no scenario was selected.
	StatusSkipped Status = "skipped"
)

// RunOutcome reports how a run ended.
type RunOutcome struct {
	Status    Status
	Message   string // short human-readable summary; empty on success
	Err       error  // nil unless Status is StatusFailed
	ClassName string
	Source    scenario.Source
	Started   time.Time
	Finished  time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (o RunOutcome) Elapsed() time.Duration {
	if o.Started.IsZero() || o.Finished.IsZero() {
		return 0
	}
	return o.Finished.Sub(o.Started)
}
