package sim

import (
	"errors"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simboot/simboot/sim/diag"
	"github.com/simboot/simboot/sim/scenario"
)

// Supervisor constructs and runs exactly one simulation per RunOnce call.
// Failures during construction or the run are caught, written to the sink
// and returned as a failed RunOutcome; they never escape as panics.
// There is no retry.
type Supervisor struct {
	registry *Registry
	sink     *diag.Sink
	notifier diag.Notifier
	now      func() time.Time
}

// NewSupervisor creates a supervisor. A nil notifier discards notifications.
func NewSupervisor(reg *Registry, sink *diag.Sink, notifier diag.Notifier) *Supervisor {
	if notifier == nil {
		notifier = diag.NopNotifier{}
	}
	return &Supervisor{registry: reg, sink: sink, notifier: notifier, now: time.Now}
}

// RunOnce resolves the scenario's className, constructs the implementation
// and calls its Run method once. A descriptor that fails Check is reported
// as a construction failure.
func (s *Supervisor) RunOnce(desc *scenario.Descriptor) RunOutcome {
	out := RunOutcome{
		ClassName: desc.ClassName(),
		Started:   s.now(),
	}
	if desc != nil {
		out.Source = desc.Source
	}
	log := s.sink.Logger().WithFields(logrus.Fields{
		"className": out.ClassName,
		"scenario":  out.Source.Name(),
	})

	if err := desc.Check(); err != nil {
		return s.fail(out, "Something went wrong while creating the simulation.", err)
	}

	h, err := s.registry.Construct(desc)
	if err != nil {
		return s.fail(out, "Something went wrong while creating the simulation.", err)
	}
	log.Debug("simulation constructed")

	if err := s.run(h); err != nil {
		return s.fail(out, "Something went wrong while running the simulation.", err)
	}

	out.Status = StatusCompleted
	out.Finished = s.now()
	log.WithField("elapsed", out.Elapsed().Round(time.Millisecond)).Info("simulation completed")
	return out
}

func (s *Supervisor) run(h *Handle) (err error) {
	id := h.Descriptor.ClassName()
	defer func() {
		if p := recover(); p != nil {
			err = &RunError{Identifier: id, Cause: &PanicError{Value: p, Stack: debug.Stack()}}
		}
	}()
	if rerr := h.Simulation.Run(); rerr != nil {
		return &RunError{Identifier: id, Cause: rerr}
	}
	return nil
}

func (s *Supervisor) fail(out RunOutcome, headline string, err error) RunOutcome {
	s.sink.WriteLine("***")
	s.sink.WriteLine(headline)
	s.sink.WriteLine("simulation className: " + out.ClassName)
	s.sink.WriteLine("scenario: " + out.Source.String())
	s.sink.WriteCause(err)
	var pe *PanicError
	if errors.As(err, &pe) {
		s.sink.WriteStack(pe.Stack)
	}
	s.sink.WriteBlank()

	out.Status = StatusFailed
	out.Err = err
	out.Message = headline + " (" + err.Error() + ")"
	out.Finished = s.now()
	s.notifier.Notify("Error", out.Message)
	return out
}
