package sim

import (
	"context"
	"errors"
	"time"

	"github.com/simboot/simboot/sim/diag"
	"github.com/simboot/simboot/sim/scenario"
)

// Recorder persists run outcomes. Recording is best effort.
type Recorder interface {
	Record(ctx context.Context, out RunOutcome) error
}

// Launcher is the bootstrap sequence for one process: take the selected
// scenario, load it, hand it to a Supervisor and report the outcome. Every
// failure is contained here, so the caller can always proceed to close the
// sink.
type Launcher struct {
	Registry *Registry
	Sink     *diag.Sink
	Notifier diag.Notifier
	Recorder Recorder // optional
}

// NewLauncher creates a launcher without a recorder.
func NewLauncher(reg *Registry, sink *diag.Sink, notifier diag.Notifier) *Launcher {
	if notifier == nil {
		notifier = diag.NopNotifier{}
	}
	return &Launcher{Registry: reg, Sink: sink, Notifier: notifier}
}

// LaunchFrom waits for chooser to select a scenario and launches it. A
// selection error is logged and treated as no selection.
func (l *Launcher) LaunchFrom(ctx context.Context, chooser scenario.Chooser) RunOutcome {
	src, ok, err := chooser.Choose(ctx)
	if err != nil {
		l.Sink.WriteLine("***")
		l.Sink.WriteLine("Scenario selection failed.")
		l.Sink.WriteCause(err)
		l.Sink.WriteBlank()
		ok = false
	}
	return l.Launch(ctx, src, ok)
}

// Launch runs the scenario at src. ok false means nothing was selected and
// yields StatusSkipped.
func (l *Launcher) Launch(ctx context.Context, src scenario.Source, ok bool) RunOutcome {
	out := l.launch(src, ok)
	if l.Recorder != nil && out.Status != StatusSkipped {
		if err := l.Recorder.Record(ctx, out); err != nil {
			l.Sink.Logger().WithError(err).Warn("could not record run history")
		}
	}
	return out
}

func (l *Launcher) launch(src scenario.Source, ok bool) RunOutcome {
	if !ok {
		l.Sink.WriteLine("no scenario selected")
		return RunOutcome{Status: StatusSkipped}
	}

	l.Sink.WriteLine("run " + src.Path)
	started := time.Now()
	desc, err := scenario.LoadSource(src)
	if err != nil {
		return l.reject(src, started, err)
	}
	return NewSupervisor(l.Registry, l.Sink, l.Notifier).RunOnce(desc)
}

// reject reports a scenario that could not be loaded.
func (l *Launcher) reject(src scenario.Source, started time.Time, err error) RunOutcome {
	l.Sink.WriteLine("***")
	var se *scenario.SchemaError
	switch {
	case errors.As(err, &se) && se.Found != "":
		l.Sink.WriteLine("Scenario File: " + src.Name())
		l.Sink.WriteLine("Bad root")
		l.Sink.WriteLine("Expected: " + se.Expected)
		l.Sink.WriteLine("Found: " + se.Found)
	case errors.As(err, &se):
		l.Sink.WriteLine("Scenario File: " + src.Name())
		l.Sink.WriteLine(se.Error())
	default:
		l.Sink.WriteLine("Something went wrong while parsing the scenario file.")
		l.Sink.WriteCause(err)
	}
	l.Sink.WriteBlank()
	l.Notifier.Notify("Error", err.Error())

	return RunOutcome{
		Status:   StatusFailed,
		Message:  err.Error(),
		Err:      err,
		Source:   src,
		Started:  started,
		Finished: time.Now(),
	}
}
