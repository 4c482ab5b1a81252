package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simboot/simboot/internal/testutil"
	"github.com/simboot/simboot/sim/scenario"
)

type memRecorder struct {
	outcomes []RunOutcome
	err      error
}

func (r *memRecorder) Record(_ context.Context, out RunOutcome) error {
	r.outcomes = append(r.outcomes, out)
	return r.err
}

type failingChooser struct{ err error }

func (c failingChooser) Choose(context.Context) (scenario.Source, bool, error) {
	return scenario.Source{}, false, c.err
}

func TestLauncher_NoSelectionIsSkipped(t *testing.T) {
	sink, file, _ := testSink(t)
	rec := &memRecorder{}
	l := NewLauncher(NewRegistry(), sink, nil)
	l.Recorder = rec

	out := l.LaunchFrom(context.Background(), scenario.StaticChooser{})
	require.NoError(t, sink.Close())

	assert.Equal(t, StatusSkipped, out.Status)
	assert.Contains(t, file.String(), "no scenario selected\n")
	assert.Empty(t, rec.outcomes, "skipped runs are not recorded")
	assert.Equal(t, 1, testutil.CountLines(file.String(), "End, Apr 4 09:05:07"))
}

func TestLauncher_ChooserErrorIsTreatedAsNoSelection(t *testing.T) {
	sink, file, _ := testSink(t)
	l := NewLauncher(NewRegistry(), sink, nil)

	out := l.LaunchFrom(context.Background(), failingChooser{err: errBoom})
	require.NoError(t, sink.Close())

	assert.Equal(t, StatusSkipped, out.Status)
	assert.Contains(t, file.String(), "Scenario selection failed.\nboom\n")
}

func TestLauncher_RunsSelectedScenario(t *testing.T) {
	// GIVEN a valid scenario naming a registered implementation
	path := testutil.WriteFile(t, "demo.xml", `<simulation className="DemoSim"><market price="10"/></simulation>`)
	sink, file, console := testSink(t)
	s := &fakeSim{}
	rec := &memRecorder{}
	l := NewLauncher(registryWith(map[string]*fakeSim{"DemoSim": s}, map[string]int{}), sink, nil)
	l.Recorder = rec

	// WHEN it is launched
	out := l.LaunchFrom(context.Background(), scenario.StaticChooser{Path: path})
	require.NoError(t, sink.Close())

	// THEN it completes, is recorded, and the log mirrors the console
	assert.Equal(t, StatusCompleted, out.Status)
	assert.Equal(t, 1, s.runs)
	assert.Equal(t, path, out.Source.Path)
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, StatusCompleted, rec.outcomes[0].Status)
	assert.Contains(t, file.String(), "run "+path+"\n")
	assert.Equal(t, file.String(), console.String())
}

func TestLauncher_BadRootIsRejectedBeforeResolution(t *testing.T) {
	path := testutil.WriteFile(t, "bad.xml", `<config className="DemoSim"/>`)
	sink, file, _ := testSink(t)
	calls := map[string]int{}
	notifier := &recordingNotifier{}
	l := NewLauncher(registryWith(map[string]*fakeSim{"DemoSim": {}}, calls), sink, notifier)

	out := l.Launch(context.Background(), scenario.SourceFromPath(path), true)
	require.NoError(t, sink.Close())

	assert.Equal(t, StatusFailed, out.Status)
	var se *scenario.SchemaError
	require.True(t, errors.As(out.Err, &se))
	assert.Equal(t, "config", se.Found)
	assert.Zero(t, calls["DemoSim"])
	assert.Contains(t, file.String(), "Scenario File: bad.xml\nBad root\nExpected: simulation\nFound: config\n")
	assert.Len(t, notifier.messages, 1)
}

func TestLauncher_MissingClassNameIsRejected(t *testing.T) {
	path := testutil.WriteFile(t, "anon.xml", `<simulation/>`)
	sink, file, _ := testSink(t)
	l := NewLauncher(NewRegistry(), sink, nil)

	out := l.Launch(context.Background(), scenario.SourceFromPath(path), true)
	require.NoError(t, sink.Close())

	assert.Equal(t, StatusFailed, out.Status)
	var se *scenario.SchemaError
	require.True(t, errors.As(out.Err, &se))
	assert.Equal(t, scenario.ClassNameAttr, se.Missing)
	assert.False(t, se.Empty)
	assert.Contains(t, file.String(), "Scenario File: anon.xml\nmissing attribute: className\n")
}

func TestLauncher_MalformedScenarioIsParseError(t *testing.T) {
	path := testutil.WriteFile(t, "broken.xml", `<simulation className="DemoSim">`)
	sink, file, _ := testSink(t)
	l := NewLauncher(NewRegistry(), sink, nil)

	out := l.Launch(context.Background(), scenario.SourceFromPath(path), true)
	require.NoError(t, sink.Close())

	assert.Equal(t, StatusFailed, out.Status)
	var pe *scenario.ParseError
	assert.True(t, errors.As(out.Err, &pe))
	assert.Contains(t, file.String(), "Something went wrong while parsing the scenario file.\n")
}

func TestLauncher_RecorderErrorIsNotFatal(t *testing.T) {
	path := testutil.WriteFile(t, "demo.xml", `<simulation className="DemoSim"/>`)
	sink, file, _ := testSink(t)
	rec := &memRecorder{err: errBoom}
	l := NewLauncher(registryWith(map[string]*fakeSim{"DemoSim": {}}, map[string]int{}), sink, nil)
	l.Recorder = rec

	out := l.Launch(context.Background(), scenario.SourceFromPath(path), true)
	require.NoError(t, sink.Close())

	assert.Equal(t, StatusCompleted, out.Status)
	assert.Contains(t, file.String(), "could not record run history")
}
