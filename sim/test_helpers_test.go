package sim

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simboot/simboot/sim/diag"
	"github.com/simboot/simboot/sim/param"
	"github.com/simboot/simboot/sim/scenario"
)

var testTime = time.Date(2018, time.April, 4, 9, 5, 7, 0, time.UTC)

// memFile is an in-memory durable destination for a diag.Sink.
type memFile struct {
	bytes.Buffer
	closed int
}

func (f *memFile) Close() error {
	f.closed++
	return nil
}

// testSink returns a sink over in-memory buffers: the durable file and the
// console.
func testSink(t *testing.T) (*diag.Sink, *memFile, *bytes.Buffer) {
	t.Helper()
	file := &memFile{}
	console := &bytes.Buffer{}
	s := diag.New(file, console, diag.WithClock(func() time.Time { return testTime }))
	return s, file, console
}

// fakeSim counts Run calls and returns runErr or panics with runPanic.
type fakeSim struct {
	runs     int
	runErr   error
	runPanic any
}

func (f *fakeSim) Run() error {
	f.runs++
	if f.runPanic != nil {
		panic(f.runPanic)
	}
	return f.runErr
}

// recordingNotifier keeps every notification.
type recordingNotifier struct {
	titles   []string
	messages []string
}

func (n *recordingNotifier) Notify(title, message string) {
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
}

func descriptorFor(t *testing.T, className string) *scenario.Descriptor {
	t.Helper()
	root := param.MustNode(scenario.RootName, []string{scenario.ClassNameAttr, className},
		param.MustNode("market", []string{"price", "10"}))
	require.NoError(t, scenario.Validate(root))
	return &scenario.Descriptor{Root: root, Source: scenario.SourceFromPath("scenarios/test.xml")}
}

// registryWith registers sims under their identifiers, each returned by a
// factory that counts its calls.
func registryWith(sims map[string]*fakeSim, calls map[string]int) *Registry {
	reg := NewRegistry()
	for id, s := range sims {
		reg.Register(id, func(*param.Node, scenario.Source) (Simulation, error) {
			calls[id]++
			return s, nil
		})
	}
	return reg
}

var errBoom = errors.New("boom")
