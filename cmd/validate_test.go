package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simboot/simboot/internal/testutil"
	"github.com/simboot/simboot/sim"
	"github.com/simboot/simboot/sim/history"
	"github.com/simboot/simboot/sim/scenario"
)

func TestValidateScenarios(t *testing.T) {
	good := testutil.WriteFile(t, "good.xml", `<simulation className="DemoSim"><market/></simulation>`)
	goodYAML := testutil.WriteFile(t, "good.yaml", "simulation:\n  className: DemoSim\n")
	badRoot := testutil.WriteFile(t, "bad.xml", `<config/>`)
	unknown := testutil.WriteFile(t, "unknown.xml", `<simulation className="NoSuchSim"/>`)

	tests := []struct {
		name    string
		paths   []string
		wantErr bool
		want    []string
	}{
		{"all valid", []string{good, goodYAML}, false, []string{"ok   " + good + " (className DemoSim, 2 nodes)"}},
		{"bad root", []string{good, badRoot}, true, []string{"FAIL " + badRoot + ": found: config, expected: simulation"}},
		{"unregistered", []string{unknown}, true, []string{"FAIL " + unknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := validateScenarios(&buf, sim.DefaultRegistry, tt.paths)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errInvalidScenarios))
			} else {
				assert.NoError(t, err)
			}
			for _, line := range tt.want {
				assert.Contains(t, buf.String(), line)
			}
		})
	}
}

func TestListSimulations(t *testing.T) {
	var buf bytes.Buffer
	listSimulations(&buf, sim.DefaultRegistry)
	assert.Contains(t, buf.String(), "DemoSim\n")
}

func TestPrintHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()
	store, err := history.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, sim.RunOutcome{
		Status:    sim.StatusFailed,
		ClassName: "NoSuchSim",
		Source:    scenario.SourceFromPath("missing.xml"),
	}))
	require.NoError(t, store.Close())

	var buf bytes.Buffer
	require.NoError(t, printHistory(ctx, &buf, path, 10))
	assert.Contains(t, buf.String(), "STATUS")
	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "NoSuchSim")
	assert.Contains(t, buf.String(), "missing.xml")
}

func TestPrintHistory_NoDatabase(t *testing.T) {
	err := printHistory(context.Background(), &bytes.Buffer{}, "", 10)
	assert.ErrorIs(t, err, errNoHistoryDB)
}
