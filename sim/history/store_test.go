package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simboot/simboot/sim"
	"github.com/simboot/simboot/sim/scenario"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	// GIVEN one completed and one failed run
	require.NoError(t, s.Record(ctx, sim.RunOutcome{
		Status:    sim.StatusCompleted,
		ClassName: "DemoSim",
		Source:    scenario.SourceFromPath("scenarios/demo.xml"),
		Started:   start,
		Finished:  start.Add(2 * time.Second),
	}))
	require.NoError(t, s.Record(ctx, sim.RunOutcome{
		Status:    sim.StatusFailed,
		ClassName: "Missing",
		Message:   "no simulation registered",
		Err:       errors.New("ignored"),
		Source:    scenario.SourceFromPath("scenarios/missing.xml"),
		Started:   start.Add(time.Minute),
		Finished:  start.Add(time.Minute),
	}))

	// WHEN reading the history back
	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)

	// THEN the newest entry comes first and fields round-trip
	require.Len(t, entries, 2)
	assert.Equal(t, "Missing", entries[0].ClassName)
	assert.Equal(t, sim.StatusFailed, entries[0].Status)
	assert.Equal(t, "no simulation registered", entries[0].Message)
	assert.Equal(t, "DemoSim", entries[1].ClassName)
	assert.Equal(t, "scenarios/demo.xml", entries[1].Source)
	assert.True(t, entries[1].Started.Equal(start))
	assert.Equal(t, 2*time.Second, entries[1].Finished.Sub(entries[1].Started))
	assert.Greater(t, entries[0].ID, entries[1].ID)
}

func TestStore_RecentLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.Add(ctx, Entry{Status: sim.StatusCompleted, ClassName: "DemoSim"})
		require.NoError(t, err)
	}

	two, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.True(t, all[0].Started.IsZero(), "zero timestamps stay zero")
}

func TestStore_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Add(ctx, Entry{Status: sim.StatusSkipped})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, sim.StatusSkipped, entries[0].Status)
	assert.Equal(t, path, s.Path())
}
