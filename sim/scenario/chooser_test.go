package scenario

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticChooser(t *testing.T) {
	src, ok, err := StaticChooser{Path: "scenarios/demo.yaml"}.Choose(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, src.Format)

	_, ok, err = StaticChooser{}.Choose(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "an empty path means no selection")
}

func TestStaticChooser_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := StaticChooser{Path: "x.xml"}.Choose(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestPromptChooser_AcceptsExistingFile(t *testing.T) {
	path := writeScenario(t, "demo.xml", demoXML)
	var out bytes.Buffer

	src, ok, err := NewPromptChooser(strings.NewReader(path+"\n"), &out).Choose(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, path, src.Path)
	assert.Contains(t, out.String(), "Open scenario")
}

func TestPromptChooser_RetriesUnusablePaths(t *testing.T) {
	path := writeScenario(t, "demo.xml", demoXML)
	input := "/does/not/exist.xml\n" + t.TempDir() + "\n" + path + "\n"
	var out bytes.Buffer

	src, ok, err := NewPromptChooser(strings.NewReader(input), &out).Choose(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, path, src.Path)
	assert.Contains(t, out.String(), "is a directory")
	assert.Equal(t, 3, strings.Count(out.String(), "Open scenario"))
}

func TestPromptChooser_GivesUpAfterMaxAttempts(t *testing.T) {
	input := strings.Repeat("/does/not/exist.xml\n", 5)

	_, ok, err := NewPromptChooser(strings.NewReader(input), nil).Choose(context.Background())

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPromptChooser_EmptyLineOrEOFMeansNoSelection(t *testing.T) {
	for _, input := range []string{"\n", ""} {
		_, ok, err := NewPromptChooser(strings.NewReader(input), nil).Choose(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestPromptChooser_HonoursContext(t *testing.T) {
	// GIVEN a reader that never produces a line
	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// WHEN the context expires before any input arrives
	_, ok, err := NewPromptChooser(r, nil).Choose(ctx)

	// THEN Choose returns without a selection
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ok)
}
