package scenario

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Chooser selects the scenario to run. ok is false when the user made no
// selection, which is not an error.
type Chooser interface {
	Choose(ctx context.Context) (src Source, ok bool, err error)
}

// StaticChooser returns a fixed path, typically taken from the command line.
type StaticChooser struct {
	Path string
}

// Choose implements Chooser.
func (c StaticChooser) Choose(ctx context.Context) (Source, bool, error) {
	if err := ctx.Err(); err != nil {
		return Source{}, false, err
	}
	if c.Path == "" {
		return Source{}, false, nil
	}
	return SourceFromPath(c.Path), true, nil
}

// defaultPromptAttempts bounds how often PromptChooser asks again after an
// unusable path.
const defaultPromptAttempts = 3

// PromptChooser asks for a scenario path on a line-oriented reader. Reading
// happens on its own goroutine and the chosen Source is handed back over a
// channel, so a caller can abandon the prompt through its context.
type PromptChooser struct {
	in          io.Reader
	out         io.Writer
	maxAttempts int
	stat        func(string) (os.FileInfo, error)
}

// NewPromptChooser creates a chooser reading paths from in and writing
// prompts to out.
func NewPromptChooser(in io.Reader, out io.Writer) *PromptChooser {
	if out == nil {
		out = io.Discard
	}
	return &PromptChooser{
		in:          in,
		out:         out,
		maxAttempts: defaultPromptAttempts,
		stat:        os.Stat,
	}
}

type choice struct {
	src Source
	ok  bool
	err error
}

// Choose implements Chooser. An empty line or end of input means no
// selection. If ctx ends first the reading goroutine is left blocked on the
// reader until it returns.
func (c *PromptChooser) Choose(ctx context.Context) (Source, bool, error) {
	ch := make(chan choice, 1)
	go func() { ch <- c.prompt() }()

	select {
	case <-ctx.Done():
		return Source{}, false, ctx.Err()
	case r := <-ch:
		return r.src, r.ok, r.err
	}
}

func (c *PromptChooser) prompt() choice {
	sc := bufio.NewScanner(c.in)
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		fmt.Fprint(c.out, "Open scenario (empty to cancel): ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return choice{err: fmt.Errorf("reading scenario path: %w", err)}
			}
			return choice{}
		}
		path := strings.TrimSpace(sc.Text())
		if path == "" {
			return choice{}
		}
		info, err := c.stat(path)
		if err != nil {
			fmt.Fprintf(c.out, "%s: %v\n", path, err)
			continue
		}
		if info.IsDir() {
			fmt.Fprintf(c.out, "%s: is a directory\n", path)
			continue
		}
		return choice{src: SourceFromPath(path), ok: true}
	}
	return choice{err: fmt.Errorf("no usable scenario path after %d attempts", c.maxAttempts)}
}
