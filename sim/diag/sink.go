// Package diag provides the diagnostic sink: one append-only text stream
// mirrored to an interactive destination (usually stdout) and a durable log
// file that lives for the whole process.
//
// The durable file is written first, so every byte that reaches the console
// has already reached the file. The file is opened once at process start and
// closed exactly once, with start and end markers bracketing everything else.
package diag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// StampLayout formats the start and end markers, e.g. "Oct 19 14:03:07".
	StampLayout = "Jan 2 15:04:05"
	// Separator joins the parts of one WriteLine call.
	Separator = ", "

	// StartMarker and EndMarker open and close every durable log.
	StartMarker = "Start"
	EndMarker   = "End"

	// DefaultProgram is the name printed in the log header.
	DefaultProgram = "simboot"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("diagnostic sink is closed")

// Sink mirrors every write to a durable and an interactive destination.
// It is safe for concurrent use, though the bootstrap writes from a single
// goroutine.
type Sink struct {
	mu      sync.Mutex
	durable io.WriteCloser
	console io.Writer
	out     io.Writer
	closed  bool

	path    string
	program string
	version string
	now     func() time.Time
	level   logrus.Level
	logger  *logrus.Logger

	writeErr  error // first failed write, reported by Close
	closeOnce sync.Once
	closeErr  error
}

// Option configures a Sink.
type Option func(*Sink)

// WithClock replaces time.Now for the start and end markers.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) { s.now = now }
}

// WithVersion sets the program name and version printed in the header.
func WithVersion(program, version string) Option {
	return func(s *Sink) {
		if program != "" {
			s.program = program
		}
		s.version = version
	}
}

// WithLevel sets the level of the structured logger returned by Logger.
func WithLevel(level logrus.Level) Option {
	return func(s *Sink) { s.level = level }
}

// Open creates (or truncates) the durable log at path and writes the header.
func Open(path string, console io.Writer, opts ...Option) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	s := New(f, console, opts...)
	s.path = path
	return s, nil
}

// New wraps an already open durable destination and writes the header.
// The sink takes ownership of durable and closes it in Close.
func New(durable io.WriteCloser, console io.Writer, opts ...Option) *Sink {
	if console == nil {
		console = io.Discard
	}
	s := &Sink{
		durable: durable,
		console: console,
		out:     io.MultiWriter(durable, console),
		program: DefaultProgram,
		now:     time.Now,
		level:   logrus.InfoLevel,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = logrus.New()
	s.logger.SetOutput(s)
	s.logger.SetLevel(s.level)
	s.logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: StampLayout,
	})

	header := s.program
	if s.version != "" {
		header += " " + s.version
	}
	s.WriteLine(header)
	s.WriteLine(StartMarker + " " + s.stamp())
	return s
}

// Path returns the durable log path, or "" when the sink was built with New.
func (s *Sink) Path() string { return s.path }

// Write implements io.Writer. The bytes go to the durable destination first
// and then to the console.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	n, err := s.out.Write(p)
	if err != nil && s.writeErr == nil {
		s.writeErr = err
	}
	return n, err
}

// WriteLine writes parts on one line joined by ", ". A nil part prints as
// "null".
func (s *Sink) WriteLine(parts ...any) {
	strs := make([]string, len(parts))
	for i, p := range parts {
		if p == nil {
			strs[i] = "null"
			continue
		}
		strs[i] = fmt.Sprint(p)
	}
	_, _ = io.WriteString(s, strings.Join(strs, Separator)+"\n")
}

// WriteBlank writes an empty line.
func (s *Sink) WriteBlank() {
	_, _ = io.WriteString(s, "\n")
}

// WriteCause writes err followed by one "caused by:" line per wrapped error.
func (s *Sink) WriteCause(err error) {
	if err == nil {
		return
	}
	s.WriteLine(err.Error())
	for _, cause := range causes(err) {
		s.WriteLine("caused by: " + cause.Error())
	}
}

// WriteStack writes a captured goroutine stack.
func (s *Sink) WriteStack(stack []byte) {
	if len(stack) == 0 {
		return
	}
	text := strings.TrimRight(string(stack), "\n")
	_, _ = io.WriteString(s, text+"\n")
}

// Logger returns a logrus logger writing into the sink, for structured
// entries such as WithError.
func (s *Sink) Logger() *logrus.Logger { return s.logger }

// Close writes the end marker and closes the durable destination. It
// returns the close error or, failing that, the first write error the sink
// swallowed. Only the first call has any effect; later calls return the
// first call's result.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() {
		s.WriteBlank()
		s.WriteLine(EndMarker, s.stamp())
		s.WriteBlank()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true
		s.closeErr = s.durable.Close()
		if s.closeErr == nil && s.writeErr != nil {
			s.closeErr = fmt.Errorf("writing log: %w", s.writeErr)
		}
	})
	return s.closeErr
}

func (s *Sink) stamp() string {
	return s.now().Format(StampLayout)
}

// causes flattens the wrap chain below err, depth first.
func causes(err error) []error {
	var out []error
	var walk func(error)
	walk = func(e error) {
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, c := range u.Unwrap() {
				if c != nil {
					out = append(out, c)
					walk(c)
				}
			}
		case interface{ Unwrap() error }:
			if c := u.Unwrap(); c != nil {
				out = append(out, c)
				walk(c)
			}
		}
	}
	walk(err)
	return out
}
