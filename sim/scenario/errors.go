package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRoot is returned for a document without a root element.
	ErrNoRoot = errors.New("no root element")
	// ErrMultipleRoots is returned for a document with more than one root element.
	ErrMultipleRoots = errors.New("more than one root element")
)

// ParseError reports a scenario that could not be read or is not
// well-formed.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parsing scenario: %v", e.Err)
	}
	return fmt.Sprintf("parsing scenario %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a well-formed scenario that breaks the root contract:
// either the root element has the wrong name, or the identifier attribute is
// missing or empty.
type SchemaError struct {
	Found    string // actual root name, set when the root name is wrong
	Expected string
	Missing  string // required attribute that is absent or empty
	Empty    bool   // the attribute is present but empty
}

func (e *SchemaError) Error() string {
	switch {
	case e.Found != "":
		return fmt.Sprintf("found: %s, expected: %s", e.Found, e.Expected)
	case e.Empty:
		return fmt.Sprintf("empty attribute: %s", e.Missing)
	default:
		return fmt.Sprintf("missing attribute: %s", e.Missing)
	}
}
