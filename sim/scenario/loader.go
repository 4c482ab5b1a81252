// Package scenario reads scenario files into parameter trees and checks the
// root contract every scenario must satisfy: a root element named
// "simulation" carrying a non-empty "className" attribute.
//
// Loading is pure. Nothing here logs; callers report failures through their
// own diagnostic sink.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simboot/simboot/sim/param"
)

const (
	// RootName is the only accepted name for the root element.
	RootName = "simulation"
	// ClassNameAttr names the root attribute that selects the implementation.
	ClassNameAttr = "className"
)

// Descriptor is a validated scenario: its parameter tree and where it came from.
type Descriptor struct {
	Root   *param.Node
	Source Source
}

// ClassName returns the identifier of the implementation to construct, or
// "" for a nil descriptor or one without a root.
func (d *Descriptor) ClassName() string {
	if d == nil || d.Root == nil {
		return ""
	}
	return d.Root.Attr(ClassNameAttr)
}

// Check applies Validate to the descriptor's root. Descriptors returned by
// Load always pass; hand-built ones may not.
func (d *Descriptor) Check() error {
	if d == nil {
		return &ParseError{Err: ErrNoRoot}
	}
	return Validate(d.Root)
}

// LoadFile opens path and loads it with the format implied by its extension.
func LoadFile(path string) (*Descriptor, error) {
	return LoadSource(SourceFromPath(path))
}

// LoadSource opens src.Path and loads it with src.Format.
func LoadSource(src Source) (*Descriptor, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, &ParseError{Source: src.Path, Err: err}
	}
	defer f.Close()
	return Load(f, src)
}

// Load parses r using src.Format and validates the result.
// Malformed input yields *ParseError; a wrong root name or a missing
// identifier yields *SchemaError.
func Load(r io.Reader, src Source) (*Descriptor, error) {
	root, err := parse(r, src)
	if err != nil {
		return nil, err
	}
	if err := Validate(root); err != nil {
		return nil, err
	}
	return &Descriptor{Root: root, Source: src}, nil
}

// Parse reads a document of the given format into a parameter tree without
// checking the root contract.
func Parse(r io.Reader, format Format) (*param.Node, error) {
	return parse(r, Source{Format: format})
}

func parse(r io.Reader, src Source) (*param.Node, error) {
	var (
		root *param.Node
		err  error
	)
	switch src.Format {
	case FormatXML, "":
		root, err = decodeXML(r)
	case FormatYAML, FormatHCL:
		var data []byte
		data, err = io.ReadAll(r)
		if err != nil {
			break
		}
		if src.Format == FormatYAML {
			root, err = decodeYAML(data)
		} else {
			root, err = decodeHCL(data, src.Name())
		}
	default:
		err = fmt.Errorf("unknown scenario format %q", src.Format)
	}
	if err != nil {
		return nil, &ParseError{Source: src.Path, Err: err}
	}
	return root, nil
}

// Validate checks the root contract.
func Validate(root *param.Node) error {
	if root == nil {
		return &ParseError{Err: ErrNoRoot}
	}
	if root.Name() != RootName {
		return &SchemaError{Found: root.Name(), Expected: RootName}
	}
	if !root.HasAttr(ClassNameAttr) {
		return &SchemaError{Missing: ClassNameAttr}
	}
	if strings.TrimSpace(root.Attr(ClassNameAttr)) == "" {
		return &SchemaError{Missing: ClassNameAttr, Empty: true}
	}
	return nil
}

// LoadString is a convenience wrapper around Load for in-memory scenarios.
func LoadString(text string, format Format) (*Descriptor, error) {
	return Load(bytes.NewReader([]byte(text)), Source{Format: format})
}

// IsRejected reports whether err means the scenario itself was unusable
// (as opposed to the simulation failing later).
func IsRejected(err error) bool {
	var pe *ParseError
	var se *SchemaError
	return errors.As(err, &pe) || errors.As(err, &se)
}
