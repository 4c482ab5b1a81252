package scenario

import (
	"path/filepath"
	"strings"
)

// Format identifies the syntax of a scenario file.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// validFormats maps accepted format strings. Empty defaults to XML.
var validFormats = map[Format]bool{
	FormatXML:  true,
	FormatYAML: true,
	FormatHCL:  true,
	"":         true,
}

// IsValidFormat reports whether name is a recognized scenario format.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// FormatFromPath picks a format from the file extension. Anything that is
// not YAML or HCL is read as XML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	default:
		return FormatXML
	}
}

// Source is the provenance of a scenario: the file it was read from and the
// syntax used to read it. It is passed by value from whoever selected the
// file to the loader and on to the constructed simulation.
type Source struct {
	Path   string
	Format Format
}

// SourceFromPath builds a Source, deriving the format from the extension.
func SourceFromPath(path string) Source {
	return Source{Path: path, Format: FormatFromPath(path)}
}

// Name returns the base name of the scenario file.
func (s Source) Name() string {
	if s.Path == "" {
		return ""
	}
	return filepath.Base(s.Path)
}

// Dir returns the directory containing the scenario file.
func (s Source) Dir() string {
	if s.Path == "" {
		return "."
	}
	return filepath.Dir(s.Path)
}

// Resolve interprets rel relative to the scenario's directory. Absolute
// paths are returned unchanged.
func (s Source) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.Dir(), rel)
}

func (s Source) String() string {
	if s.Path == "" {
		return "<unnamed>"
	}
	return s.Path
}
