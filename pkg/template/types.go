// Package template loads template definitions from disk.
//
// A template definition is a YAML document describing a reusable job or
// pipeline. The client does not validate the document's schema locally; it
// only requires well-formed YAML and forwards the whole document to the
// registry, which is the authority on validity.
package template

import "errors"

// DefaultPath is the template file used when no path is configured.
const DefaultPath = "./sd-template.yaml"

// MaxFileSize is the largest template file the loader accepts (1 MiB).
const MaxFileSize = 1 << 20

// Common loader errors.
var (
	// ErrRead indicates the template file could not be read.
	ErrRead = errors.New("template file unreadable")

	// ErrParse indicates the template file is not well-formed YAML.
	ErrParse = errors.New("template file is not valid YAML")
)

// Config is the in-memory form of a template document.
//
// Name, Namespace and Version are lifted out of the document for convenience;
// Document holds the complete content and is what gets sent to the registry.
type Config struct {
	// Name is the template name (may be "namespace/name" for job templates).
	Name string `yaml:"name"`

	// Namespace is the optional template namespace.
	Namespace string `yaml:"namespace"`

	// Version is the template version declared in the document.
	Version string `yaml:"version"`

	// Document is the full decoded YAML document.
	Document map[string]any `yaml:"-"`

	// Path is the file the config was loaded from.
	Path string `yaml:"-"`
}
