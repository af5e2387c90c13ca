// Package models provides shared data structures for the sdtemplate project.
//
// This package contains the types exchanged between the registry client SDK and
// the command-line layer. Keeping them in a separate package lets the SDK, the CLI
// and the test fake registry agree on one set of JSON shapes.
//
// The models in this package represent:
//   - Kinds: the two template families (job templates and pipeline templates)
//   - Template references: the strings that identify a template in URLs
//   - Tag references: a mutable named pointer to a template version
//   - Operation results: the normalized success payload of every operation
//   - Error responses: the server's error envelope and field-level validation errors
//
// All structs include JSON tags for API serialization.
package models
