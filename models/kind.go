package models

import (
	"fmt"
	"strings"
)

// Kind identifies which template family an operation targets.
type Kind int

const (
	// KindJob addresses standalone job templates (templates/...).
	KindJob Kind = iota

	// KindPipeline addresses pipeline templates (pipeline/template/{namespace}/...).
	KindPipeline
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindJob:
		return "job"
	case KindPipeline:
		return "pipeline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a user-supplied kind name into a Kind.
// The empty string selects KindJob.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "job", "template":
		return KindJob, nil
	case "pipeline", "pipelinetemplate", "pipeline-template":
		return KindPipeline, nil
	default:
		return KindJob, fmt.Errorf("unknown template kind %q (want job or pipeline)", s)
	}
}
