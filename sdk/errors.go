package sdk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Common SDK errors that clients can check for specific error handling.
var (
	// ErrInvalidConfig indicates the client configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrMissingAuth indicates no bearer token was configured.
	ErrMissingAuth = errors.New("missing authentication credentials")

	// ErrInvalidArgument indicates a required identifier (name, tag, version) was empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("registry request failed")

	// ErrInvalidResponse indicates a success response whose body could not be decoded.
	ErrInvalidResponse = errors.New("invalid registry response")

	// ErrValidation indicates the registry rejected the template during validation.
	ErrValidation = errors.New("template validation failed")

	// ErrPublish indicates the registry refused to publish the template.
	ErrPublish = errors.New("template publish failed")

	// ErrTag indicates the registry refused to create or move a tag.
	ErrTag = errors.New("template tag failed")

	// ErrRemove indicates the registry refused to remove a template, version or tag.
	ErrRemove = errors.New("template removal failed")

	// ErrLookup indicates a version lookup returned an unexpected status.
	ErrLookup = errors.New("template lookup failed")
)

// StatusError is returned when the registry answers with a status outside the
// operation's success set. Kind is one of ErrValidation, ErrPublish, ErrTag,
// ErrRemove or ErrLookup and can be matched with errors.Is.
type StatusError struct {
	// Kind is the sentinel error for the failed operation.
	Kind error

	// Prefix describes the failed operation (e.g., "Error tagging template").
	Prefix string

	// StatusCode is the HTTP status code returned by the registry.
	StatusCode int

	// ErrorName is the server-provided "error" field (HTTP reason phrase).
	ErrorName string

	// Message is the server-provided "message" field.
	Message string

	// RequestID is the X-Request-ID sent with the failed request.
	RequestID string
}

// Error formats the error as "{prefix}. {status} ({error}): {message}".
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s. %d (%s): %s", e.Prefix, e.StatusCode, e.ErrorName, e.Message)
}

// Unwrap returns the operation's sentinel error.
func (e *StatusError) Unwrap() error {
	return e.Kind
}

const validationHeader = "Template is not valid for the following reasons:"

// ValidationError carries the field-level errors reported by the template validator.
// Each error is kept exactly as the server sent it.
type ValidationError struct {
	Errors []json.RawMessage
}

// Error lists every reported error as indented JSON, one per line.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(validationHeader)

	for _, raw := range e.Errors {
		b.WriteString("\n")
		b.WriteString(indentJSON(raw))
		b.WriteString(",")
	}

	return b.String()
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Messages returns the "message" field of every reported error.
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Errors))
	for _, raw := range e.Errors {
		var fe struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &fe); err != nil || fe.Message == "" {
			messages = append(messages, string(raw))
			continue
		}
		messages = append(messages, fe.Message)
	}
	return messages
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return string(raw)
	}
	return buf.String()
}
