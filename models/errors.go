package models

import "encoding/json"

// ErrorResponse is the registry's error envelope.
//
// Example:
//
//	{"statusCode": 403, "error": "Forbidden", "message": "Fake forbidden message"}
type ErrorResponse struct {
	// StatusCode mirrors the HTTP status code.
	StatusCode int `json:"statusCode,omitempty"`

	// Error is the HTTP reason phrase (e.g., "Forbidden", "Not Found").
	Error string `json:"error"`

	// Message is the human-readable error message.
	Message string `json:"message"`
}

// FieldError is one field-level problem reported by the template validator.
// The fields follow the validator's output; unknown fields are kept in Context.
type FieldError struct {
	Message string         `json:"message"`
	Path    string         `json:"path,omitempty"`
	Type    string         `json:"type,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// ValidationResponse is the validator endpoint's response body.
// Errors are kept raw so they can be echoed back exactly as the server sent them.
type ValidationResponse struct {
	Errors   []json.RawMessage `json:"errors"`
	Template map[string]any    `json:"template,omitempty"`
}
