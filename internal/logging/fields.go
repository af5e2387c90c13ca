// Package logging provides structured logging utilities for sdtemplate.
package logging

// Standard field names for consistent logging across the application.
const (
	// FieldRequestID is the X-Request-ID sent with a registry request.
	FieldRequestID = "request_id"

	// FieldDuration is the duration of an operation in milliseconds.
	FieldDuration = "duration_ms"

	// FieldStatusCode is the HTTP status code of a response.
	FieldStatusCode = "status_code"

	// FieldMethod is the HTTP method of a request.
	FieldMethod = "method"

	// FieldPath is the URL path of an HTTP request.
	FieldPath = "path"

	// FieldOperation identifies the registry operation being performed.
	FieldOperation = "operation"

	// FieldKind is the template kind (job or pipeline).
	FieldKind = "kind"

	// FieldTemplate is the template name.
	FieldTemplate = "template"

	// FieldNamespace is the template namespace.
	FieldNamespace = "namespace"

	// FieldTag is the template tag.
	FieldTag = "tag"

	// FieldVersion is the template version.
	FieldVersion = "version"

	// FieldFile is a path on the local filesystem.
	FieldFile = "file"
)
