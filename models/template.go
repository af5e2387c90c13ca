package models

// DefaultNamespace is the namespace the registry assigns to templates published without one.
const DefaultNamespace = "default"

// TemplateRef identifies a template in the registry.
type TemplateRef struct {
	// Kind selects the URL family used to address the template.
	Kind Kind `json:"-"`

	// Namespace is the optional grouping prefix. Empty means the default namespace.
	Namespace string `json:"namespace,omitempty"`

	// Name is the template name. For job templates it may already contain
	// the namespace ("namespace/name").
	Name string `json:"name"`
}

// DisplayName returns "{namespace}/{name}" when namespace is set and is not
// "default", otherwise it returns name unchanged.
func DisplayName(namespace, name string) string {
	if namespace != "" && namespace != DefaultNamespace {
		return namespace + "/" + name
	}
	return name
}

// FullName returns the display name of the reference.
func (r TemplateRef) FullName() string {
	return DisplayName(r.Namespace, r.Name)
}

// NamespaceOrDefault returns the namespace, substituting "default" when empty.
func (r TemplateRef) NamespaceOrDefault() string {
	if r.Namespace == "" {
		return DefaultNamespace
	}
	return r.Namespace
}

// TagReference identifies a tag on a template.
// An empty Version means "the latest version", resolved by the client before tagging.
type TagReference struct {
	TemplateRef

	// Tag is the tag name (e.g., "stable", "latest").
	Tag string `json:"tag"`

	// Version is the template version the tag points to (optional).
	Version string `json:"version,omitempty"`
}

// OperationResult is the normalized success payload returned by every operation.
type OperationResult struct {
	// Name is the template name as reported to the user.
	Name string `json:"name"`

	// Namespace is set for pipeline templates and namespaced publishes.
	Namespace string `json:"namespace,omitempty"`

	// Version is the affected template version, when applicable.
	Version string `json:"version,omitempty"`

	// Tag is the affected tag, when applicable.
	Tag string `json:"tag,omitempty"`
}

// ValidationResult is returned when the registry accepts a template as valid.
type ValidationResult struct {
	Valid bool `json:"valid"`
}

// TemplateVersion is one element of a template's version list.
type TemplateVersion struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Namespace  string `json:"namespace,omitempty"`
	Version    string `json:"version"`
	CreateTime string `json:"createTime,omitempty"`
}

// PublishedTemplate is the registry's response body for a successful publish.
type PublishedTemplate struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	Version   string `json:"version"`
}

// TemplatePayload is the request body for validate and publish calls.
// YAML carries the template document serialized as a JSON string.
type TemplatePayload struct {
	YAML string `json:"yaml"`
}

// TagPayload is the request body for creating or moving a tag.
type TagPayload struct {
	Version string `json:"version"`
}
