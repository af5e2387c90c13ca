package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/yaroslav/sdtemplate/internal/logging"
	"github.com/yaroslav/sdtemplate/models"
	"github.com/yaroslav/sdtemplate/pkg/template"
)

// Client is the SDK client for a template registry.
// It holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	// BaseURL is the registry API root, always ending with a slash.
	BaseURL string

	// Token is the bearer token sent with every request.
	Token string

	// HTTPClient is the HTTP client used for requests.
	HTTPClient *http.Client

	// UserAgent is sent as the User-Agent header.
	UserAgent string

	logger *zap.Logger
}

// NewClient creates a new SDK client with the given configuration.
func NewClient(config ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		BaseURL:    config.BaseURL,
		Token:      config.Token,
		HTTPClient: config.HTTPClient,
		UserAgent:  config.UserAgent,
		logger:     config.Logger,
	}, nil
}

// Host returns the registry host, for display purposes.
func (c *Client) Host() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return c.BaseURL
	}
	return u.Host
}

// ============================================================================
// Template Document Methods
// ============================================================================

// Validate asks the registry to validate a template document.
//
// The document is serialized to a JSON string and posted to the validator
// endpoint for kind. The registry answers 200 with a list of field errors;
// an empty list means the template is valid.
//
// Returns:
//   - *models.ValidationResult: {valid: true} when the registry reports no errors
//   - error: *ValidationError when field errors are reported, *StatusError
//     (ErrValidation) for an unexpected status, ErrTransport for network failures
func (c *Client) Validate(ctx context.Context, kind models.Kind, cfg *template.Config) (*models.ValidationResult, error) {
	routes, err := routesFor(kind)
	if err != nil {
		return nil, err
	}

	payload, err := templatePayload(cfg)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, routes.validatePath, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.statusError(ErrValidation, "Error validating template")
	}

	var result models.ValidationResponse
	if err := resp.decodeJSON(&result); err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, &ValidationError{Errors: result.Errors}
	}

	return &models.ValidationResult{Valid: true}, nil
}

// Publish publishes a template document to the registry.
//
// Success is HTTP 201 only. The reported name is "{namespace}/{name}" when the
// registry placed the template in a namespace other than "default".
//
// Returns:
//   - *PublishResult: name, namespace and version the registry stored
//   - error: *StatusError (ErrPublish) for any other status, ErrTransport for network failures
func (c *Client) Publish(ctx context.Context, kind models.Kind, cfg *template.Config) (*PublishResult, error) {
	routes, err := routesFor(kind)
	if err != nil {
		return nil, err
	}

	payload, err := templatePayload(cfg)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, routes.publishPath, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, resp.statusError(ErrPublish, "Error publishing template")
	}

	var published models.PublishedTemplate
	if err := resp.decodeJSON(&published); err != nil {
		return nil, err
	}

	c.logger.Info("template published",
		zap.String(logging.FieldKind, kind.String()),
		zap.String(logging.FieldTemplate, published.Name),
		zap.String(logging.FieldNamespace, published.Namespace),
		zap.String(logging.FieldVersion, published.Version))

	return &PublishResult{
		OperationResult: models.OperationResult{
			Name:      models.DisplayName(published.Namespace, published.Name),
			Namespace: published.Namespace,
			Version:   published.Version,
		},
		Template: models.TemplateRef{
			Kind:      kind,
			Namespace: published.Namespace,
			Name:      published.Name,
		},
	}, nil
}

// ============================================================================
// Version Lookup Methods
// ============================================================================

// GetLatestVersion returns the most recent version of a template.
// The registry lists versions newest first; the first element wins.
//
// Returns:
//   - string: The latest version
//   - error: *StatusError (ErrLookup) if the status is not 200, ErrLookup if the
//     template has no versions, ErrTransport for network failures
func (c *Client) GetLatestVersion(ctx context.Context, ref models.TemplateRef) (string, error) {
	routes, err := routesFor(ref.Kind)
	if err != nil {
		return "", err
	}
	if err := requireName(ref); err != nil {
		return "", err
	}

	resp, err := c.doRequest(ctx, http.MethodGet, routes.versions(ref), nil)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.statusError(ErrLookup, "Error getting latest template version")
	}

	var versions []models.TemplateVersion
	if err := resp.decodeJSON(&versions); err != nil {
		return "", err
	}

	if len(versions) == 0 || versions[0].Version == "" {
		return "", fmt.Errorf("%w: template %s has no published versions", ErrLookup, ref.FullName())
	}

	return versions[0].Version, nil
}

// GetVersionFromTag returns the version a tag currently points to.
//
// Returns:
//   - string: The tagged version
//   - error: *StatusError (ErrLookup) if the status is not 200, ErrTransport for network failures
func (c *Client) GetVersionFromTag(ctx context.Context, ref models.TagReference) (string, error) {
	routes, err := routesFor(ref.Kind)
	if err != nil {
		return "", err
	}
	if err := requireTag(ref); err != nil {
		return "", err
	}

	resp, err := c.doRequest(ctx, http.MethodGet, routes.resolveTag(ref.TemplateRef, ref.Tag), nil)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.statusError(ErrLookup, "Error getting version from tag")
	}

	var tagged models.TemplateVersion
	if err := resp.decodeJSON(&tagged); err != nil {
		return "", err
	}

	return tagged.Version, nil
}

// ============================================================================
// Tag Methods
// ============================================================================

// Tag points a tag at a template version.
//
// When ref.Version is empty the latest version is looked up first. The lookup
// and the tag are two separate requests; a publish landing in between can
// leave the tag on a version that is no longer the latest. Callers that need
// a specific version must pass it explicitly.
//
// The registry answers 201 when the tag is created and 200 when it is moved;
// both are success and produce the same result.
//
// Returns:
//   - *models.OperationResult: {name, namespace?, tag, version}
//   - error: *StatusError (ErrTag) for any other status, lookup errors from
//     GetLatestVersion, ErrTransport for network failures
func (c *Client) Tag(ctx context.Context, ref models.TagReference) (*models.OperationResult, error) {
	routes, err := routesFor(ref.Kind)
	if err != nil {
		return nil, err
	}
	if err := requireTag(ref); err != nil {
		return nil, err
	}

	version := strings.TrimSpace(ref.Version)
	if version == "" {
		version, err = c.GetLatestVersion(ctx, ref.TemplateRef)
		if err != nil {
			return nil, err
		}

		c.logger.Info("resolved latest template version",
			zap.String(logging.FieldTemplate, ref.FullName()),
			zap.String(logging.FieldVersion, version))
	}

	resp, err := c.doRequest(ctx, http.MethodPut, routes.tag(ref.TemplateRef, ref.Tag), models.TagPayload{Version: version})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, resp.statusError(ErrTag, "Error tagging template")
	}

	return &models.OperationResult{
		Name:      ref.Name,
		Namespace: ref.Namespace,
		Tag:       ref.Tag,
		Version:   version,
	}, nil
}

// RemoveTag deletes a tag from a template. Success is HTTP 204 only.
//
// Returns:
//   - *models.OperationResult: {name, namespace?, tag}
//   - error: *StatusError (ErrRemove) for any other status, ErrTransport for network failures
func (c *Client) RemoveTag(ctx context.Context, ref models.TagReference) (*models.OperationResult, error) {
	routes, err := routesFor(ref.Kind)
	if err != nil {
		return nil, err
	}
	if err := requireTag(ref); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodDelete, routes.tag(ref.TemplateRef, ref.Tag), nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusNoContent {
		return nil, resp.statusError(ErrRemove, "Error removing template tag")
	}

	return &models.OperationResult{
		Name:      ref.Name,
		Namespace: ref.Namespace,
		Tag:       ref.Tag,
	}, nil
}

// ============================================================================
// Removal Methods
// ============================================================================

// RemoveTemplate deletes every version of a template. Success is HTTP 204 only.
//
// Returns:
//   - *models.OperationResult: {name, namespace?}
//   - error: *StatusError (ErrRemove) for any other status, ErrTransport for network failures
func (c *Client) RemoveTemplate(ctx context.Context, ref models.TemplateRef) (*models.OperationResult, error) {
	routes, err := routesFor(ref.Kind)
	if err != nil {
		return nil, err
	}
	if err := requireName(ref); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodDelete, routes.template(ref), nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusNoContent {
		return nil, resp.statusError(ErrRemove, fmt.Sprintf("Error removing template %s", ref.FullName()))
	}

	return &models.OperationResult{
		Name:      ref.Name,
		Namespace: ref.Namespace,
	}, nil
}

// RemoveVersion deletes a single version of a template. Success is HTTP 204 only.
//
// Returns:
//   - *models.OperationResult: {name, namespace?, version}
//   - error: *StatusError (ErrRemove) for any other status, ErrTransport for network failures
func (c *Client) RemoveVersion(ctx context.Context, ref models.TemplateRef, version string) (*models.OperationResult, error) {
	routes, err := routesFor(ref.Kind)
	if err != nil {
		return nil, err
	}
	if err := requireName(ref); err != nil {
		return nil, err
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, fmt.Errorf("%w: version is required", ErrInvalidArgument)
	}

	resp, err := c.doRequest(ctx, http.MethodDelete, routes.version(ref, version), nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusNoContent {
		prefix := fmt.Sprintf("Error removing version %s of template %s", version, ref.FullName())
		return nil, resp.statusError(ErrRemove, prefix)
	}

	return &models.OperationResult{
		Name:      ref.Name,
		Namespace: ref.Namespace,
		Version:   version,
	}, nil
}

// templatePayload serializes a template document into a request body.
func templatePayload(cfg *template.Config) (models.TemplatePayload, error) {
	if cfg == nil || cfg.Document == nil {
		return models.TemplatePayload{}, fmt.Errorf("%w: template document is required", ErrInvalidArgument)
	}

	yaml, err := cfg.Serialize()
	if err != nil {
		return models.TemplatePayload{}, err
	}

	return models.TemplatePayload{YAML: yaml}, nil
}

func requireName(ref models.TemplateRef) error {
	if strings.TrimSpace(ref.Name) == "" {
		return fmt.Errorf("%w: template name is required", ErrInvalidArgument)
	}
	return nil
}

func requireTag(ref models.TagReference) error {
	if err := requireName(ref.TemplateRef); err != nil {
		return err
	}
	if strings.TrimSpace(ref.Tag) == "" {
		return fmt.Errorf("%w: tag is required", ErrInvalidArgument)
	}
	return nil
}
