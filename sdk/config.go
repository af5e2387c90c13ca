package sdk

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public registry API used when no base URL is configured.
const DefaultBaseURL = "https://api.screwdriver.cd/v4/"

// DefaultTimeout is the HTTP request timeout applied to the default client.
const DefaultTimeout = 30 * time.Second

// ClientConfig contains the configuration for creating a new SDK client.
type ClientConfig struct {
	// BaseURL is the registry API root (e.g., "https://api.screwdriver.cd/v4/").
	// Optional: defaults to DefaultBaseURL. A trailing slash is added if missing.
	BaseURL string

	// Token is the bearer token sent with every request.
	// The client does not refresh it; an empty token fails each operation with ErrMissingAuth.
	Token string

	// HTTPClient is the HTTP client to use for requests.
	// Optional: if nil, a default client with Timeout is created.
	HTTPClient *http.Client

	// Timeout is the HTTP request timeout for the default client.
	// Default: 30 seconds
	Timeout time.Duration

	// UserAgent is sent as the User-Agent header.
	// Default: "sdtemplate"
	UserAgent string

	// Logger receives debug logs for every request.
	// Optional: defaults to a no-op logger.
	Logger *zap.Logger
}

// Validate checks if the client configuration is valid and sets defaults.
func (c *ClientConfig) Validate() error {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("%w: base URL must start with http:// or https://", ErrInvalidConfig)
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("%w: base URL is invalid: %v", ErrInvalidConfig, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: base URL has no host", ErrInvalidConfig)
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return fmt.Errorf("%w: base URL must not carry a query or fragment", ErrInvalidConfig)
	}

	// Relative API paths are appended to the base, so it must end with a slash
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	c.BaseURL = base

	c.Token = strings.TrimSpace(c.Token)

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.UserAgent == "" {
		c.UserAgent = "sdtemplate"
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return nil
}

// HasAuth returns true if a bearer token is available.
func (c *ClientConfig) HasAuth() bool {
	return strings.TrimSpace(c.Token) != ""
}
