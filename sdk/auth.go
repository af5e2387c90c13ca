package sdk

import "net/http"

// Header names set on every registry request.
const (
	// HeaderAuthorization carries the bearer token.
	HeaderAuthorization = "Authorization"

	// HeaderRequestID carries a per-request UUID for correlating client and server logs.
	HeaderRequestID = "X-Request-ID"
)

// addAuthHeaders adds the bearer token to the request.
// Returns ErrMissingAuth if no token is configured.
func (c *Client) addAuthHeaders(req *http.Request) error {
	if c.Token == "" {
		return ErrMissingAuth
	}
	req.Header.Set(HeaderAuthorization, "Bearer "+c.Token)
	return nil
}
