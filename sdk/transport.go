package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaroslav/sdtemplate/internal/logging"
	"github.com/yaroslav/sdtemplate/models"
)

// maxResponseSize limits how much of a response body is read (4 MiB).
const maxResponseSize = 4 << 20

// response is a fully read registry response.
type response struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

// doRequest performs a single HTTP request against the registry.
// path is relative to the base URL and must already be escaped.
// No retries are attempted; a network failure is returned as ErrTransport.
func (c *Client) doRequest(ctx context.Context, method, path string, reqBody interface{}) (*response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	fullURL := c.BaseURL + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if err := c.addAuthHeaders(req); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With(
		zap.String(logging.FieldRequestID, requestID),
		zap.String(logging.FieldMethod, method),
		zap.String(logging.FieldPath, req.URL.EscapedPath()),
	)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Debug("registry request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, fullURL, err)
	}
	defer drainAndCloseBody(resp)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	logger.Debug("registry request completed",
		zap.Int(logging.FieldStatusCode, resp.StatusCode),
		zap.Int64(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &response{
		StatusCode: resp.StatusCode,
		Body:       data,
		RequestID:  requestID,
	}, nil
}

// decodeJSON parses a success response body into dest.
func (r *response) decodeJSON(dest interface{}) error {
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return fmt.Errorf("%w: status %d: %v", ErrInvalidResponse, r.StatusCode, err)
	}
	return nil
}

// statusError builds a StatusError from an unexpected response.
// Missing "error"/"message" fields fall back to the reason phrase and the raw body.
func (r *response) statusError(kind error, prefix string) *StatusError {
	var apiErr models.ErrorResponse
	_ = json.Unmarshal(r.Body, &apiErr)

	if apiErr.Error == "" {
		apiErr.Error = http.StatusText(r.StatusCode)
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(r.Body))
	}

	return &StatusError{
		Kind:       kind,
		Prefix:     prefix,
		StatusCode: r.StatusCode,
		ErrorName:  apiErr.Error,
		Message:    apiErr.Message,
		RequestID:  r.RequestID,
	}
}

// drainAndCloseBody reads and closes the response body to ensure connection reuse.
func drainAndCloseBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
