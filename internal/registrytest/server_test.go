package registrytest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yaroslav/sdtemplate/models"
)

func do(t *testing.T, srv *Server, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, srv.BaseURL()+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestServer_RequiresToken(t *testing.T) {
	srv := NewServer(t, WithToken("secret"), WithLogger(zaptest.NewLogger(t)))

	status, body := do(t, srv, http.MethodGet, "templates/test", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var apiErr models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "Unauthorized", apiErr.Error)
}

func TestServer_EscapedJobName(t *testing.T) {
	srv := NewServer(t)
	srv.Publish("job", "", "template/test", "1.0.0")

	status, body := do(t, srv, http.MethodGet, "templates/template%2Ftest", "any", nil)
	require.Equal(t, http.StatusOK, status)

	var versions []models.TemplateVersion
	require.NoError(t, json.Unmarshal(body, &versions))
	require.Len(t, versions, 1)
	assert.Equal(t, "1.0.0", versions[0].Version)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/v4/templates/template%2Ftest", requests[0].Path)
}

func TestServer_TagStatus(t *testing.T) {
	srv := NewServer(t)
	srv.Publish("pipeline", "", "app", "1.0.0")

	status, _ := do(t, srv, http.MethodPut, "pipeline/template/default/app/tags/stable", "any",
		models.TagPayload{Version: "1.0.0"})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = do(t, srv, http.MethodPut, "pipeline/template/default/app/tags/stable", "any",
		models.TagPayload{Version: "1.0.0"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodPut, "pipeline/template/default/app/tags/stable", "any",
		models.TagPayload{Version: "9.9.9"})
	assert.Equal(t, http.StatusNotFound, status)

	version, ok := srv.TagVersion("pipeline", "default", "app", "stable")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", version)
}

func TestServer_CannedResponsesAreUsedOnce(t *testing.T) {
	srv := NewServer(t)
	srv.Publish("job", "", "test", "1.0.0")
	srv.Respond(http.MethodDelete, "templates/test", http.StatusForbidden,
		models.ErrorResponse{StatusCode: 403, Error: "Forbidden", Message: "nope"})

	status, _ := do(t, srv, http.MethodDelete, "templates/test", "any", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, srv, http.MethodDelete, "templates/test", "any", nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestServer_ValidateReportsMissingFields(t *testing.T) {
	srv := NewServer(t)

	status, body := do(t, srv, http.MethodPost, "validator/template", "any",
		models.TemplatePayload{YAML: `{"name":"t","version":"1.0.0","description":"d","maintainer":"m","config":{}}`})
	require.Equal(t, http.StatusOK, status)

	var result struct {
		Errors []models.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `"steps" is required`, result.Errors[0].Message)
	assert.Equal(t, "config.steps", result.Errors[0].Path)
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := NewServer(t)

	status, _ := do(t, srv, http.MethodGet, "nope/nothing/here", "any", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
