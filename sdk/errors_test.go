package sdk

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{
		Kind:       ErrRemove,
		Prefix:     "Error removing template template/test",
		StatusCode: 403,
		ErrorName:  "Forbidden",
		Message:    "Fake forbidden message",
	}

	assert.Equal(t, "Error removing template template/test. 403 (Forbidden): Fake forbidden message", err.Error())
	assert.True(t, errors.Is(err, ErrRemove))
	assert.False(t, errors.Is(err, ErrTag))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []json.RawMessage{
		json.RawMessage(`{"message":"\"steps\" is required","path":"config.steps"}`),
		json.RawMessage(`{"message":"\"image\" is required","path":"config.image"}`),
	}}

	want := "Template is not valid for the following reasons:" +
		"\n{\n    \"message\": \"\\\"steps\\\" is required\",\n    \"path\": \"config.steps\"\n}," +
		"\n{\n    \"message\": \"\\\"image\\\" is required\",\n    \"path\": \"config.image\"\n},"

	assert.Equal(t, want, err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, []string{`"steps" is required`, `"image" is required`}, err.Messages())
}

func TestResponse_StatusErrorFallbacks(t *testing.T) {
	resp := &response{StatusCode: 502, Body: []byte("upstream down\n"), RequestID: "req-1"}

	err := resp.statusError(ErrLookup, "Error getting version from tag")

	assert.Equal(t, "Error getting version from tag. 502 (Bad Gateway): upstream down", err.Error())
	assert.Equal(t, "req-1", err.RequestID)
}
