package gapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap("events.list", nil))
}

func TestWrapPlainError(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap("events.insert", cause)
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "events.insert", perr.Op)
	assert.Zero(t, perr.StatusCode)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "events.insert")
}

func TestWrapGoogleAPIError(t *testing.T) {
	cause := fmt.Errorf("call failed: %w", &googleapi.Error{Code: 403, Message: "quota exceeded"})
	err := Wrap("connections.list", cause)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 403, perr.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 403")
}
