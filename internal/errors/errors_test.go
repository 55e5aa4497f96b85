package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	app_errors "genai-chat/internal/errors"
)

func TestInvalidParameterError(t *testing.T) {
	err := fmt.Errorf("build request: %w", &app_errors.InvalidParameterError{Field: "sampling.top_k", Rule: "lte"})

	assert.True(t, errors.Is(err, app_errors.ErrInvalidParameter))
	assert.False(t, errors.Is(err, app_errors.ErrRemote))

	var ipe *app_errors.InvalidParameterError
	if assert.True(t, errors.As(err, &ipe)) {
		assert.Equal(t, "sampling.top_k", ipe.Field)
	}
	assert.Contains(t, err.Error(), "sampling.top_k failed on the 'lte' rule")
}

func TestRemoteError(t *testing.T) {
	t.Run("With code", func(t *testing.T) {
		err := &app_errors.RemoteError{StatusCode: 404, Code: "NotAuthorizedOrNotFound", Message: "Authorization failed"}
		assert.True(t, errors.Is(err, app_errors.ErrRemote))
		assert.Equal(t, "remote error: status 404 (NotAuthorizedOrNotFound): Authorization failed", err.Error())
	})

	t.Run("Without code or message", func(t *testing.T) {
		err := &app_errors.RemoteError{StatusCode: 500}
		assert.Equal(t, "remote error: status 500: no message", err.Error())
	})
}
