package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceErrorCodes(t *testing.T) {
	err := ConversationNotFound(42)
	assert.True(t, IsCode(err, ErrCodeConversationNotFound))
	assert.False(t, IsCode(err, ErrCodePermissionDenied))
	assert.Contains(t, err.Error(), "42")

	cause := errors.New("disk full")
	wrapped := Internal("failed to persist turn", cause)
	assert.Equal(t, ErrCodeInternal, GetCodeFromError(wrapped, ErrCodeInvalidArgument))
	assert.ErrorIs(t, wrapped, cause)
}

func TestGetCodeFromErrorDefault(t *testing.T) {
	plain := errors.New("not a service error")
	assert.Equal(t, ErrCodeInternal, GetCodeFromError(plain, ErrCodeInternal))
	assert.False(t, IsCode(plain, ErrCodeInternal))
}
