package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDomainErrorMatchesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", ErrTaskNotFound)

	assert.True(t, IsDomainError(ErrTaskNotFound, ErrCodeNotFound))
	assert.True(t, IsDomainError(wrapped, ErrCodeNotFound))
	assert.False(t, IsDomainError(wrapped, ErrCodeConflict))
	assert.False(t, IsDomainError(errors.New("plain"), ErrCodeNotFound))
}

func TestErrorsIsOnSentinels(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", ErrUserExists)

	assert.ErrorIs(t, wrapped, ErrUserExists)
	assert.NotErrorIs(t, wrapped, ErrUserNotFound)
}

func TestWrapErrorKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(ErrCodeInternal, "store failure", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store failure")
	assert.Contains(t, err.Error(), "boom")
}
