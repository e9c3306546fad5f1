package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError(t *testing.T) {
	err := NewForbiddenError("Admin access required")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "Admin access required", err.Error())

	wrapped := fmt.Errorf("gate: %w", err)
	msg, ok := SafeMessage(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Admin access required", msg)

	_, ok = SafeMessage(errors.New("pq: connection refused"))
	assert.False(t, ok)

	assert.Equal(t, ErrFileTooLarge.Error(), NewCustomError(ErrFileTooLarge, "").Error())
}
