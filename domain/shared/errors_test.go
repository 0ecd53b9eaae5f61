package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewNotFoundError("account"), ErrNotFound},
		{"conflict", NewConflictError("account", "number taken"), ErrConflict},
		{"validation", NewValidationError("account", "currency", "bad currency"), ErrInvalidInput},
		{"authorization", NewAuthorizationError("user", "not the owner"), ErrUnauthorized},
		{"infrastructure", NewInfrastructureError("transaction", "deadlock", true), ErrInfrastructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("saving account: %w", NewConflictError("account", "stale version"))
	assert.True(t, errors.Is(err, ErrConflict))

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "account", de.Entity)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(NewInfrastructureError("tx", "deadlock", true)))
	assert.False(t, IsTransient(NewInfrastructureError("tx", "bad credentials", false)))
	assert.False(t, IsTransient(NewConflictError("account", "stale version")))
	assert.False(t, IsTransient(NewNotFoundError("account")))
	assert.False(t, IsTransient(errors.New("plain error")))
	assert.False(t, IsTransient(nil))
}

func TestDomainErrorCarriesStack(t *testing.T) {
	err := NewNotFoundError("card")

	var stacker Stacker
	require.True(t, errors.As(err, &stacker))
	stack := stacker.Stack()
	require.NotEmpty(t, stack)
	assert.Contains(t, stack[0], "errors_test.go")
}

func TestDomainErrorMessageHasNoStorageDetail(t *testing.T) {
	err := NewNotFoundError("account")
	assert.Equal(t, "account not found", err.Error())
}
