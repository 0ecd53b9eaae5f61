package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

func TestFromDomainErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"not found", shared.NewNotFoundError("account"), CodeNotFound},
		{"conflict", shared.NewConflictError("account", "number already exists"), CodeConflict},
		{"validation", shared.NewValidationError("account", "currency", "bad currency"), CodeValidation},
		{"authorization", shared.NewAuthorizationError("user", "not your profile"), CodeForbidden},
		{"infrastructure", shared.NewInfrastructureError("tx", "deadlock", true), CodeInfrastructure},
		{"unknown", stderrors.New("mystery"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.True(t, stderrors.Is(appErr, tt.err) || appErr.Err == tt.err)
		})
	}
}

func TestFromDomainErrorNil(t *testing.T) {
	assert.Nil(t, FromDomainError(nil))
}

func TestFromDomainErrorKeepsAppErrors(t *testing.T) {
	original := New(CodeTooManyRequest, "slow down")
	assert.Same(t, original, FromDomainError(original))
}

func TestFromDomainErrorMasksInternalDetail(t *testing.T) {
	appErr := FromDomainError(stderrors.New("dial tcp 10.0.0.1:3306: i/o timeout"))
	assert.Equal(t, "internal server error", appErr.Message)

	appErr = FromDomainError(shared.NewInfrastructureError("tx", "connection pool exhausted", true))
	assert.Equal(t, "service temporarily unavailable", appErr.Message)
}

func TestIs(t *testing.T) {
	assert.True(t, Is(New(CodeConflict, "x"), CodeConflict))
	assert.False(t, Is(New(CodeConflict, "x"), CodeNotFound))
	assert.False(t, Is(stderrors.New("plain"), CodeInternal))
}
