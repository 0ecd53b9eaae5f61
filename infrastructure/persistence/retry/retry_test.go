package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/shared"
)

func fastConfig() Config {
	return Config{
		Enabled:       true,
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestExecuteSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return shared.NewInfrastructureError("tx", "deadlock", true)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteStopsAtMaxAttempts(t *testing.T) {
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return shared.NewInfrastructureError("tx", "deadlock", true)
	})
	assert.True(t, errors.Is(err, shared.ErrInfrastructure))
	assert.Equal(t, 3, calls)
}

func TestExecuteNeverRetriesBusinessErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"conflict", shared.NewConflictError("account", "stale version")},
		{"not found", shared.NewNotFoundError("account")},
		{"validation", shared.NewValidationError("account", "currency", "bad")},
		{"non-transient infrastructure", shared.NewInfrastructureError("tx", "auth failed", false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
				calls++
				return tt.err
			})
			assert.Equal(t, tt.err, err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestExecuteDisabledRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false

	calls := 0
	err := Execute(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return shared.NewInfrastructureError("tx", "deadlock", true)
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Execute(ctx, fastConfig(), func(ctx context.Context) error {
		calls++
		cancel()
		return shared.NewInfrastructureError("tx", "deadlock", true)
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, calls)
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      300 * time.Millisecond,
		BackoffFactor: 2.0,
	}

	assert.Equal(t, 100*time.Millisecond, Backoff(1, cfg))
	assert.Equal(t, 200*time.Millisecond, Backoff(2, cfg))
	assert.Equal(t, 300*time.Millisecond, Backoff(3, cfg)) // capped
	assert.Equal(t, time.Duration(0), Backoff(0, cfg))
}

func TestBackoffJitterStaysInBand(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
	for i := 0; i < 50; i++ {
		d := Backoff(1, cfg)
		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.LessOrEqual(t, d, 120*time.Millisecond)
	}
}
