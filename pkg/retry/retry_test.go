package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	attempts := 0
	wantErr := errors.New("persistent failure")
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 4, attempts, "initial attempt plus three retries")
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := Do(ctx, &Config{MaxRetries: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}, func() error {
		attempts++
		cancel()
		return errors.New("failure")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	result, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		attempts++
		if attempts < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

type permanentError struct{}

func (permanentError) Error() string     { return "permanent" }
func (permanentError) IsRetryable() bool { return false }

func TestDoIfRetryable_StopsOnPermanentError(t *testing.T) {
	attempts := 0
	err := DoIfRetryable(context.Background(), fastConfig(), func() error {
		attempts++
		return permanentError{}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoIfRetryable_RetriesTransientError(t *testing.T) {
	attempts := 0
	err := DoIfRetryable(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 2 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"timeout", errors.New("context deadline exceeded: i/o timeout"), true},
		{"rate limit status", errors.New("HTTP 429 too many requests"), true},
		{"server error", errors.New("HTTP 503 service unavailable"), true},
		{"maps quota", errors.New("maps: OVER_QUERY_LIMIT"), true},
		{"maps unknown", errors.New("maps: UNKNOWN_ERROR"), true},
		{"auth failure", errors.New("HTTP 401 unauthorized"), false},
		{"bad request", errors.New("HTTP 400 bad request"), false},
		{"explicit permanent", permanentError{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
