package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsOnLaterAttempt(t *testing.T) {
	var attempts []int
	err := withRetry(context.Background(), 3, func(attempt int) error {
		attempts = append(attempts, attempt)
		if attempt < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, attempts)
}

func TestWithRetry_Exhausted(t *testing.T) {
	fail := errors.New("persistent")
	calls := 0
	err := withRetry(context.Background(), 2, func(int) error {
		calls++
		return fail
	})
	assert.ErrorIs(t, err, fail)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := time.Now()
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	err := withRetry(ctx, 3, func(int) error { return errors.New("always") })
	assert.ErrorIs(t, err, context.Canceled)
	// Cancelled during the first backoff, long before the full schedule.
	assert.Less(t, time.Since(started), 3*time.Second)
}
