package backoff

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffNextCapsAtMax(t *testing.T) {
	b := New(time.Second, 4*time.Second)

	assert.Equal(t, 1*time.Second, b.Next())
	assert.Equal(t, 2*time.Second, b.Next())
	assert.Equal(t, 4*time.Second, b.Next())
	assert.Equal(t, 4*time.Second, b.Next())

	b.Reset()
	assert.Equal(t, 1*time.Second, b.Next())
}

func TestAttemptsStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Attempts(3, time.Second, func(time.Duration) {}, func(attempt int) error {
		calls++
		if attempt < 2 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAttemptsExhausted(t *testing.T) {
	var slept []time.Duration
	calls := 0
	boom := errors.New("boom")

	err := Attempts(3, 5*time.Second, func(d time.Duration) { slept = append(slept, d) }, func(attempt int) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "must not attempt a 4th time")
	// No sleep after the final attempt.
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, slept)
}

func TestAttemptsPassesAttemptNumber(t *testing.T) {
	var seen []int
	_ = Attempts(3, 0, func(time.Duration) {}, func(attempt int) error {
		seen = append(seen, attempt)
		return errors.New("fail")
	})
	assert.Equal(t, []int{1, 2, 3}, seen)
}
