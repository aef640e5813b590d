package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	var (
		ok      = func() error { return nil }
		failing = func() error { return errors.New("broker down") }
	)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New(10, time.Second, 0.3, 3).(*circuitBreaker)
	cb.now = func() time.Time { return now }

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, Closed, cb.State())

	// 3 of 10 failed reaches the threshold
	for i := 0; i < 3; i++ {
		require.Error(t, cb.Call(failing))
	}
	require.Equal(t, Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, ErrOpen)
	require.False(t, called)

	// cooldown elapsed: one trial call in half-open, a failure opens again
	now = now.Add(2 * time.Second)
	require.Error(t, cb.Call(failing))
	require.Equal(t, Open, cb.State())

	now = now.Add(2 * time.Second)
	for i := 0; i < 2; i++ {
		require.NoError(t, cb.Call(ok))
		require.Equal(t, HalfOpen, cb.State())
	}
	require.NoError(t, cb.Call(ok))
	require.Equal(t, Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	cb := New(2, time.Hour, 0.5, 1)
	require.Error(t, cb.Call(func() error { return errors.New("x") }))
	require.Equal(t, Open, cb.State())

	cb.Reset()
	require.Equal(t, Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}
