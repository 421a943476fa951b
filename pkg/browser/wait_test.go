package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitUntil_ReturnsWhenPredicateHolds(t *testing.T) {
	s := testSession(t)
	calls := 0
	err := s.WaitUntil(context.Background(), func(context.Context, *Session) (bool, error) {
		calls++
		return calls == 3, nil
	}, time.Second)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitUntil_Timeout(t *testing.T) {
	s := testSession(t)
	start := time.Now()
	err := s.WaitUntil(context.Background(), func(context.Context, *Session) (bool, error) {
		return false, nil
	}, 50*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestWaitUntil_LocateErrorsAreRetried(t *testing.T) {
	s := testSession(t)
	calls := 0
	err := s.WaitUntil(context.Background(), func(context.Context, *Session) (bool, error) {
		calls++
		if calls < 2 {
			return false, newError(KindLocate, "locate", "#loading", nil)
		}
		return true, nil
	}, time.Second)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWaitUntil_TimeoutKeepsLastLocateError(t *testing.T) {
	s := testSession(t)
	err := s.WaitUntil(context.Background(), func(context.Context, *Session) (bool, error) {
		return false, newError(KindLocate, "locate", "#finish", nil)
	}, 30*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, ErrLocate)
}

func TestWaitUntil_OtherErrorsStop(t *testing.T) {
	s := testSession(t)
	boom := errors.New("boom")
	calls := 0
	err := s.WaitUntil(context.Background(), func(context.Context, *Session) (bool, error) {
		calls++
		return false, boom
	}, time.Second)

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, calls)
}

func TestWaitUntil_ParentCancelIsNotTimeout(t *testing.T) {
	s := testSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WaitUntil(ctx, func(context.Context, *Session) (bool, error) {
		return false, nil
	}, time.Second)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestWaitUntil_ZeroTimeoutUsesConfig(t *testing.T) {
	s := testSession(t)
	s.cfg.WaitTimeout = 40 * time.Millisecond

	start := time.Now()
	err := s.WaitUntil(context.Background(), func(context.Context, *Session) (bool, error) {
		return false, nil
	}, 0)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}
