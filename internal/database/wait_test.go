package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// recordSleep replaces the real sleep so tests do not wait.
func recordSleep(slept *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return ctx.Err()
	}
}

func TestWaitForDBReady(t *testing.T) {
	pinger := new(mockPinger)
	pinger.On("PingContext", mock.Anything).Return(nil).Once()

	var slept []time.Duration
	attempts, err := WaitForDB(context.Background(), pinger, WaitOptions{Sleep: recordSleep(&slept)})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, slept)
	pinger.AssertNumberOfCalls(t, "PingContext", 1)
}

func TestWaitForDBDelay(t *testing.T) {
	pinger := new(mockPinger)
	pinger.On("PingContext", mock.Anything).Return(errors.New("connection refused")).Times(2)
	pinger.On("PingContext", mock.Anything).Return(errors.New("the database system is starting up")).Times(3)
	pinger.On("PingContext", mock.Anything).Return(nil).Once()

	var slept []time.Duration
	attempts, err := WaitForDB(context.Background(), pinger, WaitOptions{Sleep: recordSleep(&slept)})

	require.NoError(t, err)
	assert.Equal(t, 6, attempts)
	assert.Len(t, slept, 5)
	for _, d := range slept {
		assert.Equal(t, time.Second, d)
	}
	pinger.AssertExpectations(t)
}

func TestWaitForDBCancelled(t *testing.T) {
	pinger := new(mockPinger)
	pinger.On("PingContext", mock.Anything).Return(errors.New("connection refused"))

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	sleep := func(ctx context.Context, d time.Duration) error {
		calls++
		if calls == 3 {
			cancel()
		}
		return ctx.Err()
	}

	attempts, err := WaitForDB(ctx, pinger, WaitOptions{Interval: 10 * time.Millisecond, Sleep: sleep})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, attempts)
}
