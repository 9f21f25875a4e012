package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerStartsClosed(t *testing.T) {
	b := New("core-banking")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "core-banking", b.Name())
}

func TestBreakerOpensAfterFailureThreshold(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(3))

	useFallback, change := b.RecordFailure()
	assert.False(t, useFallback)
	assert.False(t, change.Opened)

	useFallback, change = b.RecordFailure()
	assert.False(t, useFallback)
	assert.False(t, change.Opened)

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())
}

func TestBreakerClosesAfterSuccessThreshold(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.False(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.False(t, b.IsOpen())
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(3))

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()

	// The count restarted; two more failures stay below the threshold.
	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestBreakerFailureResetsSuccessCount(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(1), WithSuccessThreshold(3))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordSuccess()
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.RecordSuccess()
	b.RecordSuccess()
	assert.True(t, b.IsOpen())
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestBreakerFailureWhileOpenKeepsState(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(1))

	b.RecordFailure()
	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened)
}

func TestBreakerAllowsTrialCallAfterCooldown(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(1), WithCooldown(time.Minute))
	current := time.Now()
	b.now = func() time.Time { return current }

	b.RecordFailure()
	assert.False(t, b.Allow())

	current = current.Add(time.Minute)
	assert.True(t, b.Allow())
	// One trial call per interval, the rest keep failing fast.
	assert.False(t, b.Allow())

	b.RecordSuccess()
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow())
}

func TestBreakerFailedTrialCallKeepsItOpen(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(1), WithCooldown(time.Minute))
	current := time.Now()
	b.now = func() time.Time { return current }

	b.RecordFailure()
	current = current.Add(time.Minute)
	assert.True(t, b.Allow())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
	assert.False(t, b.Allow())
}

func TestBreakerReset(t *testing.T) {
	b := New("core-banking", WithFailureThreshold(1))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
}
