package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 1)

	assert.Same(t, l.GetLimiter("10.0.0.1"), l.GetLimiter("10.0.0.1"))
	assert.True(t, l.GetLimiter("10.0.0.1").Allow())
	assert.False(t, l.GetLimiter("10.0.0.1").Allow())
	assert.True(t, l.GetLimiter("10.0.0.2").Allow())
	assert.Equal(t, 2, l.Len())
}

func TestIPRateLimiter_CleanupDropsIdle(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Minute), 1)
	now := time.Now()

	assert.True(t, l.GetLimiter("busy").AllowN(now, 1))
	l.GetLimiter("idle")

	assert.Equal(t, 1, l.Cleanup(now))
	assert.Equal(t, 1, l.Len())

	// the busy bucket refills after a minute
	assert.Equal(t, 1, l.Cleanup(now.Add(2*time.Minute)))
	assert.Equal(t, 0, l.Len())
}

func TestIPRateLimiter_RunStopsOnCancel(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 1)
	l.GetLimiter("idle")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
