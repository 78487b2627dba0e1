package salesforce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestWithRateLimit(t *testing.T) {
	c := &sfClient{}
	WithRateLimit(5)(c)
	require.NotNil(t, c.limiter)
	assert.Equal(t, rate.Limit(5), c.limiter.Limit())
	assert.Equal(t, 5, c.limiter.Burst())
}

func TestWithRateLimitFractionalKeepsBurst(t *testing.T) {
	c := &sfClient{}
	WithRateLimit(0.5)(c)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}

func TestWithRateLimitZeroIsNoop(t *testing.T) {
	c := &sfClient{}
	WithRateLimit(0)(c)
	assert.Nil(t, c.limiter)
}

func TestWaitWithoutLimiter(t *testing.T) {
	c := &sfClient{}
	assert.NoError(t, c.wait(context.Background()))
}

func TestWaitHonorsCancellation(t *testing.T) {
	c := &sfClient{limiter: rate.NewLimiter(rate.Limit(0.001), 1)}

	// Drain the burst so the next wait would block.
	require.NoError(t, c.wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.wait(ctx))
}
