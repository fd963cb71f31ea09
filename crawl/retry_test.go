package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/adlib/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.RetryDelays(3))
	assert.Equal(t, crawl.RetryDelays(3), crawl.DefaultRetryDelays())

	zero := crawl.RetryDelays(0)
	require.NotNil(t, zero)
	assert.Empty(t, zero)
}

func TestFetchWithRetryDelays_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	fetch := func(context.Context, string) (string, error) {
		return "content", nil
	}

	html, retries, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, "content", html)
	assert.Zero(t, retries)
}

func TestFetchWithRetryDelays_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	attempts := 0
	fetch := func(context.Context, string) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "content", nil
	}

	html, retries, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil,
		[]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, "content", html)
	assert.Equal(t, 2, retries)
}

func TestFetchWithRetryDelays_Exhausted(t *testing.T) {
	t.Parallel()

	fetch := func(context.Context, string) (string, error) {
		return "", errors.New("permanent")
	}

	var logged int
	logger := func(string, ...any) { logged++ }

	_, retries, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, logger,
		[]time.Duration{time.Millisecond, time.Millisecond})
	require.Error(t, err)
	assert.Equal(t, "permanent", err.Error())
	assert.Equal(t, 2, retries)
	assert.Equal(t, 2, logged)
}

func TestFetchWithRetryDelays_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(context.Context, string) (string, error) {
		cancel()
		return "", errors.New("transient")
	}

	_, _, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Minute})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
