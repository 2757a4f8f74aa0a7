package graph_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/supportagent/graph"
)

func TestRetryNodeSucceedsAfterFailures(t *testing.T) {
	t.Parallel()

	attempts := 0

	g := graph.NewStateGraph()
	g.AddNodeWithRetry("flaky", "fails twice then succeeds", func(ctx context.Context, state any) (any, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	}, &graph.RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      10 * time.Millisecond,
		BackoffFactor: 2.0,
	})
	g.SetEntryPoint("flaky")
	g.AddEdge("flaky", graph.END)

	runnable, err := g.Compile()
	require.NoError(t, err)

	result, err := runnable.Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestRetryNodeExhaustsAttempts(t *testing.T) {
	t.Parallel()

	attempts := 0

	g := graph.NewStateGraph()
	g.AddNodeWithRetry("broken", "always fails", func(ctx context.Context, state any) (any, error) {
		attempts++
		return nil, errors.New("down")
	}, &graph.RetryConfig{
		MaxAttempts:   2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      10 * time.Millisecond,
		BackoffFactor: 2.0,
	})
	g.SetEntryPoint("broken")
	g.AddEdge("broken", graph.END)

	runnable, err := g.Compile()
	require.NoError(t, err)

	_, err = runnable.Invoke(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max retries")
	assert.Equal(t, 2, attempts)
}

func TestRetryNodeNonRetryableError(t *testing.T) {
	t.Parallel()

	attempts := 0
	fatal := errors.New("bad request")

	g := graph.NewStateGraph()
	g.AddNodeWithRetry("strict", "fails fatally", func(ctx context.Context, state any) (any, error) {
		attempts++
		return nil, fatal
	}, &graph.RetryConfig{
		MaxAttempts:   5,
		InitialDelay:  time.Millisecond,
		MaxDelay:      10 * time.Millisecond,
		BackoffFactor: 2.0,
		RetryableErrors: func(err error) bool {
			return !errors.Is(err, fatal)
		},
	})
	g.SetEntryPoint("strict")
	g.AddEdge("strict", graph.END)

	runnable, err := g.Compile()
	require.NoError(t, err)

	_, err = runnable.Invoke(context.Background(), nil)
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, attempts)
}
