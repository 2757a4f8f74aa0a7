package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/supportagent/store"
)

func TestRedisHistoryStore(t *testing.T) {
	// Start miniredis
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s := NewRedisHistoryStore(RedisOptions{
		Addr: mr.Addr(),
	})
	defer s.Close()

	ctx := context.Background()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "What is the price of shoes?"),
		{
			Role: llms.ChatMessageTypeAI,
			Parts: []llms.ContentPart{
				llms.ToolCall{
					ID:   "call-1",
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      "get_product_price",
						Arguments: `{"product_name": "shoes"}`,
					},
				},
			},
		},
		{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{ToolCallID: "call-1", Name: "get_product_price", Content: "$100"},
			},
		},
		llms.TextParts(llms.ChatMessageTypeAI, "Shoes cost $100."),
	}

	// Load before save
	_, err = s.Load(ctx, "thread-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Save and load
	err = s.Save(ctx, "thread-1", messages)
	require.NoError(t, err)

	loaded, err := s.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, messages, loaded)

	// Delete
	err = s.Delete(ctx, "thread-1")
	require.NoError(t, err)

	_, err = s.Load(ctx, "thread-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisHistoryStoreTTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s := NewRedisHistoryStore(RedisOptions{
		Addr: mr.Addr(),
		TTL:  time.Minute,
	})
	defer s.Close()

	ctx := context.Background()
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "hello"),
	}

	err = s.Save(ctx, "thread-ttl", messages)
	require.NoError(t, err)

	_, err = s.Load(ctx, "thread-ttl")
	require.NoError(t, err)

	// After the TTL elapses the history is gone.
	mr.FastForward(2 * time.Minute)

	_, err = s.Load(ctx, "thread-ttl")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
