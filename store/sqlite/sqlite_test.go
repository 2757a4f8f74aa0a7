package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/supportagent/store"
)

func TestSqliteHistoryStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "histories.db")
	s, err := NewSqliteHistoryStore(SqliteOptions{Path: path})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "Tell me about the smartphone"),
		llms.TextParts(llms.ChatMessageTypeAI, "It has an advanced camera."),
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

	// Upsert replaces the previous history
	more := append(messages, llms.TextParts(llms.ChatMessageTypeHuman, "thanks"))
	err = s.Save(ctx, "thread-1", more)
	require.NoError(t, err)

	loaded, err = s.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Len(t, loaded, 3)

	// Threads are independent
	err = s.Save(ctx, "thread-2", messages)
	require.NoError(t, err)

	err = s.Delete(ctx, "thread-1")
	require.NoError(t, err)

	_, err = s.Load(ctx, "thread-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	loaded, err = s.Load(ctx, "thread-2")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestSqliteHistoryStoreCustomTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.db")
	s, err := NewSqliteHistoryStore(SqliteOptions{Path: path, TableName: "conversations"})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	err = s.Save(ctx, "t", []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, "hi")})
	require.NoError(t, err)

	loaded, err := s.Load(ctx, "t")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
