// Package memory provides a process-local HistoryStore.
package memory

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/supportagent/store"
)

// MemoryHistoryStore implements store.HistoryStore with an in-process map.
// Histories are copied on the way in and out, so callers can keep appending
// to their own slices without aliasing the stored value.
type MemoryHistoryStore struct {
	mu        sync.RWMutex
	histories map[string][]llms.MessageContent
}

var _ store.HistoryStore = (*MemoryHistoryStore)(nil)

// NewMemoryHistoryStore creates a new in-memory history store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		histories: make(map[string][]llms.MessageContent),
	}
}

// Save stores the full message history for a thread.
func (s *MemoryHistoryStore) Save(ctx context.Context, threadID string, messages []llms.MessageContent) error {
	cp := make([]llms.MessageContent, len(messages))
	copy(cp, messages)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[threadID] = cp
	return nil
}

// Load retrieves the message history for a thread.
func (s *MemoryHistoryStore) Load(ctx context.Context, threadID string) ([]llms.MessageContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.histories[threadID]
	if !ok {
		return nil, store.ErrNotFound
	}

	cp := make([]llms.MessageContent, len(messages))
	copy(cp, messages)
	return cp, nil
}

// Delete removes the history for a thread.
func (s *MemoryHistoryStore) Delete(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, threadID)
	return nil
}
