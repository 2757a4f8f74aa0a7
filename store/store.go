// Package store provides persistence for conversation histories, so that a
// support session can be resumed by thread ID across process restarts.
//
// Three backends are available:
//   - memory: process-local, for tests and single-shot runs
//   - redis: shared storage with optional TTL
//   - sqlite: embedded file-based storage
package store

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
)

// ErrNotFound is returned when no history exists for a thread ID.
var ErrNotFound = errors.New("history not found")

// HistoryStore persists the ordered message history of a conversation thread.
type HistoryStore interface {
	// Save stores the full message history for a thread, replacing any
	// previous value.
	Save(ctx context.Context, threadID string, messages []llms.MessageContent) error

	// Load retrieves the message history for a thread.
	// Returns ErrNotFound if the thread has no saved history.
	Load(ctx context.Context, threadID string) ([]llms.MessageContent, error)

	// Delete removes the history for a thread.
	Delete(ctx context.Context, threadID string) error
}
