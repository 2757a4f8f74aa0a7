package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/supportagent/graph"
	"github.com/smallnest/supportagent/log"
	"github.com/smallnest/supportagent/store"
	"github.com/smallnest/supportagent/tool"
)

// SupportAgent answers product questions through the model/tools loop.
// A single instance can serve one-shot Run calls or a multi-turn Chat
// session identified by its thread ID.
type SupportAgent struct {
	model         llms.Model
	registry      *tool.Registry
	runnable      *graph.Runnable
	systemPrompt  string
	maxRoundTrips int
	retryConfig   *graph.RetryConfig
	logger        log.Logger
	history       store.HistoryStore

	// Chat session state
	mu       sync.Mutex
	threadID string
	messages []llms.MessageContent
}

// New creates a SupportAgent backed by the given model.
func New(model llms.Model, opts ...Option) (*SupportAgent, error) {
	a := &SupportAgent{
		model:         model,
		systemPrompt:  SystemPrompt,
		maxRoundTrips: DefaultMaxRoundTrips,
		retryConfig:   graph.DefaultRetryConfig(),
		logger:        &log.NoOpLogger{},
		threadID:      uuid.New().String(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.registry == nil {
		a.registry = defaultRegistry()
	}

	runnable, err := a.buildGraph()
	if err != nil {
		return nil, fmt.Errorf("failed to build agent graph: %w", err)
	}
	a.runnable = runnable

	return a, nil
}

// ThreadID returns the session ID used for history persistence.
func (a *SupportAgent) ThreadID() string {
	return a.threadID
}

// Run answers a single user input and returns the final answer text.
// It owns a fresh history: prior Chat turns are not visible to it.
func (a *SupportAgent) Run(ctx context.Context, input string) (string, error) {
	state := State{
		Messages: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, input),
		},
	}

	result, err := a.invoke(ctx, state)
	if err != nil {
		return "", err
	}

	return lastMessageText(result.Messages)
}

// Chat sends a message within the agent's session, keeping the accumulated
// history across turns. When a history store is configured the session is
// loaded before the first turn and saved after every turn.
func (a *SupportAgent) Chat(ctx context.Context, message string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.history != nil && a.messages == nil {
		loaded, err := a.history.Load(ctx, a.threadID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			loaded = []llms.MessageContent{}
		case err != nil:
			return "", fmt.Errorf("failed to load session %s: %w", a.threadID, err)
		}
		a.messages = loaded
	}

	a.messages = append(a.messages, llms.TextParts(llms.ChatMessageTypeHuman, message))

	result, err := a.invoke(ctx, State{Messages: a.messages})
	if err != nil {
		return "", err
	}
	a.messages = result.Messages

	if a.history != nil {
		if err := a.history.Save(ctx, a.threadID, a.messages); err != nil {
			return "", fmt.Errorf("failed to save session %s: %w", a.threadID, err)
		}
	}

	return lastMessageText(a.messages)
}

// Messages returns a copy of the session history accumulated by Chat.
func (a *SupportAgent) Messages() []llms.MessageContent {
	a.mu.Lock()
	defer a.mu.Unlock()

	cp := make([]llms.MessageContent, len(a.messages))
	copy(cp, a.messages)
	return cp
}

func (a *SupportAgent) invoke(ctx context.Context, state State) (State, error) {
	result, err := a.runnable.Invoke(ctx, state)
	if err != nil {
		return State{}, err
	}

	s, ok := result.(State)
	if !ok {
		return State{}, fmt.Errorf("invalid result type: %T", result)
	}
	return s, nil
}

func lastMessageText(messages []llms.MessageContent) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("no messages in result")
	}
	return messageText(messages[len(messages)-1]), nil
}
