package agent

import (
	"github.com/smallnest/supportagent/catalog"
	"github.com/smallnest/supportagent/graph"
	"github.com/smallnest/supportagent/log"
	"github.com/smallnest/supportagent/store"
	"github.com/smallnest/supportagent/tool"
)

// DefaultMaxRoundTrips bounds how many model/tools round trips a single turn
// may take before the run fails with graph.ErrMaxStepsExceeded.
const DefaultMaxRoundTrips = 10

// Option configures a SupportAgent.
type Option func(*SupportAgent)

// WithMaxRoundTrips sets the maximum number of model/tools round trips per turn.
func WithMaxRoundTrips(n int) Option {
	return func(a *SupportAgent) {
		if n > 0 {
			a.maxRoundTrips = n
		}
	}
}

// WithSystemPrompt overrides the default system instruction.
func WithSystemPrompt(prompt string) Option {
	return func(a *SupportAgent) {
		a.systemPrompt = prompt
	}
}

// WithCatalog uses a custom product catalog instead of the built-in one.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *SupportAgent) {
		a.registry = tool.NewRegistry(c)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(a *SupportAgent) {
		a.logger = logger
	}
}

// WithRetryConfig overrides the retry behavior of the model node.
func WithRetryConfig(config *graph.RetryConfig) Option {
	return func(a *SupportAgent) {
		a.retryConfig = config
	}
}

// WithHistoryStore enables session persistence for Chat.
func WithHistoryStore(s store.HistoryStore) Option {
	return func(a *SupportAgent) {
		a.history = s
	}
}

// WithThreadID resumes an existing session instead of starting a new one.
func WithThreadID(threadID string) Option {
	return func(a *SupportAgent) {
		if threadID != "" {
			a.threadID = threadID
		}
	}
}
