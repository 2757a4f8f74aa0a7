// Package agent implements the product support conversation loop.
//
// The loop is a two-node cyclic graph: a model node that calls the LLM with
// the declared tool set, and a tools node that executes whatever tool calls
// the model requested. A conditional edge after the model node routes to the
// tools node while tool calls keep arriving and to END once the model
// produces a plain answer.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/supportagent/catalog"
	"github.com/smallnest/supportagent/graph"
	"github.com/smallnest/supportagent/tool"
)

// SystemPrompt is the fixed instruction sent to the model on every call.
const SystemPrompt = `You are a helpful customer support agent specializing in product information.
Your goal is to answer user queries about product details or prices.

1. For general, customer-facing descriptions (like 'tell me about...'), ALWAYS use the ` + "`get_product_details`" + ` tool.
2. For internal data like SKU or inventory, use the ` + "`lookup_product_information`" + ` tool.
3. If the user is asking for the price, use the ` + "`get_product_price`" + ` tool.

Available products: smartphone, usb charger, shoes, headphones, speaker
`

const (
	nodeAgent = "agent"
	nodeTools = "tools"
)

// State is the conversation state flowing through the graph:
// an append-only, ordered message history.
type State struct {
	Messages []llms.MessageContent
}

// buildGraph wires the two-node loop and compiles it.
func (a *SupportAgent) buildGraph() (*graph.Runnable, error) {
	workflow := graph.NewStateGraph()

	workflow.AddNodeWithRetry(nodeAgent, "calls the model with the declared tool set", a.callModel, a.retryConfig)
	workflow.AddNode(nodeTools, "executes requested tool calls", a.executeTools)

	workflow.SetEntryPoint(nodeAgent)
	workflow.AddConditionalEdge(nodeAgent, routeAfterModel)
	workflow.AddEdge(nodeTools, nodeAgent)

	// Each model/tools round trip is two steps, plus the final model call.
	workflow.SetMaxSteps(2*a.maxRoundTrips + 1)

	return workflow.Compile()
}

// callModel invokes the LLM with the full message history and the tool
// schemas, and appends exactly one AI message to the state.
func (a *SupportAgent) callModel(ctx context.Context, state any) (any, error) {
	s, ok := state.(State)
	if !ok {
		return nil, fmt.Errorf("invalid state type: %T", state)
	}

	messages := withSystemMessage(a.systemPrompt, s.Messages)

	a.logger.Debug("calling model with %d messages", len(messages))

	resp, err := a.model.GenerateContent(ctx, messages, llms.WithTools(a.registry.Definitions()))
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	choice := resp.Choices[0]

	aiMsg := llms.MessageContent{
		Role: llms.ChatMessageTypeAI,
	}
	if choice.Content != "" {
		aiMsg.Parts = append(aiMsg.Parts, llms.TextPart(choice.Content))
	}
	for _, tc := range choice.ToolCalls {
		aiMsg.Parts = append(aiMsg.Parts, tc)
	}

	return State{Messages: append(messages, aiMsg)}, nil
}

// executeTools runs every tool call on the last AI message, in request
// order, and appends one tool message per call.
func (a *SupportAgent) executeTools(ctx context.Context, state any) (any, error) {
	s, ok := state.(State)
	if !ok {
		return nil, fmt.Errorf("invalid state type: %T", state)
	}
	if len(s.Messages) == 0 {
		return nil, errors.New("no messages in state")
	}

	lastMsg := s.Messages[len(s.Messages)-1]
	if lastMsg.Role != llms.ChatMessageTypeAI {
		return nil, fmt.Errorf("last message is not an AI message: %s", lastMsg.Role)
	}

	messages := s.Messages
	for _, part := range lastMsg.Parts {
		tc, ok := part.(llms.ToolCall)
		if !ok {
			continue
		}

		content := a.runTool(ctx, tc)

		messages = append(messages, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: tc.ID,
					Name:       tc.FunctionCall.Name,
					Content:    content,
				},
			},
		})
	}

	return State{Messages: messages}, nil
}

// runTool resolves and executes a single tool call. Failures become tool
// result text so the model can recover in natural language.
func (a *SupportAgent) runTool(ctx context.Context, tc llms.ToolCall) string {
	name := tc.FunctionCall.Name

	t, ok := a.registry.Lookup(name)
	if !ok {
		a.logger.Warn("model requested unknown tool %q", name)
		return fmt.Sprintf("Error: unknown tool %q", name)
	}

	input := productNameArgument(tc.FunctionCall.Arguments)

	a.logger.Debug("executing tool %s(%q)", name, input)

	res, err := t.Call(ctx, input)
	if err != nil {
		a.logger.Warn("tool %s failed: %v", name, err)
		return fmt.Sprintf("Error: %v", err)
	}
	return res
}

// productNameArgument extracts the product name from the model's JSON
// arguments, falling back to the raw argument string.
func productNameArgument(arguments string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return arguments
	}
	if v, ok := args["product_name"].(string); ok {
		return v
	}
	if v, ok := args["input"].(string); ok {
		return v
	}
	return arguments
}

// routeAfterModel decides whether the turn continues with tool execution.
// It only inspects the most recent message: the tools node is next iff that
// message is an AI message carrying at least one tool call.
// Calling it on an empty history is a programmer error.
func routeAfterModel(ctx context.Context, state any) string {
	s := state.(State)
	if len(s.Messages) == 0 {
		panic("routeAfterModel called with empty message history")
	}

	lastMsg := s.Messages[len(s.Messages)-1]
	if lastMsg.Role == llms.ChatMessageTypeAI {
		for _, part := range lastMsg.Parts {
			if _, ok := part.(llms.ToolCall); ok {
				return nodeTools
			}
		}
	}
	return graph.END
}

// withSystemMessage normalizes the system instruction: any system messages
// already in the history are dropped and the canonical one is prepended, so
// re-entering the loop can neither duplicate nor lose it.
func withSystemMessage(prompt string, messages []llms.MessageContent) []llms.MessageContent {
	normalized := make([]llms.MessageContent, 0, len(messages)+1)
	normalized = append(normalized, llms.TextParts(llms.ChatMessageTypeSystem, prompt))
	for _, msg := range messages {
		if msg.Role == llms.ChatMessageTypeSystem {
			continue
		}
		normalized = append(normalized, msg)
	}
	return normalized
}

// messageText joins the text parts of a message.
func messageText(msg llms.MessageContent) string {
	var sb strings.Builder
	for _, part := range msg.Parts {
		if tc, ok := part.(llms.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

// defaultRegistry builds the tool registry over the built-in catalog.
func defaultRegistry() *tool.Registry {
	return tool.NewRegistry(catalog.Default())
}
