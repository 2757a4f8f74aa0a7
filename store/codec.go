package store

import (
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// partRecord is the serialized form of a single message content part.
type partRecord struct {
	Type       string `json:"type"` // "text", "tool_call" or "tool_response"
	Text       string `json:"text,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Arguments  string `json:"arguments,omitempty"`
	Content    string `json:"content,omitempty"`
}

// messageRecord is the serialized form of a single message.
type messageRecord struct {
	Role  string       `json:"role"`
	Parts []partRecord `json:"parts"`
}

// EncodeMessages serializes a message history to JSON.
func EncodeMessages(messages []llms.MessageContent) ([]byte, error) {
	records := make([]messageRecord, 0, len(messages))

	for _, msg := range messages {
		record := messageRecord{Role: string(msg.Role)}
		for _, part := range msg.Parts {
			switch p := part.(type) {
			case llms.TextContent:
				record.Parts = append(record.Parts, partRecord{
					Type: "text",
					Text: p.Text,
				})
			case llms.ToolCall:
				pr := partRecord{
					Type:       "tool_call",
					ToolCallID: p.ID,
				}
				if p.FunctionCall != nil {
					pr.Name = p.FunctionCall.Name
					pr.Arguments = p.FunctionCall.Arguments
				}
				record.Parts = append(record.Parts, pr)
			case llms.ToolCallResponse:
				record.Parts = append(record.Parts, partRecord{
					Type:       "tool_response",
					ToolCallID: p.ToolCallID,
					Name:       p.Name,
					Content:    p.Content,
				})
			default:
				return nil, fmt.Errorf("unsupported content part type %T", part)
			}
		}
		records = append(records, record)
	}

	return json.Marshal(records)
}

// DecodeMessages deserializes a message history from JSON.
func DecodeMessages(data []byte) ([]llms.MessageContent, error) {
	var records []messageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	messages := make([]llms.MessageContent, 0, len(records))
	for _, record := range records {
		msg := llms.MessageContent{Role: llms.ChatMessageType(record.Role)}
		for _, pr := range record.Parts {
			switch pr.Type {
			case "text":
				msg.Parts = append(msg.Parts, llms.TextContent{Text: pr.Text})
			case "tool_call":
				msg.Parts = append(msg.Parts, llms.ToolCall{
					ID:   pr.ToolCallID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      pr.Name,
						Arguments: pr.Arguments,
					},
				})
			case "tool_response":
				msg.Parts = append(msg.Parts, llms.ToolCallResponse{
					ToolCallID: pr.ToolCallID,
					Name:       pr.Name,
					Content:    pr.Content,
				})
			default:
				return nil, fmt.Errorf("unknown content part type %q", pr.Type)
			}
		}
		messages = append(messages, msg)
	}

	return messages, nil
}
