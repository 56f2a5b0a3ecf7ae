// Package llm is the language-model boundary for the agent. The model is an
// opaque collaborator: it receives the operation catalog and conversation,
// proposes zero or more calls, and later narrates the executed results.
package llm

import (
	"context"
	"time"
)

// ToolDefinition describes one callable operation exposed to the model.
// InputSchema is a JSON-Schema-like object ({"type":"object","properties":...}).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// ToolCall is one operation invocation proposed by the model.
type ToolCall struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ToolOutcome carries an executed call's structured result back to the model
// for the narration pass.
type ToolOutcome struct {
	Name     string         `json:"name"`
	Args     map[string]any `json:"args"`
	Response map[string]any `json:"response"`
	IsError  bool           `json:"is_error"`
}

// Message is one prior history entry.
type Message struct {
	FromUser bool
	Text     string
}

// Response is the model's answer to a propose pass.
type Response struct {
	Text      string
	ToolCalls []ToolCall
}

// Client defines the two model invocations of a turn.
//
// Propose sends the instructions, history and inbound message together with
// the tool catalog; the model may answer with text, proposed calls, or both.
// Narrate replays the same conversation plus the executed tool outcomes,
// without any tool catalog, so the model can only produce text.
type Client interface {
	Propose(ctx context.Context, system string, history []Message, message string, tools []ToolDefinition) (*Response, error)
	Narrate(ctx context.Context, system string, history []Message, message string, outcomes []ToolOutcome) (string, error)
}

// Config holds Gemini client settings.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int
}

// DefaultConfig returns sensible defaults for the Gemini backend.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-2.0-flash",
		Timeout:         2 * time.Minute,
		MaxOutputTokens: 8192,
	}
}
