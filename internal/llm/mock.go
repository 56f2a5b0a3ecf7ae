package llm

import "context"

// MockClient is a scripted Client for tests.
type MockClient struct {
	ProposeFunc func(ctx context.Context, system string, history []Message, message string, tools []ToolDefinition) (*Response, error)
	NarrateFunc func(ctx context.Context, system string, history []Message, message string, outcomes []ToolOutcome) (string, error)

	// Captured inputs from the last calls, for assertions.
	LastProposeTools    []ToolDefinition
	LastNarrateOutcomes []ToolOutcome
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) Propose(ctx context.Context, system string, history []Message, message string, tools []ToolDefinition) (*Response, error) {
	m.LastProposeTools = tools
	if m.ProposeFunc != nil {
		return m.ProposeFunc(ctx, system, history, message, tools)
	}
	return &Response{}, nil
}

func (m *MockClient) Narrate(ctx context.Context, system string, history []Message, message string, outcomes []ToolOutcome) (string, error) {
	m.LastNarrateOutcomes = outcomes
	if m.NarrateFunc != nil {
		return m.NarrateFunc(ctx, system, history, message, outcomes)
	}
	return "", nil
}
