package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GeminiClient implements Client against the generativelanguage API.
type GeminiClient struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
	logger          *zap.Logger
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(cfg Config, logger *zap.Logger) *GeminiClient {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		apiKey:          cfg.APIKey,
		baseURL:         baseURL,
		model:           model,
		maxOutputTokens: maxTokens,
		httpClient:      &http.Client{Timeout: timeout},
		logger:          logger,
	}
}

// Wire types for the generateContent endpoint.

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Tools             []geminiTool           `json:"tools,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResponse `json:"functionResponse,omitempty"`
}

type geminiFunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type geminiFunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDeclaration `json:"functionDeclarations,omitempty"`
}

type geminiFunctionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Propose sends the conversation with the full tool catalog.
func (c *GeminiClient) Propose(ctx context.Context, system string, history []Message, message string, tools []ToolDefinition) (*Response, error) {
	contents := historyContents(history)
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	req := c.baseRequest(system, contents)
	if len(tools) > 0 {
		decls := make([]geminiFunctionDeclaration, len(tools))
		for i, t := range tools {
			decls[i] = geminiFunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			}
		}
		req.Tools = []geminiTool{{FunctionDeclarations: decls}}
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return parseResponse(resp), nil
}

// Narrate replays the conversation plus the executed tool outcomes. No tools
// are attached, so the model cannot propose further calls.
func (c *GeminiClient) Narrate(ctx context.Context, system string, history []Message, message string, outcomes []ToolOutcome) (string, error) {
	contents := historyContents(history)
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	if len(outcomes) > 0 {
		callParts := make([]geminiPart, 0, len(outcomes))
		resultParts := make([]geminiPart, 0, len(outcomes))
		for _, o := range outcomes {
			callParts = append(callParts, geminiPart{
				FunctionCall: &geminiFunctionCall{Name: o.Name, Args: o.Args},
			})
			resultParts = append(resultParts, geminiPart{
				FunctionResponse: &geminiFunctionResponse{
					Name:     o.Name,
					Response: map[string]any{"content": o.Response, "is_error": o.IsError},
				},
			})
		}
		contents = append(contents,
			geminiContent{Role: "model", Parts: callParts},
			geminiContent{Role: "function", Parts: resultParts},
		)
	}

	resp, err := c.generate(ctx, c.baseRequest(system, contents))
	if err != nil {
		return "", err
	}
	return parseResponse(resp).Text, nil
}

func (c *GeminiClient) baseRequest(system string, contents []geminiContent) geminiRequest {
	req := geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopP:            0.95,
			MaxOutputTokens: c.maxOutputTokens,
		},
	}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	return req
}

func (c *GeminiClient) generate(ctx context.Context, reqBody geminiRequest) (*geminiResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	// Retry loop for rate limits.
	const maxRetries = 3
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<uint(i-1)) * time.Second):
			}
		}

		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limit exceeded (429)")
			c.logger.Warn("gemini rate limited, retrying", zap.Int("attempt", i+1))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		var geminiResp geminiResponse
		if err := json.Unmarshal(body, &geminiResp); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		if geminiResp.Error != nil {
			return nil, fmt.Errorf("API error: %s", geminiResp.Error.Message)
		}

		c.logger.Debug("gemini generateContent completed",
			zap.String("model", c.model),
			zap.Duration("elapsed", time.Since(start)))
		return &geminiResp, nil
	}
	return nil, lastErr
}

func historyContents(history []Message) []geminiContent {
	contents := make([]geminiContent, 0, len(history)+3)
	for _, m := range history {
		role := "model"
		if m.FromUser {
			role = "user"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Text}},
		})
	}
	return contents
}

func parseResponse(resp *geminiResponse) *Response {
	result := &Response{}
	if len(resp.Candidates) == 0 {
		return result
	}
	var textBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			textBuilder.WriteString(part.Text)
		}
		if part.FunctionCall != nil {
			result.ToolCalls = append(result.ToolCalls, ToolCall{
				ID:   fmt.Sprintf("call_%d", len(result.ToolCalls)),
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
	}
	result.Text = strings.TrimSpace(textBuilder.String())
	return result
}
