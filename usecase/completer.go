package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAICompleter talks to an OpenAI-compatible chat completions API.
type OpenAICompleter struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAICompleter{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    "https://api.openai.com/v1",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type openAITool struct {
	Type     string         `json:"type"`
	Function ToolDefinition `json:"function"`
}

type openAIRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Tools    []openAITool  `json:"tools,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAICompleter) Complete(ctx context.Context, messages []ChatMessage, tools []ToolDefinition) (*Completion, error) {
	payload := openAIRequest{
		Model:    o.Model,
		Messages: messages,
	}
	for _, tool := range tools {
		payload.Tools = append(payload.Tools, openAITool{Type: "function", Function: tool})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("completion API returned %d: %s", resp.StatusCode, data)
	}

	var parsed openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("completion API returned no choices")
	}

	msg := parsed.Choices[0].Message
	completion := &Completion{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		completion.ToolCalls = append(completion.ToolCalls, ToolCall{
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}
	return completion, nil
}
