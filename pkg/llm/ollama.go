package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
)

// DefaultOllamaModel is the chat model used when none is selected.
const DefaultOllamaModel = "llama2"

// OllamaClient drives a locally hosted model through the Ollama API. It
// satisfies the same Complete shape as Client so the summarizer can run
// against either backend.
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient connects to the Ollama endpoint from OLLAMA_HOST (or the
// local default).
func NewOllamaClient(model string) (*OllamaClient, error) {
	if model == "" {
		model = DefaultOllamaModel
	}
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaClient{client: client, model: model}, nil
}

// Model returns the local model name in use.
func (c *OllamaClient) Model() string {
	return c.model
}

// CheckModel verifies the selected model has been pulled.
func (c *OllamaClient) CheckModel(ctx context.Context) error {
	listResp, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	for _, m := range listResp.Models {
		if m.Name == c.model || strings.HasPrefix(m.Name, c.model+":") {
			return nil
		}
	}
	return fmt.Errorf("model %q not found - run: ollama pull %s", c.model, c.model)
}

// Complete issues one non-streaming chat call and returns the reply text.
func (c *OllamaClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: &stream,
	}

	var reply strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to call ollama chat: %w", err)
	}
	if strings.TrimSpace(reply.String()) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(reply.String()), nil
}
