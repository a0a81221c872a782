// Package llm wraps the hosted model endpoints: chat completions,
// audio transcription, and image generation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-3.5-turbo"

	transcribeModel = "whisper-1"
	imageModel      = "dall-e-2"
)

// Client is a hand-rolled client for an OpenAI-compatible API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewClient creates a chat/audio/image client. Empty baseURL and model fall
// back to the hosted defaults.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// NewClientFromEnv builds a client from OPENAI_API_KEY / OPENAI_BASE_URL.
// Returns nil when no key is configured.
func NewClientFromEnv(model string) *Client {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil
	}
	return NewClient(strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")), apiKey, model)
}

// Model returns the chat model in use.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// endpoint joins the base URL with a /v1 path, tolerating bases that
// already include /v1 (common with local OpenAI-compatible servers).
func (c *Client) endpoint(path string) string {
	if strings.Contains(c.baseURL, "/v1") {
		return c.baseURL + path
	}
	return c.baseURL + "/v1" + path
}

// Complete issues one chat completion and returns the trimmed content of
// the first choice.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/chat/completions"), bytes.NewReader(blob))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat endpoint: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe submits an audio file to the speech-to-text endpoint with a
// language hint and returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to buffer audio file: %w", err)
	}
	_ = mw.WriteField("model", transcribeModel)
	if language != "" {
		_ = mw.WriteField("language", language)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/audio/transcriptions"), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call transcription endpoint: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Text, nil
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage requests one 1024x1024 image for the prompt and returns
// its hosted URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	blob, err := json.Marshal(imageRequest{Model: imageModel, Prompt: prompt, N: 1, Size: "1024x1024"})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/images/generations"), bytes.NewReader(blob))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call image endpoint: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var parsed imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode image response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Data[0].URL, nil
}

// checkStatus maps non-2xx responses to typed errors. The body is read for
// the message but classification is by status code only.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrRateLimited, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("model endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
