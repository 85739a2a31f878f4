// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcribe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/meshintel/pagemark/internal/httputil"
)

// DefaultBaseURL is the default OpenAI-compatible provider root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// OpenAIBackend transcribes a page image by calling an OpenAI-compatible
// chat-completions endpoint with the image attached as a data URI.
// HTTP 429 responses are retried with backoff before surfacing.
type OpenAIBackend struct {
	APIKey  string
	BaseURL string
	Model   string
	Prompts PromptSet

	// Temperature and MaxTokens are forwarded when non-nil.
	Temperature *float64
	MaxTokens   *int

	// MaxRetries bounds rate-limit retries (0 uses the httputil default).
	MaxRetries int

	Client *http.Client
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// chatMessage is one message; Content is either a plain string (system)
// or a list of content parts (user message with image).
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// contentPart is one element of a multimodal user message.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Transcribe sends the annotated page image with the prompt set and
// returns the raw model output.
func (b *OpenAIBackend) Transcribe(ctx context.Context, page PageRequest) (string, error) {
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(page.Image)

	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: b.Prompts.RolePrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: b.Prompts.UserText(page.RegionNames)},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURI}},
			}},
		},
		Temperature: b.Temperature,
		MaxTokens:   b.MaxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	baseURL := b.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, b.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling model API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}

	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("model API returned no choices")
	}

	return cResp.Choices[0].Message.Content, nil
}
