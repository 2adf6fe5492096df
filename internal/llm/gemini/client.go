package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resumind-backend/internal/llm"
)

const defaultModel = "gemini-2.5-pro"

// Client implements llm.Client using the Google GenAI API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{client: client, model: model}, nil
}

// Feedback sends one analysis request and returns the raw answer envelope.
// Gemini produces the sequence-shaped content variant, one part per
// non-empty candidate part.
func (c *Client) Feedback(ctx context.Context, input llm.FeedbackInput) (*llm.Response, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	prompt := fmt.Sprintf("%s\n\nResume Text:\n%s", input.Instructions, input.ResumeText)

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	var parts []llm.ContentPart
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			parts = append(parts, llm.ContentPart{Text: text})
		}
	}

	if len(parts) == 0 {
		return nil, errors.New("gemini api returned empty response")
	}

	return &llm.Response{
		Message: llm.Message{Content: llm.PartsContent(parts...)},
	}, nil
}

// Model reports the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

var _ llm.Client = (*Client)(nil)
