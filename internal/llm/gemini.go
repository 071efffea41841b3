package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rotisserie/eris"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete sends the prompt parts in order and returns the response text.
func (c *GeminiClient) Complete(ctx context.Context, prompt *Prompt) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(float32(c.config.Temperature))
	model.SetMaxOutputTokens(int32(c.config.MaxTokens))
	if prompt.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(prompt.System)},
		}
	}

	parts := make([]genai.Part, 0, len(prompt.Blocks))
	for _, b := range prompt.Blocks {
		switch b.Type {
		case BlockTypeImage:
			// genai wants the bare format name, not a full media type.
			format := strings.TrimPrefix(b.MediaType, "image/")
			parts = append(parts, genai.ImageData(format, b.Data))
		default:
			parts = append(parts, genai.Text(b.Text))
		}
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", eris.New("gemini: no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", eris.New("gemini: no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", eris.New("gemini: no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
