package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// AnthropicClient implements Client using the official anthropic-sdk-go.
type AnthropicClient struct {
	client sdk.Client
	config *Config
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(config *Config, apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &AnthropicClient{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		config: config,
	}, nil
}

// Complete sends the prompt as a single user message and returns the
// concatenated text of the response.
func (c *AnthropicClient) Complete(ctx context.Context, prompt *Prompt) (string, error) {
	blocks := make([]sdk.ContentBlockParamUnion, 0, len(prompt.Blocks))
	for _, b := range prompt.Blocks {
		switch b.Type {
		case BlockTypeImage:
			encoded := base64.StdEncoding.EncodeToString(b.Data)
			blocks = append(blocks, sdk.NewImageBlockBase64(b.MediaType, encoded))
		default:
			blocks = append(blocks, sdk.NewTextBlock(b.Text))
		}
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.config.Model),
		MaxTokens:   c.config.MaxTokens,
		Temperature: sdk.Float(c.config.Temperature),
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(blocks...)},
	}
	if prompt.System != "" {
		params.System = []sdk.TextBlockParam{{Text: prompt.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var text string
	for _, block := range msg.Content {
		text += block.Text
	}
	if text == "" {
		return "", eris.New("anthropic: no text content in response")
	}

	return text, nil
}

// Close is a no-op; the SDK client holds no long-lived resources.
func (c *AnthropicClient) Close() error {
	return nil
}
