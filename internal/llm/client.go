package llm

import (
	"context"
	"fmt"
)

// BlockType discriminates prompt content blocks.
type BlockType string

// Block types supported in a prompt.
const (
	BlockTypeText  BlockType = "text"
	BlockTypeImage BlockType = "image"
)

// Block is one ordered piece of prompt content: either text, or an inlined
// image with an explicit media type.
type Block struct {
	Type      BlockType
	Text      string
	MediaType string
	Data      []byte
}

// TextBlock returns a text content block.
func TextBlock(text string) Block {
	return Block{Type: BlockTypeText, Text: text}
}

// ImageBlock returns an inlined image content block.
func ImageBlock(mediaType string, data []byte) Block {
	return Block{Type: BlockTypeImage, MediaType: mediaType, Data: data}
}

// Prompt is a multimodal instruction payload: a fixed system instruction
// plus an ordered sequence of content blocks. Built fresh per request, never
// persisted.
type Prompt struct {
	System string
	Blocks []Block
}

// Client is an abstraction over multimodal LLM providers.
type Client interface {
	// Complete sends the prompt and returns the model's raw text output.
	Complete(ctx context.Context, prompt *Prompt) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new LLM client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
