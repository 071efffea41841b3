// Package llm provides the multimodal model client used to generate website
// clones, with support for multiple providers.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderAnthropic is the Anthropic/Claude provider (default)
	ProviderAnthropic Provider = "anthropic"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for clone generation.
type Config struct {
	Provider    Provider
	Model       string
	MaxTokens   int64
	Temperature float64
}

// DefaultConfig returns the default configuration (currently Anthropic).
func DefaultConfig() *Config {
	return DefaultAnthropicConfig()
}

// DefaultAnthropicConfig returns the default Anthropic configuration.
func DefaultAnthropicConfig() *Config {
	return &Config{
		Provider:    ProviderAnthropic,
		Model:       "claude-sonnet-4-5-20250929",
		MaxTokens:   4000,
		Temperature: 0.2,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		MaxTokens:   4000,
		Temperature: 0.2,
	}
}
