package generate

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaConfig holds configuration for the Ollama-backed generator.
type OllamaConfig struct {
	// Model is the model name served by Ollama.
	Model string

	// ServerURL is the Ollama server base URL.
	// Default: http://localhost:11434
	ServerURL string

	// MaxTokens bounds the completion length.
	// Default: 256
	MaxTokens int
}

// ApplyDefaults sets default values for unset fields.
func (c *OllamaConfig) ApplyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:11434"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 256
	}
}

// OllamaGenerator generates completions through a local Ollama server.
//
// Decoding is deterministic: temperature zero, bounded output length and a
// fixed stop word. The model is loaded once by the server and shared; a
// single in-flight generation is the serializing bottleneck, so callers
// should not assume concurrent generations are cheap.
type OllamaGenerator struct {
	llm       *ollama.LLM
	maxTokens int
}

// NewOllamaGenerator creates a generator backed by an Ollama server.
func NewOllamaGenerator(cfg OllamaConfig) (*OllamaGenerator, error) {
	cfg.ApplyDefaults()
	if cfg.Model == "" {
		return nil, fmt.Errorf("generation model required")
	}

	llm, err := ollama.New(
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(cfg.ServerURL),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	return &OllamaGenerator{llm: llm, maxTokens: cfg.MaxTokens}, nil
}

// Generate produces a single completion for the prompt.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(0),
		llms.WithMaxTokens(g.maxTokens),
		llms.WithStopWords([]string{StopMarker}),
	)
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}
	return TruncateAtStop(completion), nil
}

var _ Generator = (*OllamaGenerator)(nil)
