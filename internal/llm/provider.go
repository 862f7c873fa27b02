package llm

import (
	"fmt"
	"strings"
)

// ProviderOptions selects and configures the model backend.
type ProviderOptions struct {
	Provider        string // "huggingface" (default) or "openai"
	APIKey          string
	BaseURL         string // inference endpoint override, huggingface only
	SummarizerModel string
	GeneratorModel  string
	Stats           *Stats
}

// NewModels constructs the summarization and generation capabilities
// for the configured provider. Both handles are immutable after
// construction and safe for concurrent use.
func NewModels(opts ProviderOptions) (Summarizer, Generator, error) {
	switch strings.ToLower(opts.Provider) {
	case "huggingface", "hf", "":
		s := NewHFClient(opts.BaseURL, opts.APIKey, opts.SummarizerModel, opts.Stats)
		g := NewHFClient(opts.BaseURL, opts.APIKey, opts.GeneratorModel, opts.Stats)
		return s, g, nil
	case "openai":
		s := NewOpenAIClient(opts.APIKey, opts.SummarizerModel, opts.Stats)
		g := NewOpenAIClient(opts.APIKey, opts.GeneratorModel, opts.Stats)
		return s, g, nil
	default:
		return nil, nil, fmt.Errorf("unknown model provider: %s", opts.Provider)
	}
}
