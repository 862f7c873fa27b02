// Package llm provides the external model capabilities the service
// orchestrates: abstractive summarization and prompted text generation.
// Models are opaque remote endpoints; given text and generation
// parameters they return text.
package llm

import "context"

// SummarizeOptions are the generation parameters for a summarization
// call, mirroring the underlying pipeline's knobs.
type SummarizeOptions struct {
	MaxNewTokens int
	MinLength    int
	Sample       bool
}

// GenerateOptions are the generation parameters for a prompted
// text-generation call.
type GenerateOptions struct {
	MaxNewTokens int
	Temperature  float32
	Sample       bool
}

// Summarizer produces a shorter text from a longer one.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts SummarizeOptions) (string, error)
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
