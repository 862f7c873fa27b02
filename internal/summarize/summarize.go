// Package summarize orchestrates abstractive summarization: one model
// pass for short texts, chunk-summarize-recombine for long ones, with
// deterministic fallbacks keeping forward progress under partial model
// failure.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"flashdeck/internal/llm"
	"flashdeck/internal/textutil"
)

var (
	// ErrEmptyText means there was nothing to summarize.
	ErrEmptyText = errors.New("text content is required")
	// ErrModelUnavailable means no summarization capability was configured.
	ErrModelUnavailable = errors.New("summarization model not available")
	// ErrAllChunksFailed means every per-chunk model call failed.
	ErrAllChunksFailed = errors.New("failed to summarize any text chunk")
)

// Config bounds the orchestration.
type Config struct {
	MaxInputChars    int // single-pass input budget, characters
	ChunkWords       int // overlapping chunk size, words
	OverlapWords     int // words shared between consecutive chunks
	CombineWordLimit int // meta-summarize when the joined chunk summaries exceed this
	TruncateWords    int // truncation size when the meta call fails
}

func DefaultConfig() Config {
	return Config{
		MaxInputChars:    2048,
		ChunkWords:       2048,
		OverlapWords:     100,
		CombineWordLimit: 300,
		TruncateWords:    200,
	}
}

// Result is a produced summary with its length accounting.
type Result struct {
	Summary       string
	OriginalWords int
	SummaryWords  int
}

// Orchestrator drives the summarization policy against an external
// summarization capability.
type Orchestrator struct {
	model llm.Summarizer
	cfg   Config
	log   *slog.Logger
}

func New(model llm.Summarizer, cfg Config, log *slog.Logger) *Orchestrator {
	if cfg.MaxInputChars <= 0 {
		cfg = DefaultConfig()
	}
	return &Orchestrator{model: model, cfg: cfg, log: log}
}

// chunkResult is the outcome for one chunk: a model summary, or the
// chunk's leading sentences when the model call failed.
type chunkResult struct {
	text     string
	fallback bool
	reason   error
}

// Summarize produces a single summary for text. The returned summary is
// non-empty unless the text was empty or every chunk and the meta pass
// failed.
func (o *Orchestrator) Summarize(ctx context.Context, text string) (Result, error) {
	if o.model == nil {
		return Result{}, ErrModelUnavailable
	}
	text = textutil.Normalize(text)
	if text == "" {
		return Result{}, ErrEmptyText
	}
	originalWords := textutil.WordCount(text)

	if len(text) <= o.cfg.MaxInputChars {
		summary, err := o.model.Summarize(ctx, text, llm.SummarizeOptions{
			MaxNewTokens: 150,
			MinLength:    40,
		})
		if err != nil {
			return Result{}, fmt.Errorf("summarization failed: %w", err)
		}
		return o.result(summary, originalWords), nil
	}

	chunks := textutil.ChunkWordsOverlap(text, o.cfg.ChunkWords, o.cfg.OverlapWords)
	o.log.Info("summarizing in chunks", "chunks", len(chunks), "words", originalWords)

	results := o.summarizeChunks(ctx, chunks)
	failed := 0
	var parts []string
	for _, r := range results {
		if r.fallback {
			failed++
		}
		if r.text != "" {
			parts = append(parts, r.text)
		}
	}
	if failed == len(results) {
		return Result{}, ErrAllChunksFailed
	}

	combined := strings.Join(parts, " ")
	if textutil.WordCount(combined) > o.cfg.CombineWordLimit {
		combined = o.metaSummarize(ctx, combined)
	}

	return o.result(combined, originalWords), nil
}

func (o *Orchestrator) summarizeChunks(ctx context.Context, chunks []string) []chunkResult {
	results := make([]chunkResult, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := o.model.Summarize(ctx, chunk, llm.SummarizeOptions{
			MaxNewTokens: 120,
			MinLength:    30,
		})
		if err != nil {
			o.log.Warn("chunk summarization failed, using leading sentences",
				"chunk", i+1, "of", len(chunks), "error", err)
			results = append(results, chunkResult{
				text:     textutil.FirstSentences(chunk, 3),
				fallback: true,
				reason:   err,
			})
			continue
		}
		results = append(results, chunkResult{text: summary})
	}
	return results
}

// metaSummarize compresses the concatenated chunk summaries with one
// more model call, or truncates when that call fails.
func (o *Orchestrator) metaSummarize(ctx context.Context, combined string) string {
	input := combined
	if len(input) > o.cfg.MaxInputChars {
		input = input[:o.cfg.MaxInputChars]
	}
	summary, err := o.model.Summarize(ctx,
		"Provide a comprehensive summary of the following key points: "+input,
		llm.SummarizeOptions{MaxNewTokens: 200, MinLength: 60})
	if err != nil {
		o.log.Warn("meta summarization failed, truncating", "error", err)
		words := strings.Fields(combined)
		if len(words) > o.cfg.TruncateWords {
			return strings.Join(words[:o.cfg.TruncateWords], " ") + "..."
		}
		return combined
	}
	return summary
}

func (o *Orchestrator) result(summary string, originalWords int) Result {
	return Result{
		Summary:       summary,
		OriginalWords: originalWords,
		SummaryWords:  textutil.WordCount(summary),
	}
}
