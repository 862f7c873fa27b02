package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"flashdeck/internal/flashcard"
	"flashdeck/internal/summarize"
)

type Config struct {
	Port string

	// Model provider
	ModelProvider   string
	ModelAPIKey     string
	HFBaseURL       string
	SummarizerModel string
	GeneratorModel  string

	// Upload limits
	MaxUploadBytes int64
	MaxWords       int

	// Summarization orchestration
	MaxInputChars    int
	ChunkWords       int
	ChunkOverlap     int
	CombineWordLimit int
	TruncateWords    int

	// Flashcard orchestration
	PieceChars     int
	AnswerMaxChars int

	// Model-call stats window
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8000"),

		ModelProvider:   envOr("MODEL_PROVIDER", "huggingface"),
		ModelAPIKey:     os.Getenv("MODEL_API_KEY"),
		HFBaseURL:       os.Getenv("HF_BASE_URL"),
		SummarizerModel: envOr("SUMMARIZER_MODEL", "facebook/bart-large-cnn"),
		GeneratorModel:  envOr("GENERATOR_MODEL", "google/flan-t5-base"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
		MaxWords:       envInt("MAX_WORDS", 5000),

		MaxInputChars:    envInt("MAX_INPUT_CHARS", 2048),
		ChunkWords:       envInt("CHUNK_WORDS", 2048),
		ChunkOverlap:     envInt("CHUNK_OVERLAP", 100),
		CombineWordLimit: envInt("COMBINE_WORD_LIMIT", 300),
		TruncateWords:    envInt("TRUNCATE_WORDS", 200),

		PieceChars:     envInt("PIECE_CHARS", 200),
		AnswerMaxChars: envInt("ANSWER_MAX_CHARS", 150),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 5000
	}
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = 2048
	}
	if cfg.ChunkWords <= 0 {
		cfg.ChunkWords = 2048
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 100
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	switch strings.ToLower(c.ModelProvider) {
	case "huggingface", "hf", "":
		// The hosted inference API accepts anonymous requests; a
		// missing MODEL_API_KEY only means tighter rate limits.
	case "openai":
		if c.ModelAPIKey == "" {
			return fmt.Errorf("MODEL_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER: %s", c.ModelProvider)
	}
	if c.ChunkOverlap >= c.ChunkWords {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_WORDS (%d)", c.ChunkOverlap, c.ChunkWords)
	}
	return nil
}

// SummarizeConfig maps the loaded values onto the summarization
// orchestrator's bounds.
func (c Config) SummarizeConfig() summarize.Config {
	return summarize.Config{
		MaxInputChars:    c.MaxInputChars,
		ChunkWords:       c.ChunkWords,
		OverlapWords:     c.ChunkOverlap,
		CombineWordLimit: c.CombineWordLimit,
		TruncateWords:    c.TruncateWords,
	}
}

// FlashcardConfig maps the loaded values onto the flashcard
// orchestrator's bounds.
func (c Config) FlashcardConfig() flashcard.Config {
	return flashcard.Config{
		PieceChars:     c.PieceChars,
		AnswerMaxChars: c.AnswerMaxChars,
		BlankMinWords:  5,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
