// Package flashcard orchestrates question/answer card generation:
// content pieces are selected to spread across the document, questions
// come from an external generation capability, and every model failure
// degrades to a deterministic templated card.
package flashcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"flashdeck/internal/llm"
	"flashdeck/internal/textutil"
)

// Card count bounds for a single request.
const (
	MinCards     = 1
	MaxCards     = 10
	DefaultCards = 5
)

var (
	// ErrEmptyText means there was nothing to build cards from.
	ErrEmptyText = errors.New("text content is required")
	// ErrModelUnavailable means no generation capability was configured.
	ErrModelUnavailable = errors.New("generation model not available")
	// ErrBadCardCount means the requested count is outside [MinCards, MaxCards].
	ErrBadCardCount = fmt.Errorf("number of cards must be between %d and %d", MinCards, MaxCards)
)

// placeholderAnswer backs the generic fallback card for pieces too
// short for blank extraction.
const placeholderAnswer = "The information provided in the text."

const backfillQuestion = "What information is provided about this topic?"

// Card is a question/answer pair.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// cardSource records how a card was produced.
type cardSource string

const (
	sourceGenerated cardSource = "generated"
	sourceFallback  cardSource = "fallback"
	sourceBackfill  cardSource = "backfill"
)

// cardResult is the per-piece outcome: a card plus how it came to be
// and, for fallbacks, why generation failed.
type cardResult struct {
	card   Card
	source cardSource
	reason error
}

// Config bounds content selection and answer compression.
type Config struct {
	PieceChars     int // chunk size when sentences are scarce
	AnswerMaxChars int // answers longer than this get compressed
	BlankMinWords  int // pieces with more words than this get blank extraction
}

func DefaultConfig() Config {
	return Config{
		PieceChars:     200,
		AnswerMaxChars: 150,
		BlankMinWords:  5,
	}
}

// Orchestrator drives card generation against an external generation
// capability.
type Orchestrator struct {
	model llm.Generator
	cfg   Config
	log   *slog.Logger
}

func New(model llm.Generator, cfg Config, log *slog.Logger) *Orchestrator {
	if cfg.PieceChars <= 0 {
		cfg = DefaultConfig()
	}
	return &Orchestrator{model: model, cfg: cfg, log: log}
}

// Generate produces up to numCards question/answer pairs from text.
// Fewer cards are returned only when the text has too little content.
func (o *Orchestrator) Generate(ctx context.Context, text string, numCards int) ([]Card, error) {
	if o.model == nil {
		return nil, ErrModelUnavailable
	}
	if numCards < MinCards || numCards > MaxCards {
		return nil, ErrBadCardCount
	}
	text = textutil.Normalize(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	sentences := textutil.SplitSentences(text)
	pieces := o.selectPieces(text, sentences, numCards)

	results := make([]cardResult, 0, len(pieces))
	for i, piece := range pieces {
		results = append(results, o.buildCard(ctx, piece, i))
	}

	cards := make([]Card, 0, numCards)
	usedAnswers := make(map[string]bool)
	for _, r := range results {
		if r.source == sourceFallback {
			o.log.Warn("flashcard generation fell back", "error", r.reason)
		}
		cards = append(cards, r.card)
		usedAnswers[r.card.Answer] = true
	}

	// Backfill from sentences not yet used as an answer.
	for _, s := range sentences {
		if len(cards) >= numCards {
			break
		}
		if usedAnswers[s] {
			continue
		}
		cards = append(cards, Card{Question: backfillQuestion, Answer: s})
		usedAnswers[s] = true
	}

	if len(cards) > numCards {
		cards = cards[:numCards]
	}
	if len(cards) == 0 {
		return nil, ErrEmptyText
	}
	return cards, nil
}

// selectPieces picks numCards content pieces. With enough sentences it
// strides through them to spread coverage across the document;
// otherwise it falls back to small fixed-size chunks.
func (o *Orchestrator) selectPieces(text string, sentences []string, numCards int) []string {
	if len(sentences) < numCards {
		pieces := textutil.ChunkByChars(text, o.cfg.PieceChars)
		if len(pieces) > numCards {
			pieces = pieces[:numCards]
		}
		return pieces
	}

	step := len(sentences) / numCards
	if step < 1 {
		step = 1
	}
	var pieces []string
	for i := 0; i < len(sentences) && len(pieces) < numCards; i += step {
		pieces = append(pieces, sentences[i])
	}
	return pieces
}

// buildCard generates one card for a content piece, degrading to a
// deterministic fallback card when any model call fails.
func (o *Orchestrator) buildCard(ctx context.Context, piece string, index int) cardResult {
	question, err := o.model.Generate(ctx, QuestionPrompt(piece, index), llm.GenerateOptions{
		MaxNewTokens: 50,
		Temperature:  0.8,
		Sample:       true,
	})
	if err != nil {
		return cardResult{card: o.fallbackCard(piece), source: sourceFallback, reason: err}
	}
	question = strings.TrimSpace(question)
	if !strings.HasSuffix(question, "?") {
		question += "?"
	}

	answer := piece
	if len(answer) > o.cfg.AnswerMaxChars {
		compressed, err := o.model.Generate(ctx, answerPrompt(piece), llm.GenerateOptions{
			MaxNewTokens: 30,
			Temperature:  0.3,
		})
		if err != nil {
			return cardResult{card: o.fallbackCard(piece), source: sourceFallback, reason: err}
		}
		answer = strings.TrimSpace(compressed)
	}

	return cardResult{card: Card{Question: question, Answer: answer}, source: sourceGenerated}
}

// fallbackCard builds a card without the model: a fill-in-the-blank
// question around the piece's middle word, or a generic templated
// question when the piece is too short to blank out.
func (o *Orchestrator) fallbackCard(piece string) Card {
	words := strings.Fields(piece)
	if len(words) > o.cfg.BlankMinWords {
		keyWord := words[len(words)/2]
		blanked := strings.Replace(piece, keyWord, "_____", 1)
		return Card{
			Question: fmt.Sprintf("Fill in the blank: %s?", blanked),
			Answer:   keyWord,
		}
	}
	return Card{
		Question: fmt.Sprintf("What does this statement describe: '%s'?", piece),
		Answer:   placeholderAnswer,
	}
}
