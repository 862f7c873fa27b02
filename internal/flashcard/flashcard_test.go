package flashcard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"flashdeck/internal/llm"
)

type stubGenerator struct {
	prompts []string
	fn      func(prompt string, opts llm.GenerateOptions) (string, error)
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.fn(prompt, opts)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tenSentences() string {
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "Sentence number %d carries some distinct content. ", i)
	}
	return b.String()
}

func TestGenerate_ReturnsRequestedCount(t *testing.T) {
	stub := &stubGenerator{fn: func(prompt string, opts llm.GenerateOptions) (string, error) {
		return "What is this about", nil
	}}
	o := New(stub, DefaultConfig(), testLogger())

	cards, err := o.Generate(context.Background(), tenSentences(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(cards))
	}
	for i, c := range cards {
		if c.Question == "" || !strings.HasSuffix(c.Question, "?") {
			t.Errorf("card %d: bad question %q", i, c.Question)
		}
		if c.Answer == "" {
			t.Errorf("card %d: empty answer", i)
		}
	}
}

func TestGenerate_PromptsRotate(t *testing.T) {
	stub := &stubGenerator{fn: func(string, llm.GenerateOptions) (string, error) {
		return "A question?", nil
	}}
	o := New(stub, DefaultConfig(), testLogger())

	if _, err := o.Generate(context.Background(), tenSentences(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.prompts) != 5 {
		t.Fatalf("expected 5 generation calls, got %d", len(stub.prompts))
	}
	prefixes := []string{
		"Create a question about this information:",
		"What question would test understanding of:",
		"Generate a quiz question for:",
		"Ask about the key point in:",
		"What would you ask to test knowledge of:",
	}
	for i, p := range stub.prompts {
		if !strings.HasPrefix(p, prefixes[i]) {
			t.Errorf("prompt %d: expected prefix %q, got %q", i, prefixes[i], p)
		}
	}
}

func TestGenerate_LongAnswerCompressed(t *testing.T) {
	longSentence := "This answer " + strings.Repeat("keeps going and going ", 10) + "until it is far past the threshold"
	stub := &stubGenerator{fn: func(prompt string, opts llm.GenerateOptions) (string, error) {
		if strings.HasPrefix(prompt, "Summarize this in one sentence:") {
			if opts.Sample || opts.MaxNewTokens != 30 {
				t.Errorf("unexpected compression options: %+v", opts)
			}
			return "a concise answer", nil
		}
		return "What goes on and on", nil
	}}
	o := New(stub, DefaultConfig(), testLogger())

	cards, err := o.Generate(context.Background(), longSentence+".", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cards[0].Answer != "a concise answer" {
		t.Errorf("expected compressed answer, got %q", cards[0].Answer)
	}
}

func TestGenerate_FallbackFillInTheBlank(t *testing.T) {
	stub := &stubGenerator{fn: func(string, llm.GenerateOptions) (string, error) {
		return "", errors.New("model down")
	}}
	o := New(stub, DefaultConfig(), testLogger())

	text := "The mitochondria is the powerhouse of the cell."
	cards, err := o.Generate(context.Background(), text, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := cards[0]
	if !strings.HasPrefix(c.Question, "Fill in the blank:") {
		t.Fatalf("expected fill-in-the-blank question, got %q", c.Question)
	}
	if !strings.Contains(c.Question, "_____") {
		t.Errorf("question missing blank marker: %q", c.Question)
	}
	// The answer is the removed middle word.
	words := strings.Fields("The mitochondria is the powerhouse of the cell")
	if c.Answer != words[len(words)/2] {
		t.Errorf("expected middle word %q, got %q", words[len(words)/2], c.Answer)
	}
}

func TestGenerate_ShortPieceGetsPlaceholderCard(t *testing.T) {
	stub := &stubGenerator{fn: func(string, llm.GenerateOptions) (string, error) {
		return "", errors.New("model down")
	}}
	o := New(stub, DefaultConfig(), testLogger())

	cards, err := o.Generate(context.Background(), "Water boils hot.", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := cards[0]
	if !strings.HasPrefix(c.Question, "What does this statement describe:") {
		t.Errorf("expected generic placeholder question, got %q", c.Question)
	}
	if c.Answer != placeholderAnswer {
		t.Errorf("expected placeholder answer, got %q", c.Answer)
	}
}

func TestGenerate_BackfillFromUnusedSentences(t *testing.T) {
	// Question generation succeeds only for the first piece; fallback
	// cards consume their pieces, and backfill tops up from sentences
	// not yet used as answers.
	stub := &stubGenerator{fn: func(string, llm.GenerateOptions) (string, error) {
		return "Solid question", nil
	}}
	o := New(stub, DefaultConfig(), testLogger())

	// Two sentences but four cards requested: selection falls back to
	// chunks, then backfill fills from sentences.
	text := "Photosynthesis converts light into chemical energy. Respiration releases that energy."
	cards, err := o.Generate(context.Background(), text, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) < 1 || len(cards) > 4 {
		t.Fatalf("unexpected card count %d", len(cards))
	}
	for _, c := range cards {
		if c.Question == "" || c.Answer == "" {
			t.Errorf("incomplete card %+v", c)
		}
	}
}

func TestGenerate_CardCountBounds(t *testing.T) {
	stub := &stubGenerator{fn: func(string, llm.GenerateOptions) (string, error) {
		return "Q", nil
	}}
	o := New(stub, DefaultConfig(), testLogger())
	text := tenSentences()

	for _, n := range []int{0, 11, -1} {
		if _, err := o.Generate(context.Background(), text, n); !errors.Is(err, ErrBadCardCount) {
			t.Errorf("num_cards=%d: expected ErrBadCardCount, got %v", n, err)
		}
	}
	for _, n := range []int{1, 10} {
		cards, err := o.Generate(context.Background(), text, n)
		if err != nil {
			t.Errorf("num_cards=%d: unexpected error: %v", n, err)
			continue
		}
		if len(cards) != n {
			t.Errorf("num_cards=%d: got %d cards", n, len(cards))
		}
	}
}

func TestGenerate_EmptyAndNilModel(t *testing.T) {
	o := New(&stubGenerator{fn: func(string, llm.GenerateOptions) (string, error) {
		return "Q", nil
	}}, DefaultConfig(), testLogger())
	if _, err := o.Generate(context.Background(), "  ", 5); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	o = New(nil, DefaultConfig(), testLogger())
	if _, err := o.Generate(context.Background(), "text", 5); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestQuestionPromptRotation(t *testing.T) {
	a := QuestionPrompt("content", 0)
	b := QuestionPrompt("content", 5)
	if a != b {
		t.Errorf("index 0 and 5 should use the same template: %q vs %q", a, b)
	}
	if QuestionPrompt("content", 1) == a {
		t.Error("adjacent indexes should rotate templates")
	}
}
