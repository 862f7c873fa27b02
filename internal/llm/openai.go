package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const summarizeSystemPrompt = "You are a summarization engine. Summarize the user's text. Respond with only the summary, no preamble."

// OpenAIClient implements both capabilities over the chat completions
// API. Generation parameters map onto their chat equivalents; MinLength
// has no counterpart and is ignored.
type OpenAIClient struct {
	client *openai.Client
	model  string
	stats  *Stats
}

func NewOpenAIClient(apiKey, model string, stats *Stats) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		stats:  stats,
	}
}

// Model returns the model identifier this client targets.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Summarize implements Summarizer.
func (c *OpenAIClient) Summarize(ctx context.Context, text string, opts SummarizeOptions) (string, error) {
	var temperature float32
	if opts.Sample {
		temperature = 0.7
	}
	return c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: summarizeSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: text},
	}, opts.MaxNewTokens, temperature)
}

// Generate implements Generator.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	var temperature float32
	if opts.Sample {
		temperature = opts.Temperature
	}
	return c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, opts.MaxNewTokens, temperature)
}

func (c *OpenAIClient) complete(ctx context.Context, messages []openai.ChatCompletionMessage, maxTokens int, temperature float32) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if c.stats != nil {
		c.stats.Record(time.Since(start).Milliseconds(), err == nil)
	}
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai: no text in response")
	}
	return out, nil
}
