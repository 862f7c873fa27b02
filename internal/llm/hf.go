package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHFBaseURL is the hosted Inference API endpoint.
const DefaultHFBaseURL = "https://api-inference.huggingface.co"

// HFClient calls a single model on the Hugging Face Inference API.
// It serves both pipeline shapes: summarization models return
// summary_text, text2text-generation models return generated_text.
type HFClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	stats      *Stats
}

func NewHFClient(baseURL, apiKey, model string, stats *Stats) *HFClient {
	if baseURL == "" {
		baseURL = DefaultHFBaseURL
	}
	return &HFClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		stats:   stats,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Model returns the model identifier this client targets.
func (c *HFClient) Model() string {
	return c.model
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	MinLength    int     `json:"min_length,omitempty"`
	DoSample     bool    `json:"do_sample"`
	Temperature  float32 `json:"temperature,omitempty"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfResult struct {
	SummaryText   string `json:"summary_text"`
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// Summarize implements Summarizer.
func (c *HFClient) Summarize(ctx context.Context, text string, opts SummarizeOptions) (string, error) {
	return c.run(ctx, text, hfParameters{
		MaxNewTokens: opts.MaxNewTokens,
		MinLength:    opts.MinLength,
		DoSample:     opts.Sample,
	})
}

// Generate implements Generator.
func (c *HFClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	return c.run(ctx, prompt, hfParameters{
		MaxNewTokens: opts.MaxNewTokens,
		DoSample:     opts.Sample,
		Temperature:  opts.Temperature,
	})
}

func (c *HFClient) run(ctx context.Context, inputs string, params hfParameters) (string, error) {
	start := time.Now()
	out, err := c.doRequest(ctx, inputs, params)
	if c.stats != nil {
		c.stats.Record(time.Since(start).Milliseconds(), err == nil)
	}
	return out, err
}

func (c *HFClient) doRequest(ctx context.Context, inputs string, params hfParameters) (string, error) {
	reqBody := hfRequest{
		Inputs:     inputs,
		Parameters: params,
		Options:    hfOptions{WaitForModel: true},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/models/" + c.model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("inference api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("inference api status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("inference api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var results []hfResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("decode response: %w (raw: %s)", err, truncate(string(respBody), 200))
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty response from model %s", c.model)
	}

	out := results[0].SummaryText
	if out == "" {
		out = results[0].GeneratedText
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("model %s returned no text", c.model)
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases idle connections.
func (c *HFClient) Close() {
	c.httpClient.CloseIdleConnections()
}
