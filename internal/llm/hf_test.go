package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHFClientSummarize(t *testing.T) {
	var gotPath string
	var gotReq hfRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header, got %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode([]map[string]string{{"summary_text": "a short summary"}})
	}))
	defer srv.Close()

	stats := NewStats(time.Hour)
	c := NewHFClient(srv.URL, "test-key", "facebook/bart-large-cnn", stats)

	out, err := c.Summarize(context.Background(), "long input text", SummarizeOptions{
		MaxNewTokens: 150,
		MinLength:    40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a short summary" {
		t.Errorf("got %q", out)
	}
	if gotPath != "/models/facebook/bart-large-cnn" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotReq.Inputs != "long input text" {
		t.Errorf("unexpected inputs %q", gotReq.Inputs)
	}
	if gotReq.Parameters.MaxNewTokens != 150 || gotReq.Parameters.MinLength != 40 {
		t.Errorf("parameters not forwarded: %+v", gotReq.Parameters)
	}
	if gotReq.Parameters.DoSample {
		t.Error("expected do_sample=false")
	}
	if snap := stats.Snapshot(); snap.Count != 1 || snap.Failures != 0 {
		t.Errorf("expected one successful sample, got %+v", snap)
	}
}

func TestHFClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req hfRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !req.Parameters.DoSample {
			t.Error("expected do_sample=true")
		}
		if req.Parameters.Temperature != 0.8 {
			t.Errorf("expected temperature 0.8, got %v", req.Parameters.Temperature)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"generated_text": "What is a fox"}})
	}))
	defer srv.Close()

	c := NewHFClient(srv.URL, "", "google/flan-t5-base", nil)
	out, err := c.Generate(context.Background(), "Create a question", GenerateOptions{
		MaxNewTokens: 50,
		Temperature:  0.8,
		Sample:       true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "What is a fox" {
		t.Errorf("got %q", out)
	}
}

func TestHFClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "model is loading"})
	}))
	defer srv.Close()

	stats := NewStats(time.Hour)
	c := NewHFClient(srv.URL, "", "some/model", stats)
	_, err := c.Summarize(context.Background(), "text", SummarizeOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if snap := stats.Snapshot(); snap.Failures != 1 {
		t.Errorf("expected one failure recorded, got %+v", snap)
	}
}

func TestHFClientEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer srv.Close()

	c := NewHFClient(srv.URL, "", "some/model", nil)
	if _, err := c.Summarize(context.Background(), "text", SummarizeOptions{}); err == nil {
		t.Fatal("expected error for empty result array")
	}
}

func TestNewModelsProviderSelection(t *testing.T) {
	s, g, err := NewModels(ProviderOptions{
		Provider:        "huggingface",
		SummarizerModel: "facebook/bart-large-cnn",
		GeneratorModel:  "google/flan-t5-base",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*HFClient); !ok {
		t.Errorf("expected HFClient summarizer, got %T", s)
	}
	if g.(*HFClient).Model() != "google/flan-t5-base" {
		t.Errorf("generator bound to wrong model: %s", g.(*HFClient).Model())
	}

	s, g, err = NewModels(ProviderOptions{Provider: "openai", SummarizerModel: "gpt-4o-mini", GeneratorModel: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*OpenAIClient); !ok {
		t.Errorf("expected OpenAIClient, got %T", s)
	}
	_ = g

	if _, _, err := NewModels(ProviderOptions{Provider: "llamafarm"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
