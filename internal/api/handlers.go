package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"flashdeck/internal/extractor"
	"flashdeck/internal/flashcard"
	"flashdeck/internal/summarize"
	"flashdeck/internal/textutil"
)

// textInput is the request body for /summarize and /flashcards.
type textInput struct {
	Text string `json:"text"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var text string

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		ex, err := extractor.ForUpload(header.Filename, contentType)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
		if err != nil {
			jsonError(w, "failed to read file", http.StatusInternalServerError)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}

		text, err = ex.Extract(data)
		if err != nil {
			jsonError(w, "error processing document: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		text = r.FormValue("text")
		if text == "" {
			jsonError(w, "either file or text must be provided", http.StatusBadRequest)
			return
		}
	}

	text = textutil.Normalize(text)
	if text == "" {
		jsonError(w, "no text content found", http.StatusBadRequest)
		return
	}

	wordCount := textutil.WordCount(text)
	if wordCount > s.cfg.MaxWords {
		jsonError(w, fmt.Sprintf(
			"text is too large: maximum %d words allowed, received %d", s.cfg.MaxWords, wordCount),
			http.StatusRequestEntityTooLarge)
		return
	}

	s.log.Info("document processed", "words", wordCount, "chars", len(text))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"text":       text,
		"word_count": wordCount,
		"char_count": len(text),
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var input textInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.summarizer.Summarize(r.Context(), input.Text)
	if err != nil {
		if errors.Is(err, summarize.ErrEmptyText) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("summarization failed", "error", err)
		jsonError(w, "summary generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"summary":         res.Summary,
		"original_length": res.OriginalWords,
		"summary_length":  res.SummaryWords,
	})
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	var input textInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	numCards := flashcard.DefaultCards
	if v := r.URL.Query().Get("num_cards"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "num_cards must be an integer", http.StatusBadRequest)
			return
		}
		numCards = n
	}

	cards, err := s.flashcards.Generate(r.Context(), input.Text, numCards)
	if err != nil {
		switch {
		case errors.Is(err, flashcard.ErrBadCardCount), errors.Is(err, flashcard.ErrEmptyText):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			s.log.Error("flashcard generation failed", "error", err)
			jsonError(w, "flashcard generation failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"flashcards":  cards,
		"total_count": len(cards),
	})
}

func (s *Server) handleModelStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "model stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"summarizer_model": s.cfg.SummarizerModel,
		"generator_model":  s.cfg.GeneratorModel,
		"stats":            s.stats.Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
