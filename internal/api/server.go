package api

import (
	"log/slog"
	"net/http"

	"flashdeck/internal/config"
	"flashdeck/internal/flashcard"
	"flashdeck/internal/llm"
	"flashdeck/internal/summarize"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for flashdeck.
type Server struct {
	router     chi.Router
	summarizer *summarize.Orchestrator
	flashcards *flashcard.Orchestrator
	stats      *llm.Stats
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(summarizer *summarize.Orchestrator, flashcards *flashcard.Orchestrator, stats *llm.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		summarizer: summarizer,
		flashcards: flashcards,
		stats:      stats,
		log:        log,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/summarize", s.handleSummarize)
	r.Post("/flashcards", s.handleFlashcards)
	r.Get("/api/stats/llm", s.handleModelStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
