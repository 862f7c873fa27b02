package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"flashdeck/internal/api"
	"flashdeck/internal/config"
	"flashdeck/internal/flashcard"
	"flashdeck/internal/llm"
	"flashdeck/internal/summarize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	stats := llm.NewStats(cfg.StatsWindow)

	summarizerModel, generatorModel, err := llm.NewModels(llm.ProviderOptions{
		Provider:        cfg.ModelProvider,
		APIKey:          cfg.ModelAPIKey,
		BaseURL:         cfg.HFBaseURL,
		SummarizerModel: cfg.SummarizerModel,
		GeneratorModel:  cfg.GeneratorModel,
		Stats:           stats,
	})
	if err != nil {
		log.Error("model setup failed", "error", err)
		os.Exit(1)
	}

	summarizer := summarize.New(summarizerModel, cfg.SummarizeConfig(), log)
	cards := flashcard.New(generatorModel, cfg.FlashcardConfig(), log)

	srv := api.NewServer(summarizer, cards, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting flashdeck",
		"port", cfg.Port,
		"provider", cfg.ModelProvider,
		"summarizer_model", cfg.SummarizerModel,
		"generator_model", cfg.GeneratorModel,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
