package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"gradeflow/internal/config"
	"gradeflow/internal/providers"
	"gradeflow/internal/session"
	"gradeflow/internal/web"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	pm, err := providers.NewManager(cfg)
	if err != nil {
		log.Fatalf("provider setup failed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	srv := web.NewServer(cfg, pm.FirstLLMProvider(), session.NewMemoryStore(), logger)

	log.Printf("gradeflow listening on %s llm_providers=%q model=%q", cfg.HTTPAddr, cfg.LLMProviders, cfg.OpenAIModel)
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.Routes()); err != nil {
		log.Fatal(err)
	}
}
