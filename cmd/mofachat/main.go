package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"mofachat/internal/chat"
	"mofachat/internal/config"
	"mofachat/internal/embedding/openai"
	"mofachat/internal/ingest"
	"mofachat/internal/llm"
	"mofachat/internal/logger"
	"mofachat/internal/parser"
	"mofachat/internal/retrieval"
	"mofachat/internal/store/memory"
	"mofachat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		debug   bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/mofachat/config.yaml if not provided)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger.Init(debug)
	if !debug {
		// keep the terminal clean for the TUI
		logger.SetOutput(io.Discard)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	apiKey := os.Getenv(cfg.API.APIKeyEnv)
	if apiKey == "" {
		log.Fatalf("missing API key in env %s", cfg.API.APIKeyEnv)
	}
	timeout := time.Duration(cfg.API.TimeoutSecs) * time.Second

	embedder, err := openai.NewClient(openai.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  apiKey,
		Model:   cfg.Embedding.Model,
		Timeout: timeout,
	})
	if err != nil {
		log.Fatalf("embedding client init failed: %v", err)
	}

	completer, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.API.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.Chat.Model,
		Temperature: *cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
		Timeout:     timeout,
	})
	if err != nil {
		log.Fatalf("chat client init failed: %v", err)
	}

	store := memory.NewStore()
	ingester := ingest.New(parser.New(), embedder, store, cfg.Ingest.DocsDir, cfg.Ingest.CorpusPath, cfg.Ingest.Concurrency)
	report, err := ingester.Run(context.Background())
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	session := chat.NewSession(
		retrieval.NewEngine(embedder, store),
		completer,
		chat.Options{
			SystemPrompt: chat.SystemPrompt(chat.Profile{
				Name:        cfg.Profile.Name,
				Citizenship: cfg.Profile.Citizenship,
				Age:         cfg.Profile.Age,
			}),
			HistoryWindow: cfg.Chat.HistoryWindow,
			TopK:          cfg.Retrieval.TopK,
			MinScore:      *cfg.Retrieval.MinScore,
		},
	)

	banner := fmt.Sprintf("Loaded %d documents (%d skipped). Model: %s", report.Loaded, report.Skipped, cfg.Chat.Model)
	m := tui.New(session, banner)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
