package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"fx-analysis-bot/internal/analyzer"
	"fx-analysis-bot/internal/dialog"
	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/llm/claude"
	"fx-analysis-bot/internal/llm/llmobs"
	"fx-analysis-bot/internal/llm/noop"
	"fx-analysis-bot/internal/llm/openai"
	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/marketdata"
	"fx-analysis-bot/internal/marketdata/marketobs"
	"fx-analysis-bot/internal/news"
	"fx-analysis-bot/internal/store"
	"fx-analysis-bot/internal/telegram"
)

// app holds the fully wired bot. All dependencies are constructed here
// once and are read-only afterwards.
type app struct {
	client *telegram.Client
	bot    *dialog.Bot
}

func buildApp(ctx context.Context) (*app, error) {
	cfgPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := store.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	// Missing startup credentials are fatal; per-request failures are not.
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN missing")
	}

	client := telegram.New(botToken, os.Getenv("HTTPS_PROXY"), cfg.Telegram.PollTimeoutSeconds)
	fetcher := buildFetcher(ctx, cfg)
	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	an := analyzer.New(fetcher, gen)
	if cfg.News.Enabled {
		scraper := news.NewScraper(time.Duration(cfg.News.TimeoutSeconds) * time.Second)
		an = an.WithHeadlines(scraper, cfg.News.MaxHeadlines)
		logger.Info(ctx, "Headline enrichment enabled", "max_headlines", cfg.News.MaxHeadlines)
	}

	return &app{
		client: client,
		bot:    dialog.New(client, an),
	}, nil
}

func buildFetcher(ctx context.Context, cfg *store.Config) interfaces.Fetcher {
	var fetcher interfaces.Fetcher
	switch cfg.Market.Source {
	case "KLINES":
		fetcher = marketdata.NewKlinesFetcher(cfg.Market.KlinesURL, cfg.Market.BarLimit)
	case "LOCAL":
		fetcher = marketdata.NewLocalFetcher(marketdata.NewKlinesFetcher(cfg.Market.KlinesURL, cfg.Market.BarLimit))
	default:
		fetcher = marketdata.NewScannerFetcher(cfg.Market.ScannerURL, cfg.Market.Exchange, cfg.Market.Screener)
	}
	logger.Info(ctx, "Market data source configured", "source", fetcher.Name())
	return marketobs.Wrap(fetcher)
}

func buildGenerator(ctx context.Context, cfg *store.Config) (interfaces.Generator, error) {
	var gen interfaces.Generator
	switch cfg.LLM.Provider {
	case "OPENAI":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("llm.provider is OPENAI but OPENAI_API_KEY missing")
		}
		gen = openai.NewGenerator(cfg, key, os.Getenv("OPENAI_API_ENDPOINT"))
	case "CLAUDE":
		key := os.Getenv("CLAUDE_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("llm.provider is CLAUDE but CLAUDE_API_KEY missing")
		}
		gen = claude.NewGenerator(cfg, key, os.Getenv("CLAUDE_API_ENDPOINT"))
	default:
		gen = noop.NewGenerator()
		logger.Warn(ctx, "No LLM provider configured, commentary generation is disabled")
	}
	logger.Info(ctx, "Generation backend configured",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"max_tokens", cfg.LLM.MaxTokens,
		"temperature", cfg.Temperature(),
	)
	return llmobs.Wrap(gen), nil
}
