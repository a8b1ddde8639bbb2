package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		PollTimeoutSeconds int `yaml:"poll_timeout_seconds"`
	} `yaml:"telegram"`
	Market struct {
		Source     string `yaml:"source"` // SCANNER, KLINES or LOCAL
		ScannerURL string `yaml:"scanner_url"`
		KlinesURL  string `yaml:"klines_url"`
		Exchange   string `yaml:"exchange"`
		Screener   string `yaml:"screener"`
		BarLimit   int    `yaml:"bar_limit"`
	} `yaml:"market"`
	LLM struct {
		Provider  string `yaml:"provider"` // OPENAI, CLAUDE or NOOP
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
		// Pointer so an explicit 0 survives defaulting
		Temperature *float32 `yaml:"temperature"`
		System      string   `yaml:"system"`
	} `yaml:"llm"`
	News struct {
		Enabled        bool `yaml:"enabled"`
		MaxHeadlines   int  `yaml:"max_headlines"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"news"`
}

// Temperature returns the generation temperature, defaulting to 0.5
// when the config never set one.
func (c *Config) Temperature() float32 {
	if c.LLM.Temperature == nil {
		return 0.5
	}
	return *c.LLM.Temperature
}

func (c *Config) Validate() error {
	switch c.Market.Source {
	case "SCANNER", "KLINES", "LOCAL":
	default:
		return fmt.Errorf("invalid market.source '%s': must be 'SCANNER', 'KLINES' or 'LOCAL'", c.Market.Source)
	}
	switch c.LLM.Provider {
	case "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE' or 'NOOP'", c.LLM.Provider)
	}
	if c.Market.BarLimit <= 0 {
		return fmt.Errorf("market.bar_limit must be positive, got %d", c.Market.BarLimit)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if t := c.Temperature(); t < 0 || t > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %.2f", t)
	}
	return nil
}

// LoadConfig reads the YAML config at path, applies environment overrides
// and defaults, then validates. A missing file is not an error: the bot
// can run entirely from env vars and defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKET_SOURCE"); v != "" {
		c.Market.Source = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}

	// Defaults
	if c.Telegram.PollTimeoutSeconds == 0 {
		c.Telegram.PollTimeoutSeconds = 30
	}
	if c.Market.Source == "" {
		c.Market.Source = "SCANNER"
	}
	if c.Market.ScannerURL == "" {
		c.Market.ScannerURL = "https://scanner.tradingview.com"
	}
	if c.Market.KlinesURL == "" {
		c.Market.KlinesURL = "https://api.binance.com"
	}
	if c.Market.Exchange == "" {
		c.Market.Exchange = "FX_IDC"
	}
	if c.Market.Screener == "" {
		c.Market.Screener = "forex"
	}
	if c.Market.BarLimit == 0 {
		c.Market.BarLimit = 100
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Temperature == nil {
		t := float32(0.5)
		c.LLM.Temperature = &t
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
