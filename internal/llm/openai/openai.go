package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/store"
	"fx-analysis-bot/internal/trace"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

var _ interfaces.Generator = (*Generator)(nil)

// Generator produces commentary through the OpenAI chat completions API.
type Generator struct {
	apiKey   string
	endpoint string
	cfg      *store.Config
	httpc    *http.Client
}

// NewGenerator creates an OpenAI-backed generator. The API key is
// injected at construction; callers validate its presence at startup.
func NewGenerator(cfg *store.Config, apiKey, endpoint string) *Generator {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Generator{
		apiKey:   apiKey,
		endpoint: endpoint,
		cfg:      cfg,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	messages := []map[string]string{}
	if g.cfg.LLM.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": g.cfg.LLM.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body := map[string]any{
		"model":       g.cfg.LLM.Model,
		"messages":    messages,
		"temperature": g.cfg.Temperature(),
		"max_tokens":  g.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}
