package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/store"
	"fx-analysis-bot/internal/trace"
)

const defaultEndpoint = "https://api.anthropic.com/v1/messages"

var _ interfaces.Generator = (*Generator)(nil)

// Generator produces commentary through the Anthropic messages API.
type Generator struct {
	apiKey   string
	endpoint string
	cfg      *store.Config
	httpc    *http.Client
}

// NewGenerator creates a Claude-backed generator. Set endpoint to use a
// proxy/bedrock/vertex gateway instead of the public API.
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
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	body := map[string]any{
		"model": g.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  g.cfg.LLM.MaxTokens,
		"temperature": g.cfg.Temperature(),
	}
	if g.cfg.LLM.System != "" {
		body["system"] = g.cfg.LLM.System
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("claude http %d: %s", resp.StatusCode, string(b))
	}

	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}
