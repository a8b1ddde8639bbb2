package noop

import (
	"context"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
)

var _ interfaces.Generator = (*Generator)(nil)

// Generator is a fallback used when no LLM provider is configured. It
// lets the bot run end to end without credentials.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "Noop generator called", "prompt_len", len(prompt))
	return "No analysis backend is configured. The technical data was fetched successfully, but commentary generation is disabled.", nil
}
