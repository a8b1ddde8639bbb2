// Package llmobs wraps a Generator with logging and tracing middleware.
package llmobs

import (
	"context"
	"time"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/trace"
)

type observableGenerator struct {
	gen interfaces.Generator
}

var _ interfaces.Generator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(gen interfaces.Generator) interfaces.Generator {
	return &observableGenerator{gen: gen}
}

func (og *observableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting commentary", "prompt_len", len(prompt))

	start := time.Now()
	text, err := og.gen.Generate(ctx, prompt)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Commentary generation failed", err,
			"prompt_len", len(prompt),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Commentary generated",
		"output_len", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
