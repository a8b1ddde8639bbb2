// Package analyzer sequences market data fetch, prompt building and
// commentary generation into the final display text for one request.
package analyzer

import (
	"context"
	"strings"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/prompt"
	"fx-analysis-bot/internal/trace"
)

const (
	// DataUnavailableText is shown verbatim when the market data
	// provider yields nothing usable.
	DataUnavailableText = "Could not fetch technical analysis data for this pair."

	// generationFailurePrefix prefixes the underlying reason when the
	// generation backend fails.
	generationFailurePrefix = "Analysis failed: "
)

var _ interfaces.Analyzer = (*Analyzer)(nil)

// Analyzer runs the fetch -> prompt -> generate pipeline. All
// dependencies are injected at construction and read-only afterwards.
type Analyzer struct {
	fetcher      interfaces.Fetcher
	gen          interfaces.Generator
	headlines    interfaces.HeadlineSource // nil disables prompt enrichment
	maxHeadlines int
}

func New(fetcher interfaces.Fetcher, gen interfaces.Generator) *Analyzer {
	return &Analyzer{fetcher: fetcher, gen: gen}
}

// WithHeadlines enables headline enrichment of the prompt.
func (a *Analyzer) WithHeadlines(src interfaces.HeadlineSource, max int) *Analyzer {
	a.headlines = src
	a.maxHeadlines = max
	return a
}

// Analyze produces the final text for one symbol/timeframe request.
// Both external calls are fallible; neither failure escapes as an error.
// ok is false for the failure texts, which are displayed unframed.
func (a *Analyzer) Analyze(ctx context.Context, symbol, label, code string) (string, bool) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	payload, err := a.fetcher.Fetch(ctx, symbol, code)
	if err != nil || payload.Empty() {
		if err != nil {
			logger.Warn(ctx, "No market data for request", "symbol", symbol, "timeframe", code, "error", err)
		}
		return DataUnavailableText, false
	}

	var headlines []string
	if a.headlines != nil {
		headlines, err = a.headlines.Headlines(ctx, symbol, a.maxHeadlines)
		if err != nil {
			// Headlines are garnish; a scraping failure never blocks the analysis
			logger.Warn(ctx, "Headline lookup failed", "symbol", symbol, "error", err)
			headlines = nil
		}
	}

	p := prompt.Build(symbol, label, payload, headlines)

	text, err := a.gen.Generate(ctx, p)
	if err != nil {
		return generationFailurePrefix + err.Error(), false
	}
	return strings.TrimSpace(text), true
}
