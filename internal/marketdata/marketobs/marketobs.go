// Package marketobs wraps a Fetcher with logging and tracing middleware.
package marketobs

import (
	"context"
	"time"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/trace"
	"fx-analysis-bot/internal/types"
)

type observableFetcher struct {
	fetcher interfaces.Fetcher
}

var _ interfaces.Fetcher = (*observableFetcher)(nil)

// Wrap wraps a fetcher with observability middleware
func Wrap(fetcher interfaces.Fetcher) interfaces.Fetcher {
	return &observableFetcher{fetcher: fetcher}
}

func (of *observableFetcher) Name() string { return of.fetcher.Name() }

func (of *observableFetcher) Fetch(ctx context.Context, symbol, code string) (types.Payload, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Fetch")
	defer span.End()

	start := time.Now()
	payload, err := of.fetcher.Fetch(ctx, symbol, code)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Market data fetch failed", err,
			"source", of.fetcher.Name(),
			"symbol", symbol,
			"timeframe", code,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return types.Payload{}, err
	}

	logger.InfoSkip(ctx, 1, "Market data fetched",
		"source", of.fetcher.Name(),
		"symbol", symbol,
		"timeframe", code,
		"bars", len(payload.Bars),
		"has_snapshot", payload.Snapshot != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return payload, nil
}
