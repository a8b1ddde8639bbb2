package interfaces

import (
	"context"

	"fx-analysis-bot/internal/types"
)

// Fetcher retrieves the canonical analysis payload for one symbol and
// timeframe code from a market data provider.
type Fetcher interface {
	// Fetch returns the payload or a *marketdata.FetchError. It never
	// returns a raw provider error.
	Fetch(ctx context.Context, symbol, code string) (types.Payload, error)

	// Name identifies the underlying data source for logs.
	Name() string
}
