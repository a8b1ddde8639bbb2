package marketdata

import (
	"context"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/ta"
	"fx-analysis-bot/internal/types"
)

var _ interfaces.Fetcher = (*LocalFetcher)(nil)

// LocalFetcher fetches bars through a KlinesFetcher and classifies them
// into an indicator snapshot locally, for providers that expose bars but
// no scanner-side ratings.
type LocalFetcher struct {
	klines *KlinesFetcher
}

func NewLocalFetcher(klines *KlinesFetcher) *LocalFetcher {
	return &LocalFetcher{klines: klines}
}

func (f *LocalFetcher) Name() string { return "local" }

func (f *LocalFetcher) Fetch(ctx context.Context, symbol, code string) (types.Payload, error) {
	bars, err := f.klines.fetchBars(ctx, symbol, code)
	if err != nil {
		return types.Payload{}, err
	}
	snap := ta.SnapshotFrom(bars)
	return types.Payload{Snapshot: &snap}, nil
}
