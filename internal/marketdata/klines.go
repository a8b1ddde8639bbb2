package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/timeframe"
	"fx-analysis-bot/internal/trace"
	"fx-analysis-bot/internal/types"
)

var _ interfaces.Fetcher = (*KlinesFetcher)(nil)

// KlinesFetcher pulls raw OHLCV bars from a Binance-style klines
// endpoint and returns them as the bar-sequence payload shape.
type KlinesFetcher struct {
	baseURL string
	limit   int
	httpc   *http.Client
}

func NewKlinesFetcher(baseURL string, limit int) *KlinesFetcher {
	return &KlinesFetcher{
		baseURL: baseURL,
		limit:   limit,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *KlinesFetcher) Name() string { return "klines" }

func (f *KlinesFetcher) Fetch(ctx context.Context, symbol, code string) (types.Payload, error) {
	bars, err := f.fetchBars(ctx, symbol, code)
	if err != nil {
		return types.Payload{}, err
	}
	return types.Payload{Bars: bars}, nil
}

// fetchBars returns the most recent bars, time ascending, capped at the
// configured limit.
func (f *KlinesFetcher) fetchBars(ctx context.Context, symbol, code string) ([]types.Bar, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata-fetch")
	defer span.End()

	interval := timeframe.IntervalFor(code).Kline
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		f.baseURL, url.QueryEscape(symbol), interval, f.limit)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fetchErr(symbol, code, err)
	}
	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, fetchErr(symbol, code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fetchErr(symbol, code, fmt.Errorf("klines http %d: %s", resp.StatusCode, string(body)))
	}

	var raw [][]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fetchErr(symbol, code, err)
	}
	if len(raw) == 0 {
		return nil, fetchErr(symbol, code, errors.New("empty bar sequence"))
	}
	if len(raw) > f.limit {
		raw = raw[len(raw)-f.limit:]
	}

	bars := make([]types.Bar, 0, len(raw))
	for _, item := range raw {
		if len(item) < 6 {
			continue
		}
		var b types.Bar
		if ts, ok := item[0].(float64); ok {
			b.Ts = int64(ts) / 1000 // provider reports milliseconds
		}
		b.Open = parseField(item[1])
		b.High = parseField(item[2])
		b.Low = parseField(item[3])
		b.Close = parseField(item[4])
		b.Vol = parseField(item[5])
		bars = append(bars, b)
	}
	if len(bars) == 0 {
		return nil, fetchErr(symbol, code, errors.New("no parsable bars in response"))
	}

	logger.Debug(ctx, "Bars fetched", "symbol", symbol, "interval", interval, "count", len(bars))
	return bars, nil
}

// parseField tolerates both string and numeric kline fields.
func parseField(v any) float64 {
	switch t := v.(type) {
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	case float64:
		return t
	default:
		return 0
	}
}
