package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/timeframe"
	"fx-analysis-bot/internal/trace"
	"fx-analysis-bot/internal/types"
)

var _ interfaces.Fetcher = (*ScannerFetcher)(nil)

// ScannerFetcher pulls the provider-side recommendation snapshot from a
// TradingView-style scanner endpoint.
type ScannerFetcher struct {
	baseURL  string
	exchange string
	screener string
	httpc    *http.Client
}

func NewScannerFetcher(baseURL, exchange, screener string) *ScannerFetcher {
	return &ScannerFetcher{
		baseURL:  baseURL,
		exchange: exchange,
		screener: screener,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *ScannerFetcher) Name() string { return "scanner" }

// Fetch requests the summary, oscillator and moving-average ratings for
// one symbol/timeframe and maps them to the snapshot payload shape.
func (f *ScannerFetcher) Fetch(ctx context.Context, symbol, code string) (types.Payload, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata-fetch")
	defer span.End()

	interval := timeframe.IntervalFor(code).Scanner
	columns := []string{
		column("Recommend.All", interval),
		column("Recommend.Other", interval),
		column("Recommend.MA", interval),
	}
	ticker := f.exchange + ":" + symbol

	reqBody := map[string]any{
		"symbols": map[string]any{
			"tickers": []string{ticker},
			"query":   map[string]any{"types": []string{}},
		},
		"columns": columns,
	}
	bb, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/%s/scan", f.baseURL, f.screener)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bb))
	if err != nil {
		return types.Payload{}, fetchErr(symbol, code, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpc.Do(req)
	if err != nil {
		return types.Payload{}, fetchErr(symbol, code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return types.Payload{}, fetchErr(symbol, code, fmt.Errorf("scanner http %d: %s", resp.StatusCode, string(body)))
	}

	var r struct {
		TotalCount int `json:"totalCount"`
		Data       []struct {
			Symbol string    `json:"s"`
			Values []float64 `json:"d"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Payload{}, fetchErr(symbol, code, err)
	}
	if len(r.Data) == 0 || len(r.Data[0].Values) < 3 {
		return types.Payload{}, fetchErr(symbol, code, errors.New("symbol not found in scanner response"))
	}

	vals := r.Data[0].Values
	snap := &types.Snapshot{
		Summary:        rating(vals[0]),
		Oscillators:    rating(vals[1]),
		MovingAverages: rating(vals[2]),
	}
	logger.Debug(ctx, "Scanner snapshot fetched",
		"symbol", symbol, "interval", interval, "summary", snap.Summary)

	return types.Payload{Snapshot: snap}, nil
}

// column builds a scanner column name. Daily columns carry no interval
// suffix; all other intervals do.
func column(base, interval string) string {
	if interval == "1d" {
		return base
	}
	return base + "|" + interval
}

// rating converts the scanner's numeric recommendation to its label.
func rating(v float64) string {
	switch {
	case v >= 0.5:
		return "STRONG_BUY"
	case v >= 0.1:
		return "BUY"
	case v > -0.1:
		return "NEUTRAL"
	case v > -0.5:
		return "SELL"
	default:
		return "STRONG_SELL"
	}
}
