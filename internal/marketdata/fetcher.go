// Package marketdata adapts external market data providers into the
// canonical analysis payload. Every provider failure is converted into a
// *FetchError at this boundary; raw transport errors never escape.
package marketdata

import "fmt"

// FetchError signals that no usable market data could be obtained for a
// symbol/timeframe. It wraps the underlying provider error for logs.
type FetchError struct {
	Symbol string
	Code   string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s @%s: %v", e.Symbol, e.Code, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(symbol, code string, err error) *FetchError {
	return &FetchError{Symbol: symbol, Code: code, Err: err}
}
