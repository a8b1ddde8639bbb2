package interfaces

import "context"

// HeadlineSource supplies recent news headlines for a symbol, used to
// enrich the analysis prompt. Implementations are best-effort.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string, max int) ([]string, error)
}
