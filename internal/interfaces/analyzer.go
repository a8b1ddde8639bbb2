package interfaces

import "context"

// Analyzer produces the final display text for one symbol/timeframe
// request. Failures of the data provider or the generation backend are
// folded into the returned text; Analyze never fails the interaction.
// ok reports whether text is generated commentary (to be framed with the
// result header) rather than a failure message shown as-is.
type Analyzer interface {
	Analyze(ctx context.Context, symbol, label, code string) (text string, ok bool)
}
