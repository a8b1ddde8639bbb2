package types

// Bar is one OHLCV record for a fixed time interval. Ts is a unix
// timestamp in seconds; zero means the provider omitted it.
type Bar struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Snapshot is a compact technical-analysis summary for one
// symbol/timeframe: an overall rating plus the oscillator and
// moving-average group ratings.
type Snapshot struct {
	Summary        string
	Oscillators    string
	MovingAverages string
}

// Payload is the canonical market data handed to the prompt builder.
// Exactly one of Snapshot or Bars is populated per request; which one
// depends on the configured market data source.
type Payload struct {
	Snapshot *Snapshot
	Bars     []Bar
}

// Empty reports whether the payload carries no data at all.
func (p Payload) Empty() bool {
	return p.Snapshot == nil && len(p.Bars) == 0
}

// Button is one selectable menu entry: a visible label and the opaque
// callback data the transport echoes back when the user picks it.
type Button struct {
	Label string
	Data  string
}
