// Package prompt renders the canonical analysis payload into the fixed
// natural-language prompt consumed by the generation backend. Everything
// here is pure: same inputs, same prompt, byte for byte.
package prompt

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"fx-analysis-bot/internal/types"
)

const (
	// maxBars bounds the bar listing so the prompt stays within the
	// backend's context limits even if an adapter misbehaves.
	maxBars = 100

	// maxFieldLen bounds any single payload field embedded in the prompt.
	maxFieldLen = 200
)

// Build renders the prompt for one symbol/timeframe/payload. headlines
// may be nil; when present they are appended as extra context.
func Build(symbol, label string, p types.Payload, headlines []string) string {
	var b strings.Builder

	b.WriteString("You are an expert in Forex market structure analysis.\n")
	b.WriteString("The technical analysis data below is for the pair ")
	b.WriteString(sanitize(symbol))
	b.WriteString(" on the ")
	b.WriteString(sanitize(label))
	b.WriteString(" timeframe:\n")

	switch {
	case p.Snapshot != nil:
		writeSnapshot(&b, p.Snapshot)
	case len(p.Bars) > 0:
		writeBars(&b, p.Bars)
	}

	if len(headlines) > 0 {
		b.WriteString("\nRecent headlines:\n")
		for _, h := range headlines {
			b.WriteString("- ")
			b.WriteString(sanitize(h))
			b.WriteString("\n")
		}
	}

	b.WriteString("\nAnalyze the trend, point out the key support and resistance zones, ")
	b.WriteString("and highlight anything worth watching based on this data.\n")
	return b.String()
}

func writeSnapshot(b *strings.Builder, s *types.Snapshot) {
	b.WriteString("- Summary: ")
	b.WriteString(sanitize(s.Summary))
	b.WriteString("\n- Oscillators: ")
	b.WriteString(sanitize(s.Oscillators))
	b.WriteString("\n- Moving averages: ")
	b.WriteString(sanitize(s.MovingAverages))
	b.WriteString("\n")
}

func writeBars(b *strings.Builder, bars []types.Bar) {
	if len(bars) > maxBars {
		bars = bars[len(bars)-maxBars:]
	}
	b.WriteString("OHLCV bars, oldest first (time,open,high,low,close,volume):\n")
	for _, bar := range bars {
		b.WriteString(formatTs(bar.Ts))
		for _, v := range []float64{bar.Open, bar.High, bar.Low, bar.Close, bar.Vol} {
			b.WriteString(",")
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		b.WriteString("\n")
	}
}

// formatTs renders a unix timestamp as UTC RFC3339; a missing timestamp
// becomes the empty string rather than an error.
func formatTs(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// sanitize keeps payload text from breaking the template: control
// characters collapse to spaces and overlong fields are truncated.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if len(s) > maxFieldLen {
		// Back up to a rune boundary so the cut never leaves invalid UTF-8
		cut := maxFieldLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}
