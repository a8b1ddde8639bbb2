// Package timeframe holds the closed set of analysis timeframes the bot
// offers and their provider-specific interval descriptors.
package timeframe

// Entry pairs a human-readable timeframe label with the short code that
// selection tokens carry.
type Entry struct {
	Label string
	Code  string
}

// Interval holds the provider-native descriptors for one timeframe code:
// the scanner API column suffix and the klines API interval parameter.
type Interval struct {
	Scanner string
	Kline   string
}

const dailyCode = "D"

var entries = []Entry{
	{Label: "5 minutes", Code: "5"},
	{Label: "15 minutes", Code: "15"},
	{Label: "1 hour", Code: "60"},
	{Label: "2 hours", Code: "120"},
	{Label: "4 hours", Code: "240"},
	{Label: "1 day", Code: "D"},
	{Label: "1 week", Code: "W"},
	{Label: "1 month", Code: "M"},
}

var intervals = map[string]Interval{
	"5":   {Scanner: "5m", Kline: "5m"},
	"15":  {Scanner: "15m", Kline: "15m"},
	"60":  {Scanner: "1h", Kline: "1h"},
	"120": {Scanner: "2h", Kline: "2h"},
	"240": {Scanner: "4h", Kline: "4h"},
	"D":   {Scanner: "1d", Kline: "1d"},
	"W":   {Scanner: "1W", Kline: "1w"},
	"M":   {Scanner: "1M", Kline: "1M"},
}

// Entries returns the registry in menu-rendering order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// LabelsInOrder returns the labels in the same order Entries uses.
func LabelsInOrder() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

// CodeFor resolves a label to its code. The second return is false for
// labels outside the registry.
func CodeFor(label string) (string, bool) {
	for _, e := range entries {
		if e.Label == label {
			return e.Code, true
		}
	}
	return "", false
}

// LabelFor resolves a code back to its label. The second return is false
// for codes outside the registry.
func LabelFor(code string) (string, bool) {
	for _, e := range entries {
		if e.Code == code {
			return e.Label, true
		}
	}
	return "", false
}

// IntervalFor maps a timeframe code to its provider interval descriptors.
// Unknown codes fall back to the daily interval rather than failing.
func IntervalFor(code string) Interval {
	if iv, ok := intervals[code]; ok {
		return iv
	}
	return intervals[dailyCode]
}
