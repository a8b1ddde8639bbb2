package dialog

import "fmt"

// Fixed user-facing texts. Tests assert on these verbatim, so any change
// here is user-visible.
const (
	greetingText = "Hi! Send /analyze <pair, e.g. EURUSD> to get a market structure analysis."
	usageText    = "Usage: /analyze <pair, e.g. EURUSD>"
	menuText     = "Choose a timeframe for the analysis:"
	unknownText  = "Unknown command. Send /analyze <pair, e.g. EURUSD> to start."
)

func workingText(symbol, label string) string {
	return fmt.Sprintf("Fetching data and analyzing %s on %s... please wait.", symbol, label)
}

func resultText(symbol, label, analysis string) string {
	return fmt.Sprintf("Market structure analysis for %s (%s):\n\n%s", symbol, label, analysis)
}
