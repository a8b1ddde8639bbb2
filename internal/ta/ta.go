// Package ta computes the small set of indicators needed to classify a
// bar sequence into a snapshot rating when no provider-side scanner is
// available.
package ta

import (
	"math"

	"fx-analysis-bot/internal/types"
)

func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

func EMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	k := 2.0 / float64(n+1)
	ema := SMA(closes[:n], n)
	for i := n; i < len(closes); i++ {
		ema = closes[i]*k + ema*(1-k)
	}
	return ema
}

func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0
	}
	rs := (gain / float64(period)) / (loss / float64(period))
	return 100.0 - (100.0 / (1.0 + rs))
}

// SnapshotFrom classifies a time-ascending bar sequence into the same
// rating vocabulary the scanner source uses (STRONG_BUY .. STRONG_SELL).
// It needs at least 50 bars; shorter inputs yield NEUTRAL ratings.
func SnapshotFrom(bars []types.Bar) types.Snapshot {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	osc := rateOscillators(closes)
	ma := rateMovingAverages(closes)
	return types.Snapshot{
		Summary:        combine(osc, ma),
		Oscillators:    ratingName(osc),
		MovingAverages: ratingName(ma),
	}
}

// rateOscillators scores RSI(14) into [-1, 1].
func rateOscillators(closes []float64) float64 {
	rsi := RSI(closes, 14)
	if math.IsNaN(rsi) {
		return 0
	}
	switch {
	case rsi >= 70:
		return -1 // overbought
	case rsi >= 60:
		return -0.3
	case rsi <= 30:
		return 1 // oversold
	case rsi <= 40:
		return 0.3
	default:
		return 0
	}
}

// rateMovingAverages scores price vs SMA20/SMA50/EMA20 into [-1, 1].
func rateMovingAverages(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	price := closes[len(closes)-1]
	score, n := 0.0, 0
	for _, avg := range []float64{SMA(closes, 20), SMA(closes, 50), EMA(closes, 20)} {
		if math.IsNaN(avg) {
			continue
		}
		if price > avg {
			score++
		} else if price < avg {
			score--
		}
		n++
	}
	if n == 0 {
		return 0
	}
	return score / float64(n)
}

func combine(osc, ma float64) string {
	return ratingName((osc + ma) / 2)
}

func ratingName(score float64) string {
	switch {
	case score >= 0.5:
		return "STRONG_BUY"
	case score >= 0.1:
		return "BUY"
	case score > -0.1:
		return "NEUTRAL"
	case score > -0.5:
		return "SELL"
	default:
		return "STRONG_SELL"
	}
}
