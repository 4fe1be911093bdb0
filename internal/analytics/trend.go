// Package analytics computes derived financial metrics from guest data
// without mutating it.
package analytics

import "math"

type Direction string

type Tone string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"

	Positive Tone = "positive"
	Negative Tone = "negative"
	Neutral  Tone = "neutral"
)

// TrendResult describes how a metric moved against its previous value.
// Percentage is nil when the previous value cannot serve as a base.
type TrendResult struct {
	Direction  Direction `json:"direction"`
	Tone       Tone      `json:"tone"`
	Percentage *float64  `json:"percentage"`
}

// Trend compares current with previous. preferHigher is true for metrics where
// growth is good (income, balance) and false where a decrease is good
// (expenses).
func Trend(current, previous float64, preferHigher bool) TrendResult {
	dir := direction(current, previous)
	res := TrendResult{Direction: dir, Tone: tone(dir, preferHigher)}

	if previous == 0 || math.IsNaN(previous) || math.IsInf(previous, 0) {
		if current == previous {
			zero := 0.0
			res.Percentage = &zero
		}
		return res
	}

	pct := math.Abs(current-previous) / math.Abs(previous) * 100
	res.Percentage = &pct
	return res
}

func direction(current, previous float64) Direction {
	switch {
	case current == previous:
		return Flat
	case current > previous:
		return Up
	case current < previous:
		return Down
	}
	// NaN on either side compares false everywhere.
	return Flat
}

func tone(dir Direction, preferHigher bool) Tone {
	switch {
	case dir == Flat:
		return Neutral
	case (dir == Up) == preferHigher:
		return Positive
	default:
		return Negative
	}
}
