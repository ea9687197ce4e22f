// Package heatmap classifies paired CNV ratio columns into gain/loss/normal
// calls and renders them as an annotated, color-coded grid image.
package heatmap

import "strconv"

// Class is a discrete CNV call derived from a ratio value.
type Class int

const (
	Loss   Class = -1
	Normal Class = 0
	Gain   Class = 1
)

// Classification thresholds, applied to the ratio after rounding to two
// decimal places.
const (
	GainThreshold = 1.30
	LossThreshold = 0.70
)

// Round2 rounds to two decimal places by formatting the value itself with two
// fractional digits and reparsing. Rounding the scaled product instead would
// misplace values like 0.705 and 1.295, whose products 70.5 and 129.5 are
// exactly representable even though the values sit just below their decimal
// halfway points and must round down.
func Round2(v float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return rounded
}

// Classify bins a ratio value: rounded >= 1.30 is a gain, <= 0.70 a loss,
// anything between is normal.
func Classify(v float64) Class {
	rounded := Round2(v)
	switch {
	case rounded >= GainThreshold:
		return Gain
	case rounded <= LossThreshold:
		return Loss
	}

	return Normal
}
