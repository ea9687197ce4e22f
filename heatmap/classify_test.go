package heatmap

import "testing"

func TestClassify(t *testing.T) {
	type expectation struct {
		Value float64
		Class Class
	}

	for _, v := range []expectation{
		{1.30, Gain},
		{1.31, Gain},
		{2.00, Gain},
		{1.29, Normal},
		{1.00, Normal},
		{0.71, Normal},
		{0.70, Loss},
		{0.69, Loss},
		{0.00, Loss},
		// 1.296 rounds up to 1.30; 0.704 rounds down to 0.70.
		{1.296, Gain},
		{0.704, Loss},
		// 0.705 and 1.295 sit just below their decimal halfway points in
		// float64 and round down.
		{0.705, Loss},
		{1.295, Normal},
	} {
		if got := Classify(v.Value); got != v.Class {
			t.Errorf("Classify(%v) = %d, want %d (rounded: %v)", v.Value, got, v.Class, Round2(v.Value))
		}
	}
}

func TestRound2(t *testing.T) {
	type expectation struct {
		In  float64
		Out float64
	}

	for _, v := range []expectation{
		{1.234, 1.23},
		{1.235, 1.24},
		{1.2, 1.2},
		{0.0, 0.0},
		{0.999, 1.0},
		// Scaled products 70.5 and 129.5 are exact in float64; rounding must
		// follow the unscaled values, which lie below the halfway points.
		{0.705, 0.70},
		{1.295, 1.29},
	} {
		if got := Round2(v.In); got != v.Out {
			t.Errorf("Round2(%v) = %v, want %v", v.In, got, v.Out)
		}
	}
}
