package main

import (
	"math"
	"testing"

	"github.com/iafilius/ParadoxPlot/src/regress"
)

func TestSampleLine_EndpointsAndSpacing(t *testing.T) {
	line := regress.TrendLine{Slope: 2, Intercept: 1}
	ys := sampleLine(line, 0, 10, 5)
	if len(ys) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(ys))
	}
	if ys[0] != line.At(0) || ys[4] != line.At(10) {
		t.Fatalf("endpoints wrong: %v", ys)
	}
	// Evenly spaced x means evenly spaced y on a straight line.
	for i := 1; i < len(ys); i++ {
		if math.Abs((ys[i]-ys[i-1])-5) > 1e-9 {
			t.Fatalf("uneven spacing at %d: %v", i, ys)
		}
	}
}

func TestSampleLine_MinimumTwoSamples(t *testing.T) {
	ys := sampleLine(regress.TrendLine{Slope: 1}, 0, 1, 0)
	if len(ys) != 2 {
		t.Fatalf("expected clamp to 2 samples, got %d", len(ys))
	}
}
