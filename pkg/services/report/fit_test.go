package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitSize_WidthBound(t *testing.T) {
	// Wide image: width binds, height follows the aspect ratio.
	w, h := FitSize(400, 200, 100, 100)
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)
}

func TestFitSize_HeightBound(t *testing.T) {
	// Tall image: the width-first pass overshoots, so height binds.
	w, h := FitSize(200, 400, 100, 100)
	assert.Equal(t, 100.0, h)
	assert.Equal(t, 50.0, w)
}

func TestFitSize_NeverExceedsBoundsAndKeepsAspect(t *testing.T) {
	cases := []struct {
		iw, ih     int
		maxW, maxH float64
	}{
		{640, 480, 180, 85},
		{480, 640, 180, 85},
		{1, 1000, 180, 150},
		{1000, 1, 180, 150},
		{600, 600, 60, 160},
	}
	for _, tc := range cases {
		w, h := FitSize(tc.iw, tc.ih, tc.maxW, tc.maxH)
		assert.LessOrEqual(t, w, tc.maxW)
		assert.LessOrEqual(t, h, tc.maxH)
		assert.InDelta(t, float64(tc.iw)/float64(tc.ih), w/h, 1e-9)
	}
}

func TestFitSize_Idempotent(t *testing.T) {
	w1, h1 := FitSize(640, 480, 180, 85)
	w2, h2 := FitSize(640, 480, 180, 85)
	assert.True(t, math.Abs(w1-w2) == 0 && math.Abs(h1-h2) == 0)
}

func TestFitSize_DegenerateInput(t *testing.T) {
	w, h := FitSize(0, 480, 180, 85)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
