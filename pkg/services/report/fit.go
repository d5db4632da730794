package report

// FitSize scales native pixel dimensions (iw, ih) into the bounds
// (maxW, maxH): width-first, then clamped to the height bound. The
// aspect ratio is preserved exactly and neither bound is exceeded.
// Pure function; the same inputs always yield the same output.
func FitSize(iw, ih int, maxW, maxH float64) (w, h float64) {
	if iw <= 0 || ih <= 0 {
		return 0, 0
	}
	w = maxW
	h = float64(ih) * w / float64(iw)
	if h > maxH {
		h = maxH
		w = float64(iw) * h / float64(ih)
	}
	return w, h
}
