package imaging

// ScaleFactor returns the uniform downscale factor that fits w×h inside
// maxW×maxH: min(1, maxW/w, maxH/h). A zero source dimension contributes 1.
// The result never exceeds 1, so images are never upscaled.
func ScaleFactor(w, h, maxW, maxH int) float64 {
	scale := 1.0
	if w > 0 {
		scale = min(scale, float64(maxW)/float64(w))
	}
	if h > 0 {
		scale = min(scale, float64(maxH)/float64(h))
	}
	return scale
}

// TargetSize returns the output dimensions for a w×h source and whether a
// resize is needed. Each dimension is truncated and clamped to at least 1.
func TargetSize(w, h, maxW, maxH int) (int, int, bool) {
	scale := ScaleFactor(w, h, maxW, maxH)
	if scale >= 1 {
		return w, h, false
	}
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale)), true
}
