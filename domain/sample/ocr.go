package sample

import "image"

// OCRDistance is the extension point for reading the distance as text from
// its own screen region. No recogniser is wired in yet, so the distance is
// always 0. The clamped region is returned for display; nil when the region
// is invalid for this frame.
func OCRDistance(frame image.Image, region image.Rectangle) (float64, image.Image) {
	roi, _, ok := ExtractROI(frame, region)
	if !ok {
		return 0, nil
	}
	return 0, roi
}
