package colormodel

import (
	"errors"
	"image"

	"gonum.org/v1/gonum/floats"
)

var ErrEmptyWindow = errors.New("colormodel: window does not overlap frame")

// Mask bounds applied to the cropped ROI before histogramming (inclusive).
var (
	MaskLower = [3]uint8{30, 30, 0}
	MaskUpper = [3]uint8{180, 180, 180}
)

// HistogramMax is the upper bound of a normalized histogram.
const HistogramMax = 255

// Histogram is a 180-bin hue distribution.
type Histogram [HueBins]float64

// InMask reports whether an HSV pixel lies within the mask bounds.
func InMask(h, s, v uint8) bool {
	return h >= MaskLower[0] && h <= MaskUpper[0] &&
		s >= MaskLower[1] && s <= MaskUpper[1] &&
		v >= MaskLower[2] && v <= MaskUpper[2]
}

// BuildHistogram derives the hue model of the window region of frame: crop,
// convert to HSV, mask, bin hue and min-max normalize into [0,255].
func BuildHistogram(frame *image.RGBA, window image.Rectangle) (Histogram, error) {
	var hist Histogram
	if frame == nil {
		return hist, ErrEmptyWindow
	}
	roi := window.Canon().Intersect(frame.Bounds())
	if roi.Empty() {
		return hist, ErrEmptyWindow
	}
	crop := frame.SubImage(roi).(*image.RGBA)
	buf := make([]uint8, 3*roi.Dx()*roi.Dy())
	if err := ConvertHSV(buf, crop); err != nil {
		return hist, err
	}
	for i := 0; i+2 < len(buf); i += 3 {
		if InMask(buf[i], buf[i+1], buf[i+2]) {
			hist[buf[i]]++
		}
	}
	hist.Normalize()
	return hist, nil
}

// Normalize rescales bins so the smallest maps to 0 and the largest to 255.
// A flat histogram becomes all zero.
func (h *Histogram) Normalize() {
	bins := h[:]
	lo, hi := floats.Min(bins), floats.Max(bins)
	scale := 0.0
	if hi-lo > 2.220446049250313e-16 {
		scale = HistogramMax / (hi - lo)
	}
	floats.AddConst(-lo, bins)
	floats.Scale(scale, bins)
}

// Empty reports whether every bin is zero.
func (h *Histogram) Empty() bool {
	return floats.Max(h[:]) == 0
}
