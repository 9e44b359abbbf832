package colormodel

import (
	"errors"
	"image"
	"math"
)

var ErrSizeMismatch = errors.New("colormodel: back-projection size mismatch")

// BackProject fills dst with hist[hue] for each pixel of the packed HSV buffer,
// rounded and saturated to 8 bits. dst's bounds define the frame size.
func BackProject(dst *image.Gray, hsv []uint8, hist *Histogram) error {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if len(hsv) < 3*w*h {
		return ErrSizeMismatch
	}
	var lut [HueBins]uint8
	for i, v := range hist {
		lut[i] = saturate(v)
	}
	i := 0
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range row {
			row[x] = lut[hsv[i]]
			i += 3
		}
	}
	return nil
}

func saturate(v float64) uint8 {
	r := math.RoundToEven(v)
	switch {
	case r <= 0 || math.IsNaN(r):
		return 0
	case r >= 255:
		return 255
	}
	return uint8(r)
}
