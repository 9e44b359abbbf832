package colormodel

import (
	"errors"
	"image"
	"math"
)

// HueBins is the number of hue values in 8-bit HSV (H in [0,180)).
const HueBins = 180

var ErrShortBuffer = errors.New("colormodel: hsv buffer too small")

// hsvShift is the fixed-point precision of the division tables.
const hsvShift = 12

// sdivTable[v] ~ 255/v and hdivTable[d] ~ 30/d in hsvShift fixed point.
var sdivTable, hdivTable [256]int

func init() {
	for i := 1; i < 256; i++ {
		sdivTable[i] = int(math.RoundToEven(float64(255<<hsvShift) / float64(i)))
		hdivTable[i] = int(math.RoundToEven(float64(180<<hsvShift) / (6 * float64(i))))
	}
}

// RGBToHSV converts one 8-bit RGB pixel to 8-bit HSV using integer division
// tables, so results match OpenCV's COLOR_RGB2HSV bit for bit.
// H is in [0,180) (degrees halved), S and V in [0,255]. Gray pixels map to H=0, S=0.
func RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	ri, gi, bi := int(r), int(g), int(b)
	vmax := max(ri, gi, bi)
	diff := vmax - min(ri, gi, bi)
	const half = 1 << (hsvShift - 1)

	sv := (diff*sdivTable[vmax] + half) >> hsvShift

	var x int
	switch vmax {
	case ri:
		x = gi - bi
	case gi:
		x = bi - ri + 2*diff
	default:
		x = ri - gi + 4*diff
	}
	hv := (x*hdivTable[diff] + half) >> hsvShift
	if hv < 0 {
		hv += HueBins
	}
	return uint8(hv), uint8(sv), uint8(vmax)
}

// ConvertHSV writes the HSV representation of src into dst as packed H,S,V
// triplets in row-major order. Alpha is dropped. dst must hold at least
// 3*width*height bytes.
func ConvertHSV(dst []uint8, src *image.RGBA) error {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if len(dst) < 3*w*h {
		return ErrShortBuffer
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+3 : x*4+3]
			dst[i], dst[i+1], dst[i+2] = RGBToHSV(p[0], p[1], p[2])
			i += 3
		}
	}
	return nil
}
