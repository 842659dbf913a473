package barcode

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Variant is one preprocessed rendition of a frame. Scale maps variant
// coordinates back to frame coordinates.
type Variant struct {
	Name  string
	Image image.Image
	Scale int
}

var sharpenKernel = [9]float64{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// Variants builds the renditions tried against a frame, cheapest first:
// grayscale, histogram-equalized, sharpened, 2x upscaled.
func Variants(frame image.Image) []Variant {
	gray := imaging.Grayscale(frame)
	b := gray.Bounds()

	return []Variant{
		{Name: "grayscale", Image: gray, Scale: 1},
		{Name: "equalized", Image: Equalize(gray), Scale: 1},
		{Name: "sharpened", Image: imaging.Convolve3x3(gray, sharpenKernel, nil), Scale: 1},
		{Name: "upscaled", Image: imaging.Resize(gray, b.Dx()*2, b.Dy()*2, imaging.Linear), Scale: 2},
	}
}

// Equalize spreads the luminance histogram of a grayscale image over the
// full 0-255 range. A single-tone image is returned unchanged.
func Equalize(gray image.Image) *image.NRGBA {
	hist := imaging.Histogram(gray)

	var cdf [256]float64
	sum := 0.0
	cdfMin := -1.0
	for i, p := range hist {
		sum += p
		cdf[i] = sum
		if cdfMin < 0 && p > 0 {
			cdfMin = sum
		}
	}
	span := 1 - cdfMin
	if cdfMin < 0 || span <= 1e-9 {
		return imaging.Clone(gray)
	}

	var lut [256]uint8
	for i := range lut {
		v := math.Round((cdf[i] - cdfMin) / span * 255)
		lut[i] = uint8(math.Max(0, math.Min(255, v)))
	}

	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := lut[c.R]
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}
