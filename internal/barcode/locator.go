// Package barcode finds and decodes book barcodes in camera frames.
package barcode

import (
	"image"
	"log/slog"
)

// Detection is the first symbol decoded from a frame. Bounds, when known,
// is in frame coordinates.
type Detection struct {
	Text    string
	Bounds  *image.Rectangle
	Variant string
}

// Locator tries each preprocessed variant of a frame in a fixed order and
// stops at the first one that decodes.
type Locator struct {
	decoder Decoder
	logger  *slog.Logger
}

func NewLocator(decoder Decoder, logger *slog.Logger) *Locator {
	return &Locator{decoder: decoder, logger: logger.With("component", "locator")}
}

// Decoder returns the injected backend.
func (l *Locator) Decoder() Decoder {
	return l.decoder
}

// Locate returns the first result of the first variant that yields one.
func (l *Locator) Locate(frame image.Image) (Detection, bool) {
	for _, v := range Variants(frame) {
		results, err := l.decoder.Decode(v.Image)
		if err != nil {
			l.logger.Debug("decode failed", "variant", v.Name, "error", err)
			continue
		}
		if len(results) == 0 {
			continue
		}

		first := results[0]
		det := Detection{Text: first.Text, Variant: v.Name}
		if first.Bounds != nil {
			r := scaleDown(*first.Bounds, v.Scale)
			det.Bounds = &r
		}
		return det, true
	}
	return Detection{}, false
}

func scaleDown(r image.Rectangle, scale int) image.Rectangle {
	if scale <= 1 {
		return r
	}
	return image.Rect(r.Min.X/scale, r.Min.Y/scale, r.Max.X/scale, r.Max.Y/scale)
}
