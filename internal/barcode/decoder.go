package barcode

import (
	"errors"
	"image"
	"log/slog"
)

// Backend names accepted by Select.
const (
	BackendZXing = "zxing"
	BackendZBar  = "zbar"
	BackendNone  = "none"
)

// ErrNoDecoder is returned by the disabled backend.
var ErrNoDecoder = errors.New("no barcode decoder available")

// Result is one decoded symbol. Bounds is nil when the backend cannot
// locate the symbol.
type Result struct {
	Text   string
	Bounds *image.Rectangle
}

// Decoder is a barcode decoding backend.
type Decoder interface {
	Name() string
	Decode(img image.Image) ([]Result, error)
}

type backend struct {
	name      string
	available func() bool
	build     func() Decoder
}

var backends = []backend{
	{name: BackendZXing, available: func() bool { return true }, build: func() Decoder { return NewZXing() }},
	{name: BackendZBar, available: zbarAvailable, build: func() Decoder { return NewZBar() }},
}

// Select picks the decoder once at startup: the preferred backend when it is
// available, otherwise the first available one in registration order.
// "none" disables decoding.
func Select(preferred string, logger *slog.Logger) Decoder {
	if preferred == BackendNone {
		return Disabled{}
	}

	for _, b := range backends {
		if b.name == preferred && b.available() {
			logger.Info("using barcode decoder", "backend", b.name)
			return b.build()
		}
	}
	for _, b := range backends {
		if b.available() {
			logger.Warn("preferred barcode decoder unavailable, falling back", "preferred", preferred, "backend", b.name)
			return b.build()
		}
	}

	logger.Warn("no barcode decoder available")
	return Disabled{}
}

// Enabled reports whether d can decode anything.
func Enabled(d Decoder) bool {
	_, off := d.(Disabled)
	return d != nil && !off
}

// Disabled never decodes.
type Disabled struct{}

func (Disabled) Name() string { return BackendNone }

func (Disabled) Decode(image.Image) ([]Result, error) { return nil, ErrNoDecoder }
