// Package scan runs the read-decode loop over a frame source until a
// barcode is found or the operator gives up.
package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"bookscan/internal/barcode"
	"bookscan/internal/camera"

	"github.com/google/uuid"
)

var (
	// ErrCancelled is returned when the operator quits before a code is found.
	ErrCancelled = errors.New("scan cancelled")
	// ErrStreamDisconnected is returned when the source stops delivering frames.
	ErrStreamDisconnected = errors.New("stream disconnected")
	// ErrExhausted is returned when a finite source runs out without a code.
	ErrExhausted = errors.New("no barcode found")
)

const (
	quitKey      = 'q'
	pollInterval = time.Millisecond
	holdDetected = 600 * time.Millisecond
)

// Display renders frames while scanning. Show waits up to wait for a key
// and returns its code, or -1 when none was pressed.
type Display interface {
	Show(frame image.Image, det *barcode.Detection, wait time.Duration) int
}

// Result is the detection that ended the loop.
type Result struct {
	barcode.Detection
	Frame int
	Image image.Image
}

type Option func(*Loop)

// WithDisplay shows every frame and treats 'q' in the display as quit.
func WithDisplay(d Display) Option {
	return func(l *Loop) { l.display = d }
}

// Loop reads frames from a source and hands them to a locator.
type Loop struct {
	source  camera.Source
	locator *barcode.Locator
	display Display
	logger  *slog.Logger
}

func New(source camera.Source, locator *barcode.Locator, logger *slog.Logger, opts ...Option) *Loop {
	l := &Loop{source: source, locator: locator, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run blocks until a code is decoded, ctx is cancelled, the display quits,
// or the source fails. Cancellation is checked once per frame.
func (l *Loop) Run(ctx context.Context) (*Result, error) {
	logger := l.logger.With("session", uuid.NewString())
	logger.Info("scan started", "decoder", l.locator.Decoder().Name())

	for frame := 1; ; frame++ {
		if err := ctx.Err(); err != nil {
			logger.Info("scan cancelled", "frames", frame-1)
			return nil, fmt.Errorf("%w: %v", ErrCancelled, context.Cause(ctx))
		}

		img, err := l.source.Read()
		if errors.Is(err, io.EOF) {
			return nil, ErrExhausted
		}
		if err != nil {
			logger.Error("frame read failed", "frame", frame, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrStreamDisconnected, err)
		}

		det, ok := l.locator.Locate(img)
		if !ok {
			if l.display != nil && l.display.Show(img, nil, pollInterval)&0xFF == quitKey {
				logger.Info("scan quit from preview", "frames", frame)
				return nil, ErrCancelled
			}
			continue
		}

		logger.Info("barcode detected", "code", det.Text, "variant", det.Variant, "frame", frame)
		if l.display != nil {
			l.display.Show(img, &det, holdDetected)
		}
		return &Result{Detection: det, Frame: frame, Image: img}, nil
	}
}
