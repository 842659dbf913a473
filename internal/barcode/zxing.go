package barcode

import (
	"image"
	"math"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ZXing decodes in-process with gozxing. Book barcodes are EAN-13; the other
// formats cover shelf labels and library stickers.
type ZXing struct {
	readers []gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

func NewZXing() *ZXing {
	return &ZXing{
		readers: []gozxing.Reader{
			oned.NewEAN13Reader(),
			oned.NewEAN8Reader(),
			oned.NewUPCAReader(),
			oned.NewCode128Reader(),
			qrcode.NewQRCodeReader(),
		},
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

func (z *ZXing) Name() string { return BackendZXing }

// Decode returns the symbols found by every reader, in reader order.
func (z *ZXing) Decode(img image.Image) ([]Result, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, r := range z.readers {
		res, err := r.Decode(bmp, z.hints)
		r.Reset()
		if err != nil {
			continue
		}
		text := strings.TrimSpace(res.GetText())
		if text == "" {
			continue
		}
		results = append(results, Result{Text: text, Bounds: boundsOf(res.GetResultPoints())})
	}
	return results, nil
}

// boundsOf is the smallest rectangle containing points. 1-D readers report
// points on a single scan line, so degenerate sides are padded.
func boundsOf(points []gozxing.ResultPoint) *image.Rectangle {
	if len(points) == 0 {
		return nil
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		if p == nil {
			continue
		}
		minX = math.Min(minX, p.GetX())
		minY = math.Min(minY, p.GetY())
		maxX = math.Max(maxX, p.GetX())
		maxY = math.Max(maxY, p.GetY())
	}
	if math.IsInf(minX, 1) {
		return nil
	}

	rect := image.Rect(int(minX), int(minY), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	if rect.Dy() < 2 {
		rect.Min.Y -= 2
		rect.Max.Y += 2
	}
	if rect.Dx() < 2 {
		rect.Min.X -= 2
		rect.Max.X += 2
	}
	return &rect
}
