package barcode

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"bookscan/internal/logging"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// scriptedDecoder succeeds on the listed call numbers (1-based) and records
// every image it was given.
type scriptedDecoder struct {
	succeedOn map[int]Result
	failOn    map[int]error
	calls     int
	seen      []image.Rectangle
}

func (d *scriptedDecoder) Name() string { return "scripted" }

func (d *scriptedDecoder) Decode(img image.Image) ([]Result, error) {
	d.calls++
	d.seen = append(d.seen, img.Bounds())
	if err, ok := d.failOn[d.calls]; ok {
		return nil, err
	}
	if res, ok := d.succeedOn[d.calls]; ok {
		return []Result{res}, nil
	}
	return nil, nil
}

func TestVariantsOrderAndSize(t *testing.T) {
	variants := Variants(uniform(40, 20, 90))
	require.Len(t, variants, 4)

	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"grayscale", "equalized", "sharpened", "upscaled"}, names)

	for _, v := range variants[:3] {
		assert.Equal(t, image.Rect(0, 0, 40, 20), v.Image.Bounds(), v.Name)
		assert.Equal(t, 1, v.Scale)
	}
	assert.Equal(t, image.Rect(0, 0, 80, 40), variants[3].Image.Bounds())
	assert.Equal(t, 2, variants[3].Scale)
}

func TestVariantsConvertColorToGray(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			frame.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}

	gray := Variants(frame)[0].Image
	r, g, b, _ := gray.At(1, 1).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestEqualizeStretchesContrast(t *testing.T) {
	img := uniform(10, 10, 100)
	for i := 0; i < 50; i++ {
		img.Pix[i] = 110
	}

	eq := Equalize(img)
	low := color.GrayModel.Convert(eq.At(9, 9)).(color.Gray).Y
	high := color.GrayModel.Convert(eq.At(0, 0)).(color.Gray).Y
	assert.EqualValues(t, 0, low)
	assert.EqualValues(t, 255, high)
}

func TestEqualizeLeavesSingleToneImage(t *testing.T) {
	eq := Equalize(uniform(8, 8, 77))
	assert.EqualValues(t, 77, color.GrayModel.Convert(eq.At(3, 3)).(color.Gray).Y)
}

func TestLocatorStopsAtFirstSuccessfulVariant(t *testing.T) {
	dec := &scriptedDecoder{succeedOn: map[int]Result{2: {Text: "9780441172719"}}}
	loc := NewLocator(dec, logging.Discard())

	det, ok := loc.Locate(uniform(20, 10, 50))
	require.True(t, ok)
	assert.Equal(t, "9780441172719", det.Text)
	assert.Equal(t, "equalized", det.Variant)
	assert.Nil(t, det.Bounds)
	assert.Equal(t, 2, dec.calls)
}

func TestLocatorScalesUpscaledBoundsBack(t *testing.T) {
	box := image.Rect(20, 10, 60, 30)
	dec := &scriptedDecoder{succeedOn: map[int]Result{4: {Text: "42", Bounds: &box}}}
	loc := NewLocator(dec, logging.Discard())

	det, ok := loc.Locate(uniform(40, 20, 50))
	require.True(t, ok)
	assert.Equal(t, "upscaled", det.Variant)
	require.NotNil(t, det.Bounds)
	assert.Equal(t, image.Rect(10, 5, 30, 15), *det.Bounds)
}

func TestLocatorSkipsDecoderErrors(t *testing.T) {
	dec := &scriptedDecoder{
		failOn:    map[int]error{1: errors.New("bad bitmap")},
		succeedOn: map[int]Result{3: {Text: "42"}},
	}
	det, ok := NewLocator(dec, logging.Discard()).Locate(uniform(10, 10, 50))
	require.True(t, ok)
	assert.Equal(t, "sharpened", det.Variant)
}

func TestLocatorReportsNothingWhenAllVariantsFail(t *testing.T) {
	dec := &scriptedDecoder{}
	_, ok := NewLocator(dec, logging.Discard()).Locate(uniform(10, 10, 50))
	assert.False(t, ok)
	assert.Equal(t, 4, dec.calls)
}

func TestZXingDecodesQRCode(t *testing.T) {
	matrix, err := qrcode.NewQRCodeWriter().Encode("9780441172719", gozxing.BarcodeFormat_QR_CODE, 200, 200, nil)
	require.NoError(t, err)

	results, err := NewZXing().Decode(matrix)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "9780441172719", results[0].Text)
	assert.NotNil(t, results[0].Bounds)
}

func TestZXingFindsNothingInBlankFrame(t *testing.T) {
	results, err := NewZXing().Decode(uniform(120, 80, 255))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSelectBackends(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	logger := logging.Discard()

	assert.Equal(t, BackendZXing, Select(BackendZXing, logger).Name())
	assert.Equal(t, BackendZXing, Select(BackendZBar, logger).Name(), "zbarimg is not on PATH")

	none := Select(BackendNone, logger)
	assert.False(t, Enabled(none))
	_, err := none.Decode(uniform(1, 1, 0))
	assert.ErrorIs(t, err, ErrNoDecoder)
	assert.True(t, Enabled(NewZXing()))
}

func TestParseZBarOutput(t *testing.T) {
	results := parseZBarOutput([]byte("9780441172719\n\n  978-0-441  \n"))
	require.Len(t, results, 2)
	assert.Equal(t, "9780441172719", results[0].Text)
	assert.Equal(t, "978-0-441", results[1].Text)
	assert.Nil(t, results[0].Bounds)
}
