package opencv

import (
	"image"
	"image/color"
	"time"

	"bookscan/internal/barcode"

	"gocv.io/x/gocv"
)

const hint = "Hold barcode STEADY inside the box | Press 'q' to quit"

var (
	green  = color.RGBA{G: 255}
	yellow = color.RGBA{R: 255, G: 255}
)

// Window is the live preview shown while scanning.
type Window struct {
	win *gocv.Window
}

func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show draws frame with either the aiming box or the detected symbol and
// waits up to wait for a key press. It returns the key code, or -1.
func (w *Window) Show(frame image.Image, det *barcode.Detection, wait time.Duration) int {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return w.win.WaitKey(waitMillis(wait))
	}
	defer mat.Close()

	if det != nil {
		if det.Bounds != nil {
			gocv.Rectangle(&mat, *det.Bounds, green, 3)
			gocv.PutText(&mat, det.Text, image.Pt(det.Bounds.Min.X, det.Bounds.Min.Y-10), gocv.FontHersheySimplex, 0.7, green, 2)
		}
	} else {
		gocv.Rectangle(&mat, guideBox(frame.Bounds()), yellow, 2)
		gocv.PutText(&mat, hint, image.Pt(10, 30), gocv.FontHersheySimplex, 0.6, green, 2)
	}

	w.win.IMShow(mat)
	return w.win.WaitKey(waitMillis(wait))
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}

// guideBox is centred, 60% of the width and 35% of the height.
func guideBox(b image.Rectangle) image.Rectangle {
	cx, cy := b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2
	bw, bh := b.Dx()*60/100, b.Dy()*35/100
	return image.Rect(cx-bw/2, cy-bh/2, cx+bw/2, cy+bh/2)
}

func waitMillis(d time.Duration) int {
	ms := int(d / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}
