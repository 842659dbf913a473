// Package opencv captures frames from webcams and RTSP streams through
// OpenCV and draws the scan preview window.
package opencv

import (
	"fmt"
	"image"

	"bookscan/internal/camera"

	"gocv.io/x/gocv"
)

// Capture is a camera.Source backed by an OpenCV VideoCapture.
type Capture struct {
	device interface{}
	vc     *gocv.VideoCapture
	mat    gocv.Mat
}

// Open opens a webcam by index (int) or a stream by URL (string) and asks
// for the given frame size.
func Open(device interface{}, width, height int) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w %v: %v", camera.ErrOpen, device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w %v", camera.ErrOpen, device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))

	return &Capture{device: device, vc: vc, mat: gocv.NewMat()}, nil
}

// Read blocks for the next frame.
func (c *Capture) Read() (image.Image, error) {
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, fmt.Errorf("%w from %v", camera.ErrNoFrame, c.device)
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", camera.ErrNoFrame, err)
	}
	return img, nil
}

// Close releases the frame buffer and the device.
func (c *Capture) Close() error {
	c.mat.Close()
	return c.vc.Close()
}
