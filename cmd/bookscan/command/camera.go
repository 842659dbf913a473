package command

import (
	"errors"

	"bookscan/internal/camera"
	"bookscan/internal/scan"
)

// CameraOpener opens device at the requested frame size and, when preview
// is set, a window to show frames in. release closes whatever was opened.
type CameraOpener func(device interface{}, width, height int, preview bool) (src camera.Source, display scan.Display, release func(), err error)

var errNoCamera = errors.New("camera support is not available in this build")

var openCamera CameraOpener = func(interface{}, int, int, bool) (camera.Source, scan.Display, func(), error) {
	return nil, nil, nil, errNoCamera
}

// SetCameraOpener installs the device backend used by the scan command.
func SetCameraOpener(o CameraOpener) {
	openCamera = o
}
