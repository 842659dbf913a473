package main

import (
	"bookscan/cmd/bookscan/command"
	"bookscan/internal/camera"
	"bookscan/internal/camera/opencv"
	"bookscan/internal/scan"
)

func main() {
	command.SetCameraOpener(openCamera)
	command.Execute()
}

func openCamera(device interface{}, width, height int, preview bool) (camera.Source, scan.Display, func(), error) {
	src, err := opencv.Open(device, width, height)
	if err != nil {
		return nil, nil, nil, err
	}
	if !preview {
		return src, nil, func() { src.Close() }, nil
	}

	win := opencv.NewWindow("Barcode Scanner")
	return src, win, func() {
		win.Close()
		src.Close()
	}, nil
}
