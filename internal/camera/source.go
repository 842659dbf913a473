// Package camera provides frame sources for the scan loop.
package camera

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrOpen is returned when a device or stream cannot be opened.
	ErrOpen = errors.New("could not open camera source")
	// ErrNoFrame is returned when the source cannot deliver another frame.
	ErrNoFrame = errors.New("failed to read frame")
)

// Source produces frames. Read blocks until the next frame is available and
// returns an error wrapping ErrNoFrame (or io.EOF for finite sources) when
// none can be read. Close releases the device.
type Source interface {
	Read() (image.Image, error)
	Close() error
}

// FileSource replays still images in order.
type FileSource struct {
	paths []string
	next  int
}

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

// NewFileSource accepts image files and directories; directory entries are
// taken in name order.
func NewFileSource(paths ...string) (*FileSource, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpen, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpen, err)
		}
		var inDir []string
		for _, e := range entries {
			if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			inDir = append(inDir, filepath.Join(p, e.Name()))
		}
		sort.Strings(inDir)
		files = append(files, inDir...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no images found", ErrOpen)
	}
	return &FileSource{paths: files}, nil
}

// Read decodes the next image. It returns io.EOF after the last one.
func (s *FileSource) Read() (image.Image, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFrame, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoFrame, path, err)
	}
	return img, nil
}

// Current returns the path of the image most recently read.
func (s *FileSource) Current() string {
	if s.next == 0 {
		return ""
	}
	return s.paths[s.next-1]
}

func (s *FileSource) Close() error { return nil }
