package barcode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
)

const zbarBinary = "zbarimg"

// zbarimg exits with status 4 when the image holds no symbol.
const zbarNoSymbols = 4

// ZBar shells out to zbarimg. It cannot report symbol positions.
type ZBar struct {
	path string
}

func NewZBar() *ZBar {
	path, _ := exec.LookPath(zbarBinary)
	return &ZBar{path: path}
}

func zbarAvailable() bool {
	_, err := exec.LookPath(zbarBinary)
	return err == nil
}

func (z *ZBar) Name() string { return BackendZBar }

func (z *ZBar) Decode(img image.Image) ([]Result, error) {
	tmp, err := os.CreateTemp("", "bookscan-*.png")
	if err != nil {
		return nil, fmt.Errorf("create temp frame: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(z.path, "--quiet", "--raw", tmp.Name())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == zbarNoSymbols {
			return nil, nil
		}
		return nil, fmt.Errorf("zbarimg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseZBarOutput(stdout.Bytes()), nil
}

// parseZBarOutput turns raw zbarimg output, one symbol per line, into results.
func parseZBarOutput(out []byte) []Result {
	var results []Result
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if text := strings.TrimSpace(sc.Text()); text != "" {
			results = append(results, Result{Text: text})
		}
	}
	return results
}
