package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "books.csv", cfg.BooksCSV)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 0, cfg.CatalogMaxRetries)
	assert.Equal(t, 3, cfg.RecommendationLimit)
	assert.Equal(t, SourceWebcam, cfg.CameraSource)
	assert.Equal(t, 1280, cfg.FrameWidth)
	assert.Equal(t, 720, cfg.FrameHeight)
	assert.False(t, cfg.CacheEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BOOKS_CSV", "/tmp/library.csv")
	t.Setenv("CATALOG_TIMEOUT", "2s")
	t.Setenv("CAMERA_SOURCE", "rtsp")
	t.Setenv("RTSP_URL", "rtsp://cam.local/stream")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/library.csv", cfg.BooksCSV)
	assert.Equal(t, 2*time.Second, cfg.CatalogTimeout)
	assert.True(t, cfg.CacheEnabled())

	dev, err := cfg.CameraDevice()
	require.NoError(t, err)
	assert.Equal(t, "rtsp://cam.local/stream", dev)
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HTTP_PORT", "")
	require.NoError(t, os.Unsetenv("HTTP_PORT"))

	_, err := LoadConfig(filepath.Join(dir, "missing.env"))
	require.NoError(t, err, "a missing env file is tolerated")

	_, err = LoadConfig(dir)
	assert.ErrorContains(t, err, "could not read")

	path := filepath.Join(dir, "bookscan.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9100\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTPPort)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("FRAME_WIDTH", "wide")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestCameraDeviceWebcamIndex(t *testing.T) {
	cfg := &Config{CameraSource: SourceWebcam, CameraIndex: " 2 "}
	dev, err := cfg.CameraDevice()
	require.NoError(t, err)
	assert.Equal(t, 2, dev)

	cfg.CameraIndex = "front"
	_, err = cfg.CameraDevice()
	assert.ErrorContains(t, err, "webcam index must be a number")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.CatalogISBNURL = "https://example.com/volumes"
	cfg.Decoder = "zxing-cpp"
	cfg.LogFormat = "xml"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{isbn}")
	assert.Contains(t, err.Error(), "DECODER")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
