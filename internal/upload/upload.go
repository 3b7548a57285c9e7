// Package upload turns a local image file into the multipart payload the
// photo endpoints expect, downscaling oversized images first.
package upload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/five82/shutter/internal/api"
)

// DefaultJPEGQuality is used when Options.JPEGQuality is unset.
const DefaultJPEGQuality = 85

// Options control downscaling. MaxDimension <= 0 disables it.
type Options struct {
	MaxDimension int
	JPEGQuality  int
}

// Prepare reads path and returns it as an api.File. Images larger than
// MaxDimension on either side are resized to fit and re-encoded; anything
// else is passed through untouched.
func Prepare(path string, opts Options) (api.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.File{}, fmt.Errorf("read upload: %w", err)
	}
	return PrepareBytes(filepath.Base(path), data, opts)
}

// PrepareBytes is Prepare for in-memory content.
func PrepareBytes(name string, data []byte, opts Options) (api.File, error) {
	if len(data) == 0 {
		return api.File{}, fmt.Errorf("upload %s is empty", name)
	}
	file := api.File{Name: name, ContentType: http.DetectContentType(data), Data: data}
	if opts.MaxDimension <= 0 || !strings.HasPrefix(file.ContentType, "image/") {
		return file, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Formats without a registered decoder go up as-is.
		return file, nil
	}
	limit := opts.MaxDimension
	if cfg.Width <= limit && cfg.Height <= limit {
		return file, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return api.File{}, fmt.Errorf("decode %s: %w", name, err)
	}
	scaled := resize.Thumbnail(uint(limit), uint(limit), img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, scaled); err != nil {
			return api.File{}, fmt.Errorf("encode %s: %w", name, err)
		}
		file.ContentType = "image/png"
	default:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
			return api.File{}, fmt.Errorf("encode %s: %w", name, err)
		}
		file.ContentType = "image/jpeg"
		if format != "jpeg" {
			file.Name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
		}
	}
	file.Data = buf.Bytes()
	return file, nil
}
