// Package imageio provides image loading and saving for plainsight.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/plainsight/plainsight-go/internal/core/domain"
)

// Format names an image encoding.
type Format string

// Supported formats.
const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatWebP Format = "webp"
)

// DefaultMaxPixels bounds the decoded size of an image.
const DefaultMaxPixels = 64 << 20

// Lossless reports whether f preserves every pixel bit when written.
func (f Format) Lossless() bool {
	return f == FormatPNG || f == FormatBMP
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// ParseOutputFormat parses the name of a writable format.
func ParseOutputFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatPNG, nil
	}
	if !f.Lossless() {
		return "", domain.ErrUnsupportedImage.WithDetails(
			fmt.Sprintf("cannot write %q, use png or bmp", s))
	}
	return f, nil
}

// Decode reads an image and flattens it into a Raster. Images with more
// than DefaultMaxPixels pixels are rejected before their pixels are
// decoded.
func Decode(r io.Reader) (*Raster, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: read image: %w", err)
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", unsupported(err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > DefaultMaxPixels {
		return nil, "", domain.ErrUnsupportedImage.WithDetails(
			fmt.Sprintf("image size %dx%d is out of range", cfg.Width, cfg.Height))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", unsupported(err)
	}
	return FromImage(img), Format(name), nil
}

// Load decodes the image file at path.
func Load(path string) (*Raster, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", domain.ErrInvalidImagePath.WithCause(err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes r to w in format f, which must be lossless.
// BMP carries no alpha channel, so 4-channel rasters must be written as PNG.
func Encode(w io.Writer, r *Raster, f Format) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := CheckWritable(r, f); err != nil {
		return err
	}

	switch f {
	case FormatPNG:
		return png.Encode(w, r.Image())
	case FormatBMP:
		return bmp.Encode(w, r.Image())
	default:
		return domain.ErrUnsupportedImage.WithDetails(
			fmt.Sprintf("cannot write %q, use png or bmp", f))
	}
}

// CheckWritable reports whether f can hold every channel of r without
// changing a pixel byte.
func CheckWritable(r *Raster, f Format) error {
	if f == FormatBMP && r.Channels == 4 {
		return domain.ErrUnsupportedImage.WithDetails(
			"bmp cannot store an alpha channel, use png for images with alpha")
	}
	return nil
}

// Save writes r to path in format f. The file is written to a temporary
// name in the same directory and renamed into place, so a failed write
// never leaves a truncated image behind.
func Save(path string, r *Raster, f Format) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".plainsight-*"+f.Ext())
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, r, f); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("imageio: write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("imageio: rename to %s: %w", path, err)
	}
	return nil
}

func unsupported(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return domain.ErrUnsupportedImage.WithCause(err)
	}
	return domain.ErrUnsupportedImage.WithDetails(err.Error())
}
