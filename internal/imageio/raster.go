// Package imageio provides image loading and saving for plainsight.
package imageio

import (
	"fmt"
	"image"
	"image/color"
)

// Raster is a decoded image as a flat, channel-interleaved byte buffer.
type Raster struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height, channels int) *Raster {
	return &Raster{
		Pix:      make([]byte, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// Validate checks that the buffer length matches the geometry.
func (r *Raster) Validate() error {
	switch r.Channels {
	case 1, 3, 4:
	default:
		return fmt.Errorf("imageio: unsupported channel count %d", r.Channels)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("imageio: invalid size %dx%d", r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height*r.Channels {
		return fmt.Errorf("imageio: buffer holds %d bytes, want %d", len(r.Pix), r.Width*r.Height*r.Channels)
	}
	return nil
}

// WithPix returns a copy of r's geometry carrying pix.
func (r *Raster) WithPix(pix []byte) *Raster {
	return &Raster{Pix: pix, Width: r.Width, Height: r.Height, Channels: r.Channels}
}

// FromImage flattens img into a Raster, choosing the channel layout from
// the image's color model and opacity.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch {
	case isGray(img):
		r := NewRaster(w, h, 1)
		if g, ok := img.(*image.Gray); ok {
			for y := 0; y < h; y++ {
				copy(r.Pix[y*w:(y+1)*w], g.Pix[(y)*g.Stride:(y)*g.Stride+w])
			}
			return r
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				r.Pix[y*w+x] = c.Y
			}
		}
		return r

	case isOpaque(img):
		r := NewRaster(w, h, 3)
		i := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
				i += 3
			}
		}
		return r

	default:
		r := NewRaster(w, h, 4)
		if n, ok := img.(*image.NRGBA); ok {
			for y := 0; y < h; y++ {
				copy(r.Pix[y*w*4:(y+1)*w*4], n.Pix[y*n.Stride:y*n.Stride+w*4])
			}
			return r
		}
		i := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = c.R, c.G, c.B, c.A
				i += 4
			}
		}
		return r
	}
}

// Image returns r as an image.Image without copying the pixels of
// grayscale and RGBA rasters.
func (r *Raster) Image() image.Image {
	rect := image.Rect(0, 0, r.Width, r.Height)

	switch r.Channels {
	case 1:
		return &image.Gray{Pix: r.Pix, Stride: r.Width, Rect: rect}
	case 4:
		return &image.NRGBA{Pix: r.Pix, Stride: r.Width * 4, Rect: rect}
	default:
		img := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
			img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = r.Pix[i], r.Pix[i+1], r.Pix[i+2], 0xFF
		}
		return img
	}
}

func isGray(img image.Image) bool {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	case *image.Paletted:
		return grayPalette(m.Palette)
	}
	return false
}

// grayPalette reports whether every palette entry is an opaque gray.
func grayPalette(p color.Palette) bool {
	for _, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		if n.A != 0xFF || n.R != n.G || n.G != n.B {
			return false
		}
	}
	return len(p) > 0
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
				return false
			}
		}
	}
	return true
}
