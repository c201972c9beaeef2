// Package imageio converts between image files and the flat pixel buffers
// the steganography core works on.
//
// A Raster stores pixels row-major with interleaved channels:
//
//   - 1 channel for grayscale sources
//   - 3 channels (R, G, B) for opaque sources
//   - 4 channels (R, G, B, A, non-premultiplied) for sources with alpha
//
// PNG, JPEG, GIF, BMP and WebP can be decoded. Only lossless formats (PNG
// and BMP) are written, since any lossy re-encoding destroys the least
// significant bits carrying a message.
package imageio
