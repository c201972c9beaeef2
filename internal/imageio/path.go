// Package imageio provides image loading and saving for plainsight.
package imageio

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/plainsight/plainsight-go/internal/core/domain"
)

// InputExtensions lists the extensions ValidImagePath accepts.
var InputExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// ValidImagePath checks that path names an existing regular file with
// exactly one supported extension. "photo.png.jpg", "photo." and "photo"
// are all rejected.
func ValidImagePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ErrEmptyArgument.WithDetails("image path")
	}

	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || strings.Contains(stem, ".") || !slices.Contains(InputExtensions, ext) {
		return domain.ErrInvalidImagePath.WithDetails(
			fmt.Sprintf("%s: expected a single extension out of %s", path, strings.Join(InputExtensions, ", ")))
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.ErrInvalidImagePath.WithCause(err)
	}
	if !info.Mode().IsRegular() {
		return domain.ErrInvalidImagePath.WithDetails(path + ": not a regular file")
	}
	return nil
}

// OutputPath derives the path of an encoded image from its source:
// "<dir>/<stem>-<hex>.<ext>", where hex is a random value in
// 0x1000..0xffff so the suffix always has four digits. If dir is not
// empty it replaces the source directory.
func OutputPath(input, dir string, f Format) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	suffix := 0x1000 + rand.IntN(0x10000-0x1000)
	return filepath.Join(dir, fmt.Sprintf("%s-%04x%s", stem, suffix, f.Ext()))
}
