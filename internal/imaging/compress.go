// Package imaging shrinks selected image files before upload so multipart
// payloads stay small regardless of what the user picks.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"
)

const (
	// MaxDimension bounds the longest edge of a compressed image.
	MaxDimension = 1600
	// MaxBytes bounds the encoded output size.
	MaxBytes = 512 << 10
)

// Compress decodes data, downscales it to fit MaxDimension, and re-encodes
// it as JPEG, stepping the quality down until the result fits MaxBytes.
func Compress(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging.Compress: decode: %w", err)
	}

	img = scaleDown(img, MaxDimension)

	for quality := 85; quality >= 40; quality -= 15 {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("imaging.Compress: encode: %w", err)
		}
		if buf.Len() <= MaxBytes || quality == 40 {
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("imaging.Compress: unreachable")
}

// LoadFile reads and compresses the image at path, returning the encoded
// bytes and the filename to attach (original name with a .jpg extension).
func LoadFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("imaging.LoadFile: %w", err)
	}
	out, err := Compress(data)
	if err != nil {
		return nil, "", err
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
	return out, name, nil
}

// scaleDown resizes img so its longest edge is at most maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func scaleDown(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = h * maxDim / w
	} else {
		nh = maxDim
		nw = w * maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
