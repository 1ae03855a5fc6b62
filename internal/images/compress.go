// Package images produces the compressed inline images stored on menu
// documents: JPEG data URIs capped at 1200px and roughly 500KB.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension caps the longer side of the output raster.
	MaxDimension = 1200
	// TargetBytes bounds the encoded data URI length.
	TargetBytes = 500 * 1024

	qualityStart = 90
	qualityFloor = 10
	qualityStep  = 10

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Result describes a compressed image.
type Result struct {
	DataURI string `json:"data_uri"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality int    `json:"quality"`
	Size    int    `json:"size"`
}

// Compress decodes r (JPEG, PNG or GIF), scales it down so neither side
// exceeds MaxDimension (aspect ratio preserved, never upscaled), then
// re-encodes as JPEG at decreasing quality until the data URI estimate is
// under TargetBytes or the quality floor is reached.
func Compress(r io.Reader) (Result, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}

	w, h := fitDimensions(src.Bounds().Dx(), src.Bounds().Dy())
	img := scale(src, w, h)

	var buf bytes.Buffer
	q := qualityStart
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return Result{}, fmt.Errorf("encode jpeg: %w", err)
		}
		if encodedSize(buf.Len()) <= TargetBytes || q <= qualityFloor {
			break
		}
		q -= qualityStep
	}

	return Result{
		DataURI: dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   w,
		Height:  h,
		Quality: q,
		Size:    encodedSize(buf.Len()),
	}, nil
}

// fitDimensions shrinks (w, h) so the longer side is at most MaxDimension,
// keeping the aspect ratio. Dimensions already inside the cap pass through.
func fitDimensions(w, h int) (int, int) {
	if w <= MaxDimension && h <= MaxDimension {
		return w, h
	}
	if w >= h {
		nh := (h*MaxDimension + w/2) / w
		if nh < 1 {
			nh = 1
		}
		return MaxDimension, nh
	}
	nw := (w*MaxDimension + h/2) / h
	if nw < 1 {
		nw = 1
	}
	return nw, MaxDimension
}

func scale(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// encodedSize is the length of the full data URI for n raw JPEG bytes.
func encodedSize(n int) int {
	return len(dataURIPrefix) + base64.StdEncoding.EncodedLen(n)
}
