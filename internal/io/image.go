package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

const jpegQuality = 90

// CoverOptions controls how a downloaded cover is stored.
type CoverOptions struct {
	// MaxSize bounds both dimensions; zero keeps the original size.
	MaxSize int

	// ToJPEG re-encodes the image as JPEG.
	ToJPEG bool
}

// Cover is a processed cover image and the file extension matching its encoding.
type Cover struct {
	Data []byte
	Ext  string
}

// ProcessCover prepares cover art for saving next to the tracks.
//
// Without resizing or conversion the data is returned untouched and only
// sniffed for its extension. Otherwise the image is decoded, shrunk to fit
// MaxSize keeping its aspect ratio, and encoded as JPEG.
func ProcessCover(ctx context.Context, data []byte, opts CoverOptions) (*Cover, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.MaxSize <= 0 && !opts.ToJPEG {
		_, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &Cover{Data: data, Ext: extension(format)}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if opts.MaxSize > 0 {
		img = fit(img, opts.MaxSize)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return &Cover{Data: buf.Bytes(), Ext: ".jpg"}, nil
}

// fit scales img down so neither side exceeds size.
func fit(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= size && height <= size {
		return img
	}

	if width >= height {
		height = max(1, height*size/width)
		width = size
	} else {
		width = max(1, width*size/height)
		height = size
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func extension(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}
