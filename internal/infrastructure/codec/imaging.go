// Package codec adapts github.com/disintegration/imaging to the resize
// engine. Any decode or encode failure is reported as image.ErrCodecFailure.
package codec

import (
	"bytes"
	"fmt"
	stdimage "image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"imageresizer/internal/domain/image"
)

// upper bound on width*height of both the decoded source and the output
const maxPixels = 100_000_000

type Imaging struct {
	filter imaging.ResampleFilter
}

func New() *Imaging { return &Imaging{filter: imaging.Lanczos} }

// Resize decodes src, scales it according to opts and writes a JPEG to dst.
// With both sides set the image is scaled to cover WxH and centre-cropped;
// with one side set the other follows the aspect ratio; with none the
// dimensions are kept.
func (c *Imaging) Resize(src io.Reader, dst io.Writer, opts image.ResizeOptions) error {
	raw, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if _, err = c.Metadata(bytes.NewReader(raw)); err != nil {
		return err
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("%w: decode: %w", image.ErrCodecFailure, err)
	}

	b := img.Bounds()
	if w, h := targetSize(b.Dx(), b.Dy(), opts); w*h > maxPixels {
		return fmt.Errorf("%w: target %.0fx%.0f exceeds %d pixels", image.ErrCodecFailure, w, h, maxPixels)
	}

	switch {
	case opts.Width > 0 && opts.Height > 0:
		img = imaging.Fill(img, opts.Width, opts.Height, imaging.Center, c.filter)
	case opts.Width > 0 || opts.Height > 0:
		img = imaging.Resize(img, opts.Width, opts.Height, c.filter)
	}

	if err = imaging.Encode(dst, img, imaging.JPEG, imaging.JPEGQuality(opts.QualityOrDefault())); err != nil {
		return fmt.Errorf("%w: encode: %w", image.ErrCodecFailure, err)
	}

	return nil
}

// targetSize returns the largest buffer imaging.Fill or imaging.Resize
// allocates for a srcW x srcH source. Fill on a source narrower than 100px
// on either side scales to cover before cropping, so the cover size counts.
// Floats keep huge requests from overflowing before the maxPixels check.
func targetSize(srcW, srcH int, opts image.ResizeOptions) (float64, float64) {
	w, h := float64(opts.Width), float64(opts.Height)
	sw, sh := float64(srcW), float64(srcH)
	switch {
	case w > 0 && h > 0:
		if srcW >= 100 && srcH >= 100 {
			return w, h
		}
		if sw/sh < w/h {
			return targetSize(srcW, srcH, image.ResizeOptions{Width: opts.Width})
		}
		return targetSize(srcW, srcH, image.ResizeOptions{Height: opts.Height})
	case w > 0:
		return w, math.Max(1, math.Floor(w*sh/sw+0.5))
	case h > 0:
		return math.Max(1, math.Floor(h*sw/sh+0.5)), h
	}
	return sw, sh
}

// Metadata reads only the image header. Size is left for the caller,
// which knows the byte count of the file.
func (c *Imaging) Metadata(src io.Reader) (image.Metadata, error) {
	cfg, format, err := stdimage.DecodeConfig(src)
	if err != nil {
		return image.Metadata{}, fmt.Errorf("%w: decode config: %w", image.ErrCodecFailure, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return image.Metadata{}, fmt.Errorf("%w: unsupported dimensions %dx%d", image.ErrCodecFailure, cfg.Width, cfg.Height)
	}

	return image.Metadata{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
