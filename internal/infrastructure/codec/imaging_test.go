package codec

import (
	"bytes"
	stdimage "image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imageresizer/internal/domain/image"
)

func gradientPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImaging_Resize(t *testing.T) {
	src := gradientPNG(t, 1000, 500)

	tests := []struct {
		name         string
		opts         image.ResizeOptions
		wantW, wantH int
	}{
		{name: "no options keeps dimensions", opts: image.ResizeOptions{}, wantW: 1000, wantH: 500},
		{name: "width only keeps aspect", opts: image.ResizeOptions{Width: 100}, wantW: 100, wantH: 50},
		{name: "height only keeps aspect", opts: image.ResizeOptions{Height: 100}, wantW: 200, wantH: 100},
		{name: "both sides cover and crop", opts: image.ResizeOptions{Width: 300, Height: 300}, wantW: 300, wantH: 300},
		{name: "upscale", opts: image.ResizeOptions{Width: 2000}, wantW: 2000, wantH: 1000},
		{name: "quality out of range is clamped by encoder", opts: image.ResizeOptions{Width: 50, Quality: 150}, wantW: 50, wantH: 25},
	}

	c := New()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, c.Resize(bytes.NewReader(src), &out, tt.opts))

			md, err := c.Metadata(bytes.NewReader(out.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, md.Width)
			assert.Equal(t, tt.wantH, md.Height)
			assert.Equal(t, image.OutputFormat, md.Format)
		})
	}
}

func TestImaging_ResizeIsDeterministic(t *testing.T) {
	src := gradientPNG(t, 1000, 500)
	c := New()

	var a, b bytes.Buffer
	require.NoError(t, c.Resize(bytes.NewReader(src), &a, image.ResizeOptions{Width: 100}))
	require.NoError(t, c.Resize(bytes.NewReader(src), &b, image.ResizeOptions{Width: 100}))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestImaging_QualityAffectsSize(t *testing.T) {
	src := gradientPNG(t, 400, 400)
	c := New()

	var low, high bytes.Buffer
	require.NoError(t, c.Resize(bytes.NewReader(src), &low, image.ResizeOptions{Quality: 10}))
	require.NoError(t, c.Resize(bytes.NewReader(src), &high, image.ResizeOptions{Quality: 95}))
	assert.Less(t, low.Len(), high.Len())
}

func TestImaging_Metadata(t *testing.T) {
	c := New()

	md, err := c.Metadata(bytes.NewReader(gradientPNG(t, 64, 32)))
	require.NoError(t, err)
	assert.Equal(t, image.Metadata{Width: 64, Height: 32, Format: "png"}, md)

	var g bytes.Buffer
	pal := stdimage.NewPaletted(stdimage.Rect(0, 0, 10, 20), color.Palette{color.Black, color.White})
	require.NoError(t, gif.Encode(&g, pal, nil))
	md, err = c.Metadata(&g)
	require.NoError(t, err)
	assert.Equal(t, "gif", md.Format)
	assert.Equal(t, 10, md.Width)
}

func TestImaging_CorruptInput(t *testing.T) {
	c := New()

	err := c.Resize(bytes.NewReader([]byte("definitely not an image")), &bytes.Buffer{}, image.ResizeOptions{})
	require.ErrorIs(t, err, image.ErrCodecFailure)

	_, err = c.Metadata(bytes.NewReader(nil))
	require.ErrorIs(t, err, image.ErrCodecFailure)
}

func TestImaging_ResizeRejectsOversizedTarget(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		opts image.ResizeOptions
	}{
		{name: "width only on wide source", src: gradientPNG(t, 1000, 500), opts: image.ResizeOptions{Width: 100000}},
		{name: "height only on tall source", src: gradientPNG(t, 2, 1000), opts: image.ResizeOptions{Height: 10_000_000}},
		{name: "width only on tall source", src: gradientPNG(t, 2, 1000), opts: image.ResizeOptions{Width: 20000}},
		{name: "both sides", src: gradientPNG(t, 10, 10), opts: image.ResizeOptions{Width: 12000, Height: 12000}},
		{name: "both sides huge", src: gradientPNG(t, 1000, 500), opts: image.ResizeOptions{Width: 1_000_000, Height: 1_000_000}},
	}

	c := New()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := c.Resize(bytes.NewReader(tt.src), &out, tt.opts)
			require.ErrorIs(t, err, image.ErrCodecFailure)
			assert.Zero(t, out.Len())
		})
	}
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		opts         image.ResizeOptions
		wantW, wantH float64
	}{
		{name: "pass through", srcW: 1000, srcH: 500, wantW: 1000, wantH: 500},
		{name: "width only", srcW: 1000, srcH: 500, opts: image.ResizeOptions{Width: 100}, wantW: 100, wantH: 50},
		{name: "height only", srcW: 1000, srcH: 500, opts: image.ResizeOptions{Height: 100}, wantW: 200, wantH: 100},
		{name: "derived side at least one", srcW: 1000, srcH: 1, opts: image.ResizeOptions{Width: 10}, wantW: 10, wantH: 1},
		{name: "fill on large source crops first", srcW: 1000, srcH: 500, opts: image.ResizeOptions{Width: 300, Height: 300}, wantW: 300, wantH: 300},
		{name: "fill on small source covers first", srcW: 50, srcH: 10, opts: image.ResizeOptions{Width: 200, Height: 200}, wantW: 1000, wantH: 200},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w, h := targetSize(tt.srcW, tt.srcH, tt.opts)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
