package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// Image is an in-memory raster target for an Adapter.
type Image struct {
	*Adapter
	img *vgimg.Canvas
}

// NewImage returns a width×height pixel image cleared to background.
func NewImage(width, height int, background color.Color, opts Options) *Image {
	c := vgimg.New(vg.Length(width), vg.Length(height))
	a := NewAdapter(c, float64(width), float64(height), opts)
	if background != nil {
		a.Clear(background)
	}
	return &Image{Adapter: a, img: c}
}

// WritePNG encodes the image as PNG.
func (im *Image) WritePNG(w io.Writer) error {
	if _, err := (vgimg.PngCanvas{Canvas: im.img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
