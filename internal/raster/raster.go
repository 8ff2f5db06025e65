package raster

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrEmptyImage is returned when a raster would have no pixels.
var ErrEmptyImage = errors.New("raster: zero-area image")

// RGB is an 8-bit gamma-encoded sRGB triple.
type RGB struct {
	R, G, B uint8
}

// Black is the colour a fresh canvas starts from.
var Black = RGB{}

// RGBA implements color.Color so an RGB can be handed to image/draw.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Raster is a width × height grid of RGB pixels stored row-major, three
// bytes per pixel.
type Raster struct {
	width  int
	height int
	pix    []uint8
}

// New creates a black raster.
func New(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}, nil
}

// FromImage copies any image.Image into a raster, dropping alpha.
func FromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	r, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			i := rgba.PixOffset(x, y)
			j := r.offset(x, y)
			r.pix[j+0] = rgba.Pix[i+0]
			r.pix[j+1] = rgba.Pix[i+1]
			r.pix[j+2] = rgba.Pix[i+2]
		}
	}
	return r, nil
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

func (r *Raster) offset(x, y int) int {
	if !r.In(x, y) {
		panic("raster: pixel out of range")
	}
	return (y*r.width + x) * 3
}

// At returns the pixel at (x, y). It panics outside the raster.
func (r *Raster) At(x, y int) RGB {
	i := r.offset(x, y)
	return RGB{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2]}
}

// Set writes the pixel at (x, y). It panics outside the raster.
func (r *Raster) Set(x, y int, c RGB) {
	i := r.offset(x, y)
	r.pix[i+0] = c.R
	r.pix[i+1] = c.G
	r.pix[i+2] = c.B
}

// Fill paints every pixel with c.
func (r *Raster) Fill(c RGB) {
	for i := 0; i < len(r.pix); i += 3 {
		r.pix[i+0] = c.R
		r.pix[i+1] = c.G
		r.pix[i+2] = c.B
	}
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.pix))
	copy(pix, r.pix)
	return &Raster{width: r.width, height: r.height, pix: pix}
}

// Equal reports whether both rasters have the same size and pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r.width != o.width || r.height != o.height {
		return false
	}
	for i := range r.pix {
		if r.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Image converts the raster to an opaque *image.RGBA.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			i := img.PixOffset(x, y)
			j := (y*r.width + x) * 3
			img.Pix[i+0] = r.pix[j+0]
			img.Pix[i+1] = r.pix[j+1]
			img.Pix[i+2] = r.pix[j+2]
			img.Pix[i+3] = 0xff
		}
	}
	return img
}
