package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
)

// Image is a dense, row-major grid of float samples. Channels is either 1
// (intensity) or 3 (colour); colour samples are interleaved per pixel.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64
}

func New(width, height, channels int) *Image {
	if channels != 1 && channels != 3 {
		panic(fmt.Sprintf("raster: unsupported channel count %d", channels))
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float64, width*height*channels),
	}
}

func (img *Image) Clone() *Image {
	out := &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Pix:      make([]float64, len(img.Pix)),
	}
	copy(out.Pix, img.Pix)
	return out
}

func (img *Image) offset(x, y, c int) int {
	return (y*img.Width+x)*img.Channels + c
}

func (img *Image) At(x, y, c int) float64 {
	return img.Pix[img.offset(x, y, c)]
}

func (img *Image) Set(x, y, c int, v float64) {
	img.Pix[img.offset(x, y, c)] = v
}

// Map returns a new image where every sample is fn(sample, channel).
// Rows are processed in parallel; fn must not depend on evaluation order.
func (img *Image) Map(fn func(v float64, c int) float64) *Image {
	out := New(img.Width, img.Height, img.Channels)
	stride := img.Width * img.Channels
	parallel.Line(img.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i++ {
			out.Pix[i] = fn(img.Pix[i], i%img.Channels)
		}
	})
	return out
}

// MinMax returns the smallest and largest samples. An empty image reports (0, 0).
func (img *Image) MinMax() (float64, float64) {
	if len(img.Pix) == 0 {
		return 0, 0
	}
	return floats.Min(img.Pix), floats.Max(img.Pix)
}

// Clip bounds v into [0, 1]. NaN maps to 0.
func Clip(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}

// FromImage converts src into a float image in [0, 1]. Grey sources produce a
// single channel; everything else produces three channels stored as B, G, R.
// Alpha is discarded.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		out := New(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
				out.Set(x, y, 0, float64(g.Y)/0xffff)
			}
		}
		return out
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)

	out := New(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := nrgba.PixOffset(x, y)
			out.Set(x, y, 0, float64(nrgba.Pix[i+2])/255)
			out.Set(x, y, 1, float64(nrgba.Pix[i+1])/255)
			out.Set(x, y, 2, float64(nrgba.Pix[i])/255)
		}
	}
	return out
}

// ToImage quantises img back to 8 bits. Single channel images become
// *image.Gray, colour images an opaque *image.NRGBA.
func (img *Image) ToImage() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	if img.Channels == 1 {
		out := image.NewGray(rect)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.SetGray(x, y, color.Gray{Y: To8Bit(img.At(x, y, 0))})
			}
		}
		return out
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetNRGBA(x, y, color.NRGBA{
				R: To8Bit(img.At(x, y, 2)),
				G: To8Bit(img.At(x, y, 1)),
				B: To8Bit(img.At(x, y, 0)),
				A: 255,
			})
		}
	}
	return out
}

// To8Bit maps a [0, 1] sample to the nearest 8-bit value, saturating outside the range.
func To8Bit(v float64) uint8 {
	return uint8(math.Round(Clip(v) * 255))
}
