// Package rastertest provides image fixtures for tests.
package rastertest

import "github.com/rm-hull/label-noise/internal/raster"

// Filled returns an image with every sample set to v.
func Filled(width, height, channels int, v float64) *raster.Image {
	img := raster.New(width, height, channels)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}
