package stage

import (
	"github.com/rm-hull/label-noise/internal/raster"
)

type GreyscaleStage struct{}

// Process collapses a B, G, R image to a single luminance channel
// Single channel images pass through untouched
// Reference: https://en.wikipedia.org/wiki/Grayscale#Luma_coding_in_video_systems
func (s *GreyscaleStage) Process(img *raster.Image) error {
	if img.Channels == 1 {
		return nil
	}
	gs := raster.New(img.Width, img.Height, 1)
	for i := range gs.Pix {
		b, g, r := img.Pix[i*3], img.Pix[i*3+1], img.Pix[i*3+2]
		gs.Pix[i] = raster.Clip(0.299*r + 0.587*g + 0.114*b)
	}
	img.Replace(gs)
	return nil
}

func (s *GreyscaleStage) String() string {
	return "greyscale"
}
