package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/label-noise/internal/photometric"
	"github.com/rm-hull/label-noise/internal/raster"
)

type CLAHEStage struct {
	ClipLimit float64
	TileGrid  image.Point
}

func (s *CLAHEStage) grid() image.Point {
	if s.TileGrid == (image.Point{}) {
		return photometric.DefaultCLAHETileGrid
	}
	return s.TileGrid
}

// Process equalises local contrast tile by tile, limiting amplification to ClipLimit
// A zero TileGrid falls back to the 8x8 default
func (s *CLAHEStage) Process(img *raster.Image) error {
	out, err := photometric.CLAHEEnhancement(img, s.ClipLimit, s.grid())
	if err != nil {
		return fmt.Errorf("failed to equalise image: %w", err)
	}
	img.Replace(out)
	return nil
}

func (s *CLAHEStage) String() string {
	grid := s.grid()
	return fmt.Sprintf("clahe(clip=%.2f, tiles=%dx%d)", s.ClipLimit, grid.X, grid.Y)
}
