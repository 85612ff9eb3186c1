package stage

import (
	"fmt"

	"github.com/rm-hull/label-noise/internal/photometric"
	"github.com/rm-hull/label-noise/internal/raster"
)

type ContrastStage struct {
	Factor float64
}

// Process pushes samples away from (or towards) mid-grey by Factor
func (s *ContrastStage) Process(img *raster.Image) error {
	img.Replace(photometric.AdjustContrast(img, s.Factor))
	return nil
}

func (s *ContrastStage) String() string {
	return fmt.Sprintf("contrast(factor=%.4f)", s.Factor)
}
