package stage

import (
	"fmt"

	"github.com/rm-hull/label-noise/internal/photometric"
	"github.com/rm-hull/label-noise/internal/raster"
)

type GammaStage struct {
	Gamma float64
}

// Process applies 8-bit lookup table gamma correction
func (s *GammaStage) Process(img *raster.Image) error {
	img.Replace(photometric.GammaCorrection(img, s.Gamma))
	return nil
}

func (s *GammaStage) String() string {
	return fmt.Sprintf("gamma(gamma=%.4f)", s.Gamma)
}
