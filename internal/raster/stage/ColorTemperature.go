package stage

import (
	"fmt"

	"github.com/rm-hull/label-noise/internal/photometric"
	"github.com/rm-hull/label-noise/internal/raster"
)

type ColorTemperatureStage struct {
	Factor float64
}

// Process scales channel 0 up and channel 2 down by Factor
// Factors above 1 shift the image towards channel 0
func (s *ColorTemperatureStage) Process(img *raster.Image) error {
	img.Replace(photometric.AdjustColorTemperature(img, s.Factor))
	return nil
}

func (s *ColorTemperatureStage) String() string {
	return fmt.Sprintf("temperature(factor=%.4f)", s.Factor)
}
