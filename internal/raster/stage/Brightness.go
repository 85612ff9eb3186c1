package stage

import (
	"fmt"

	"github.com/rm-hull/label-noise/internal/photometric"
	"github.com/rm-hull/label-noise/internal/raster"
)

type BrightnessStage struct {
	Factor float64
}

// Process multiplies every sample by Factor, clipping the result
func (s *BrightnessStage) Process(img *raster.Image) error {
	img.Replace(photometric.AdjustBrightness(img, s.Factor))
	return nil
}

func (s *BrightnessStage) String() string {
	return fmt.Sprintf("brightness(factor=%.4f)", s.Factor)
}

type NonlinearBrightnessStage struct {
	Gamma float64
}

// Process raises every sample to the power Gamma
// Gamma below 1 brightens mid-tones, above 1 darkens them
func (s *NonlinearBrightnessStage) Process(img *raster.Image) error {
	img.Replace(photometric.AdjustBrightnessNonlinear(img, s.Gamma))
	return nil
}

func (s *NonlinearBrightnessStage) String() string {
	return fmt.Sprintf("brightness-nonlinear(gamma=%.4f)", s.Gamma)
}
