// Package photometric holds pure pixel-level transforms over raster images.
//
// Every function returns a new image of the same shape as its input and
// leaves the input untouched. Outputs are clipped into [0, 1], with the
// exception of CLAHEEnhancement which min-max normalises its result.
//
// Parameters are not validated. Non-positive temperature or gamma values
// produce deterministic but meaningless output rather than an error; callers
// that care should check them first.
package photometric

import (
	"math"

	"github.com/rm-hull/label-noise/internal/raster"
)

// AdjustColorTemperature scales channel 0 by factor and channel 2 by
// 1/factor, leaving channel 1 alone. Single channel images have no
// temperature and are only clipped.
func AdjustColorTemperature(img *raster.Image, factor float64) *raster.Image {
	if img.Channels != 3 {
		return img.Map(func(v float64, _ int) float64 { return raster.Clip(v) })
	}
	scale := [3]float64{factor, 1.0, 1.0 / factor}
	return img.Map(func(v float64, c int) float64 {
		return raster.Clip(v * scale[c])
	})
}

// AdjustContrast stretches samples away from (factor > 1) or towards
// (factor < 1) the 0.5 midpoint. Negative factors invert around it.
func AdjustContrast(img *raster.Image, factor float64) *raster.Image {
	return img.Map(func(v float64, _ int) float64 {
		return raster.Clip(factor*(v-0.5) + 0.5)
	})
}

// AdjustBrightness multiplies every sample by factor.
func AdjustBrightness(img *raster.Image, factor float64) *raster.Image {
	return img.Map(func(v float64, _ int) float64 {
		return raster.Clip(v * factor)
	})
}

// AdjustBrightnessNonlinear raises every sample to the power gamma, in full
// float precision.
func AdjustBrightnessNonlinear(img *raster.Image, gamma float64) *raster.Image {
	return img.Map(func(v float64, _ int) float64 {
		return raster.Clip(math.Pow(v, gamma))
	})
}

// GammaCorrection remaps samples through a 256 entry table holding
// (i/255)^(1/gamma). Unlike AdjustBrightnessNonlinear the image passes
// through 8 bits on the way, so the output is quantised.
func GammaCorrection(img *raster.Image, gamma float64) *raster.Image {
	table := gammaTable(gamma)
	return img.Map(func(v float64, _ int) float64 {
		return raster.Clip(float64(table[quantize(v)]) / 255)
	})
}

func gammaTable(gamma float64) [256]uint8 {
	invGamma := 1.0 / gamma
	var table [256]uint8
	for i := range table {
		table[i] = truncate8(math.Pow(float64(i)/255, invGamma) * 255)
	}
	return table
}

// quantize scales a [0, 1] sample to 8 bits, clamping first and truncating
// the fraction.
func quantize(v float64) uint8 {
	return truncate8(v * 255)
}

func truncate8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Min(math.Max(v, 0), 255))
}
