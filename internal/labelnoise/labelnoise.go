// Package labelnoise perturbs label images with randomly sampled photometric
// transforms, so that a model trained against them learns to tolerate
// colour temperature, exposure and contrast differences on the label side.
package labelnoise

import (
	"github.com/rm-hull/label-noise/internal/raster"
	"github.com/rm-hull/label-noise/internal/raster/stage"
)

// Params holds the mean and spread of each sampled factor. The *Var fields
// are used as the standard deviation of the normal distribution.
type Params struct {
	TemMean      float64
	TemVar       float64
	BrightMean   float64
	BrightVar    float64
	ContrastMean float64
	ContrastVar  float64
}

func DefaultParams() Params {
	return Params{
		TemMean:      1,
		TemVar:       0.03,
		BrightMean:   1.15,
		BrightVar:    0.15,
		ContrastMean: 1.15,
		ContrastVar:  0.15,
	}
}

// NoOp returns parameters under which AddLabelNoise leaves images untouched.
func NoOp() Params {
	return Params{TemMean: 1, BrightMean: 1, ContrastMean: 1}
}

func enabled(mean, stddev float64) bool {
	return mean != 1 || stddev != 0
}

// Plan samples a factor for every enabled adjustment and returns the stages
// in the order they must run: temperature, brightness, contrast. Reordering
// them changes the output distribution.
func Plan(p Params, sampler Sampler) []raster.Stage {
	stages := make([]raster.Stage, 0, 3)
	if enabled(p.TemMean, p.TemVar) {
		stages = append(stages, &stage.ColorTemperatureStage{Factor: sampler.SampleNormal(p.TemMean, p.TemVar)})
	}
	if enabled(p.BrightMean, p.BrightVar) {
		stages = append(stages, &stage.BrightnessStage{Factor: sampler.SampleNormal(p.BrightMean, p.BrightVar)})
	}
	if enabled(p.ContrastMean, p.ContrastVar) {
		stages = append(stages, &stage.ContrastStage{Factor: sampler.SampleNormal(p.ContrastMean, p.ContrastVar)})
	}
	return stages
}

// AddLabelNoise returns a perturbed copy of img. Sampled factors are not
// bounded; every stage clips its output so extreme draws saturate rather
// than fail.
func AddLabelNoise(img *raster.Image, p Params, sampler Sampler) *raster.Image {
	out := img.Clone()
	// Plan only yields temperature, brightness and contrast stages, none of
	// which can fail.
	_ = out.Pipeline(Plan(p, sampler)...)
	return out
}

// Apply runs stages against a copy of img, leaving img untouched when a
// stage fails.
func Apply(img *raster.Image, stages []raster.Stage) (*raster.Image, error) {
	out := img.Clone()
	if err := out.Pipeline(stages...); err != nil {
		return nil, err
	}
	return out, nil
}
