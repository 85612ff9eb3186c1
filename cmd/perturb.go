package cmd

import (
	"fmt"
	"image"

	"github.com/rm-hull/label-noise/internal"
	"github.com/rm-hull/label-noise/internal/labelnoise"
	"github.com/rm-hull/label-noise/internal/raster"
	"github.com/rm-hull/label-noise/internal/raster/stage"
)

type PerturbOptions struct {
	InDir   string
	OutDir  string
	Workers int
	Seed    uint64
	Params  labelnoise.Params
	Grey    bool
	Verbose bool

	// Deterministic adjustments applied ahead of the noise; zero disables each.
	Gamma     float64
	Power     float64
	CLAHEClip float64
	CLAHETile int
}

// PrepareStages builds the fixed adjustments that run before the sampled
// noise, in the order greyscale, LUT gamma, power brightness, CLAHE.
func PrepareStages(opts PerturbOptions) []raster.Stage {
	var prepare []raster.Stage
	if opts.Grey {
		prepare = append(prepare, &stage.GreyscaleStage{})
	}
	if opts.Gamma > 0 {
		prepare = append(prepare, &stage.GammaStage{Gamma: opts.Gamma})
	}
	if opts.Power > 0 {
		prepare = append(prepare, &stage.NonlinearBrightnessStage{Gamma: opts.Power})
	}
	if opts.CLAHEClip > 0 {
		prepare = append(prepare, &stage.CLAHEStage{
			ClipLimit: opts.CLAHEClip,
			TileGrid:  image.Point{X: opts.CLAHETile, Y: opts.CLAHETile},
		})
	}
	return prepare
}

func Perturb(opts PerturbOptions) error {
	internal.ShowVersion()
	internal.EnvironmentVars()

	processor, err := internal.NewProcessor(opts.InDir, opts.OutDir, internal.ProcessorOptions{
		PoolSize: opts.Workers,
		Seed:     opts.Seed,
		Params:   opts.Params,
		Prepare:  PrepareStages(opts),
		Verbose:  opts.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create processor: %w", err)
	}

	processor.StartWorkers()
	processor.DispatchJobs()
	if errs := processor.Wait(); len(errs) > 0 {
		return fmt.Errorf("%d of the labels failed, first error: %w", len(errs), errs[0])
	}
	return nil
}
