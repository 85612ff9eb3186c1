package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/rm-hull/label-noise/internal/labelnoise"
	"github.com/rm-hull/label-noise/internal/png"
	"github.com/rm-hull/label-noise/internal/raster"
)

// Preview writes an animated PNG cycling through the original label followed
// by frames-1 independently perturbed copies of it.
func Preview(input, output string, frames int, frameDelay float64, seed uint64, params labelnoise.Params) error {
	if frames < 1 {
		return errors.New("frames must be at least 1")
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}

	img, err := png.Decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to decode PNG from %s: %w", input, err)
	}

	err = f.Close()
	if err != nil {
		return err
	}

	sampler := labelnoise.NewNormalSampler(seed)
	variants := make([]*raster.Image, frames)
	variants[0] = img
	for i := 1; i < frames; i++ {
		stages := labelnoise.Plan(params, sampler)
		log.Printf("Frame %d: %v", i, stages)
		if variants[i], err = labelnoise.Apply(img, stages); err != nil {
			return fmt.Errorf("failed to perturb frame %d: %w", i, err)
		}
	}

	apngBytes, err := png.Animate(variants, frameDelay)
	if err != nil {
		return fmt.Errorf("failed to encode animation: %w", err)
	}

	return os.WriteFile(output, apngBytes, 0644)
}
