package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/rm-hull/label-noise/cmd"
	"github.com/rm-hull/label-noise/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	var perturb cmd.PerturbOptions
	var input, output string
	var frames int
	var frameDelay float64

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := internal.LoadNoiseConfig()
	if err != nil {
		log.Fatal(err)
	}

	rootCmd := &cobra.Command{
		Use:  "label-noise",
		Long: `Photometric label noise for training data preparation`,
	}

	perturbCmd := &cobra.Command{
		Use:   "perturb --in <dir> --out <dir> [--workers <n>] [--seed <n>] [--grey] [--gamma <g>] [--power <p>] [--clahe <clip>] [--verbose]",
		Short: "Perturb every PNG label in a directory",
		Run: func(_ *cobra.Command, _ []string) {
			perturb.Params = cfg.Params
			perturb.Seed = cfg.Seed
			if err := cmd.Perturb(perturb); err != nil {
				log.Fatal(err)
			}
		},
	}

	perturbCmd.Flags().StringVar(&perturb.InDir, "in", "./data/labels", "Directory of PNG labels")
	perturbCmd.Flags().StringVar(&perturb.OutDir, "out", "./data/noisy", "Directory to write perturbed labels to")
	perturbCmd.Flags().IntVar(&perturb.Workers, "workers", 4, "Number of labels processed concurrently")
	perturbCmd.Flags().BoolVar(&perturb.Grey, "grey", false, "Convert colour labels to a single luma channel first")
	perturbCmd.Flags().BoolVar(&perturb.Verbose, "verbose", false, "Log the sampled factors for every label")
	perturbCmd.Flags().Float64Var(&perturb.Gamma, "gamma", 0, "Apply 8-bit lookup table gamma correction first (0 disables)")
	perturbCmd.Flags().Float64Var(&perturb.Power, "power", 0, "Raise samples to this power first (0 disables)")
	perturbCmd.Flags().Float64Var(&perturb.CLAHEClip, "clahe", 0, "Apply CLAHE with this clip limit first (0 disables)")
	perturbCmd.Flags().IntVar(&perturb.CLAHETile, "clahe-tiles", 8, "CLAHE tiles along each axis")
	noiseFlags(perturbCmd.Flags(), cfg)

	previewCmd := &cobra.Command{
		Use:   "preview --in <file> --out <file> [--frames <n>] [--delay <seconds>]",
		Short: "Render an animated PNG of noisy variants of one label",
		Run: func(_ *cobra.Command, _ []string) {
			if err := cmd.Preview(input, output, frames, frameDelay, cfg.Seed, cfg.Params); err != nil {
				log.Fatal(err)
			}
		},
	}

	previewCmd.Flags().StringVar(&input, "in", "label.png", "PNG label to perturb")
	previewCmd.Flags().StringVar(&output, "out", "preview.png", "Animated PNG to write")
	previewCmd.Flags().IntVar(&frames, "frames", 8, "Number of frames, the first being the original")
	previewCmd.Flags().Float64Var(&frameDelay, "delay", 0.5, "Seconds per frame")
	noiseFlags(previewCmd.Flags(), cfg)

	rootCmd.AddCommand(perturbCmd, previewCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// noiseFlags binds the sampling parameters, defaulting to whatever the
// environment configured.
func noiseFlags(flags *pflag.FlagSet, cfg *internal.NoiseConfig) {
	p := &cfg.Params
	flags.Float64Var(&p.TemMean, "tem-mean", p.TemMean, "Mean colour temperature factor")
	flags.Float64Var(&p.TemVar, "tem-var", p.TemVar, "Standard deviation of the colour temperature factor")
	flags.Float64Var(&p.BrightMean, "bright-mean", p.BrightMean, "Mean brightness factor")
	flags.Float64Var(&p.BrightVar, "bright-var", p.BrightVar, "Standard deviation of the brightness factor")
	flags.Float64Var(&p.ContrastMean, "contrast-mean", p.ContrastMean, "Mean contrast factor")
	flags.Float64Var(&p.ContrastVar, "contrast-var", p.ContrastVar, "Standard deviation of the contrast factor")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
}
