package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rm-hull/label-noise/internal/labelnoise"
	"github.com/rm-hull/label-noise/internal/png"
	"github.com/rm-hull/label-noise/internal/raster/rastertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareStages(t *testing.T) {
	tests := []struct {
		name string
		opts PerturbOptions
		want []string
	}{
		{"none", PerturbOptions{}, []string{}},
		{"grey", PerturbOptions{Grey: true}, []string{"greyscale"}},
		{
			"all in order",
			PerturbOptions{Grey: true, Gamma: 2.2, Power: 0.8, CLAHEClip: 2, CLAHETile: 4},
			[]string{"greyscale", "gamma(gamma=2.2000)", "brightness-nonlinear(gamma=0.8000)", "clahe(clip=2.00, tiles=4x4)"},
		},
		{"clahe default tiles", PerturbOptions{CLAHEClip: 1}, []string{"clahe(clip=1.00, tiles=8x8)"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := []string{}
			for _, s := range PrepareStages(tc.opts) {
				got = append(got, fmt.Sprint(s))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPerturb(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	f, err := os.Create(filepath.Join(inDir, "label.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, rastertest.Filled(6, 6, 3, 0.25)))
	require.NoError(t, f.Close())

	err = Perturb(PerturbOptions{
		InDir:   inDir,
		OutDir:  outDir,
		Workers: 1,
		Params:  labelnoise.NoOp(),
		Grey:    true,
		Power:   0.5,
	})
	require.NoError(t, err)

	out, err := os.Open(filepath.Join(outDir, "label.png"))
	require.NoError(t, err)
	defer out.Close()
	img, err := png.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 1, img.Channels)
	assert.InDelta(t, 0.5, img.Pix[0], 1.0/255)
}
