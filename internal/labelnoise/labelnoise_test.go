package labelnoise

import (
	"errors"
	"testing"

	"github.com/rm-hull/label-noise/internal/raster"
	"github.com/rm-hull/label-noise/internal/raster/rastertest"
	"github.com/rm-hull/label-noise/internal/raster/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSampler hands out values in order and records what it was asked for.
type fixedSampler struct {
	values []float64
	calls  [][2]float64
}

func (s *fixedSampler) SampleNormal(mean, stddev float64) float64 {
	s.calls = append(s.calls, [2]float64{mean, stddev})
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func noisyImage() *raster.Image {
	img := raster.New(6, 5, 3)
	for i := range img.Pix {
		img.Pix[i] = float64(i%17) / 16
	}
	return img
}

func TestAddLabelNoise_NoOp(t *testing.T) {
	img := noisyImage()
	sampler := &fixedSampler{}

	out := AddLabelNoise(img, NoOp(), sampler)

	assert.Equal(t, img.Pix, out.Pix)
	assert.Empty(t, sampler.calls)
}

func TestAddLabelNoise_BrightnessOnly(t *testing.T) {
	img := rastertest.Filled(4, 4, 3, 0.5)
	sampler := &fixedSampler{values: []float64{1.2}}
	params := Params{TemMean: 1, BrightMean: 1, BrightVar: 0.2, ContrastMean: 1}

	out := AddLabelNoise(img, params, sampler)

	require.Len(t, sampler.calls, 1)
	assert.Equal(t, [2]float64{1, 0.2}, sampler.calls[0])
	for _, v := range out.Pix {
		assert.InDelta(t, 0.6, v, 1e-12)
	}
	// input untouched
	assert.Equal(t, 0.5, img.Pix[0])
}

func TestAddLabelNoise_FixedOrder(t *testing.T) {
	img := rastertest.Filled(2, 2, 3, 0.5)
	sampler := &fixedSampler{values: []float64{1.25, 1.2, 2}}

	out := AddLabelNoise(img, DefaultParams(), sampler)

	require.Equal(t, [][2]float64{{1, 0.03}, {1.15, 0.15}, {1.15, 0.15}}, sampler.calls)

	// temperature: 0.625, 0.5, 0.4; brightness x1.2: 0.75, 0.6, 0.48;
	// contrast x2 about 0.5: 1.0, 0.7, 0.46
	assert.InDelta(t, 1.0, out.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 0.7, out.At(0, 0, 1), 1e-12)
	assert.InDelta(t, 0.46, out.At(0, 0, 2), 1e-12)
}

func TestAddLabelNoise_StageSkipping(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{"defaults", DefaultParams(), []string{"temperature", "brightness", "contrast"}},
		{"temperature mean only", Params{TemMean: 1.1, BrightMean: 1, ContrastMean: 1}, []string{"temperature"}},
		{"contrast variance only", Params{TemMean: 1, BrightMean: 1, ContrastMean: 1, ContrastVar: 0.1}, []string{"contrast"}},
		{"zero means are not no-ops", Params{}, []string{"temperature", "brightness", "contrast"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stages := Plan(tc.params, &fixedSampler{values: []float64{1, 1, 1}})
			kinds := make([]string, 0, len(stages))
			for _, s := range stages {
				switch s.(type) {
				case *stage.ColorTemperatureStage:
					kinds = append(kinds, "temperature")
				case *stage.BrightnessStage:
					kinds = append(kinds, "brightness")
				case *stage.ContrastStage:
					kinds = append(kinds, "contrast")
				default:
					t.Fatalf("unexpected stage %T", s)
				}
			}
			assert.Equal(t, tc.want, kinds)
		})
	}
}

func TestAddLabelNoise_ExtremeDrawsAreClipped(t *testing.T) {
	img := noisyImage()
	sampler := &fixedSampler{values: []float64{-3, 40, -7}}

	out := AddLabelNoise(img, DefaultParams(), sampler)

	for _, v := range out.Pix {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestAddLabelNoise_SeededSamplerIsReproducible(t *testing.T) {
	img := noisyImage()

	a := AddLabelNoise(img, DefaultParams(), NewNormalSampler(42))
	b := AddLabelNoise(img, DefaultParams(), NewNormalSampler(42))
	c := AddLabelNoise(img, DefaultParams(), NewNormalSampler(43))

	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestNormalSampler(t *testing.T) {
	s := NewNormalSampler(7)

	assert.Equal(t, 3.5, s.SampleNormal(3.5, 0))

	const n = 20000
	sum, sumSq := 0.0, 0.0
	for range n {
		v := s.SampleNormal(1.15, 0.15)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	assert.InDelta(t, 1.15, mean, 0.01)
	assert.InDelta(t, 0.15*0.15, variance, 0.002)
}

type failingStage struct{ err error }

func (s *failingStage) Process(img *raster.Image) error {
	img.Pix[0] = 0.99
	return s.err
}

func TestApply(t *testing.T) {
	t.Run("runs stages on a copy", func(t *testing.T) {
		img := rastertest.Filled(2, 2, 1, 0.5)
		out, err := Apply(img, []raster.Stage{&stage.BrightnessStage{Factor: 1.2}})
		require.NoError(t, err)
		assert.InDelta(t, 0.6, out.Pix[0], 1e-12)
		assert.Equal(t, 0.5, img.Pix[0])
	})

	t.Run("propagates stage errors", func(t *testing.T) {
		boom := errors.New("boom")
		img := rastertest.Filled(2, 2, 1, 0.5)
		out, err := Apply(img, []raster.Stage{&failingStage{err: boom}, &stage.BrightnessStage{Factor: 2}})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, out)
		assert.Equal(t, 0.5, img.Pix[0])
	})
}
