package labelnoise

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws from a normal distribution.
type Sampler interface {
	SampleNormal(mean, stddev float64) float64
}

// NormalSampler draws from a seeded PCG stream. It is not safe for
// concurrent use; give each goroutine its own.
type NormalSampler struct {
	src rand.Source
}

func NewNormalSampler(seed uint64) *NormalSampler {
	return &NormalSampler{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

func (s *NormalSampler) SampleNormal(mean, stddev float64) float64 {
	dist := distuv.Normal{Mu: mean, Sigma: stddev, Src: s.src}
	return dist.Rand()
}
