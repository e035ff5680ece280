package render

import "math/rand/v2"

// Sampler yields sub-pixel jitter offsets in [0,1).
// *rand.Rand satisfies it.
type Sampler interface {
	Float64() float64
}

// SamplerSource hands out the sampler used for one image row. Giving every
// row its own stream keeps seeded renders identical no matter how rows are
// spread over workers.
type SamplerSource func(row int) Sampler

// SeededSource returns a source of PCG streams derived from seed.
func SeededSource(seed uint64) SamplerSource {
	return func(row int) Sampler {
		return rand.New(rand.NewPCG(seed, uint64(row)))
	}
}

// FixedSource returns a source whose samplers always yield offset.
// FixedSource(0.5) samples pixel centers only.
func FixedSource(offset float64) SamplerSource {
	s := fixedSampler(offset)
	return func(int) Sampler {
		return s
	}
}

type fixedSampler float64

func (f fixedSampler) Float64() float64 {
	return float64(f)
}
