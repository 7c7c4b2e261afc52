package sampler

import (
	"math"
	"math/rand"
)

// Sampler decides whether one logical unit (typically a session) is kept.
type Sampler interface {
	Sample() bool
}

// samplingHashFactor is a large odd multiplier; multiplying by it mod 2^64
// spreads sequential base identifiers across the whole 64-bit range.
const samplingHashFactor = uint64(1111111111111111111)

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// ProbabilisticSampler keeps each call independently with probability
// rate/100, rate clamped to [0, 100].
type ProbabilisticSampler struct {
	rate float64
	rng  *rand.Rand
}

func NewProbabilisticSampler(rate float64, seed int64) *ProbabilisticSampler {
	return &ProbabilisticSampler{
		rate: clampRate(rate),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (s *ProbabilisticSampler) Sample() bool {
	return s.rng.Float64()*100 < s.rate
}

// DeterministicSampler makes the same decision for the same (baseID, rate)
// pair across calls and across process restarts. The threshold is monotonic
// in rate, so any identifier sampled at a lower rate stays sampled when the
// rate is raised.
type DeterministicSampler struct {
	baseID    uint64
	rate      float64
	threshold uint64
}

func NewDeterministicSampler(baseID uint64, rate float64) *DeterministicSampler {
	rate = clampRate(rate)
	var threshold uint64
	if rate > 0 && rate < 100 {
		threshold = uint64((rate / 100) * math.MaxUint64)
	}
	return &DeterministicSampler{
		baseID:    baseID,
		rate:      rate,
		threshold: threshold,
	}
}

func (s *DeterministicSampler) Sample() bool {
	if s.rate >= 100 {
		return true
	}
	if s.rate <= 0 {
		return false
	}
	return s.baseID*samplingHashFactor < s.threshold
}
