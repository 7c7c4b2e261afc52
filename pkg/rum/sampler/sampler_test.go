package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicSampler_StableAcrossCalls(t *testing.T) {
	s := NewDeterministicSampler(0xDEADBEEF, 30)
	first := s.Sample()
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, s.Sample())
	}

	rebuilt := NewDeterministicSampler(0xDEADBEEF, 30)
	assert.Equal(t, first, rebuilt.Sample())
}

func TestDeterministicSampler_MonotonicInRate(t *testing.T) {
	// any identifier sampled at a lower rate must stay sampled when the
	// rate is raised
	for baseID := uint64(1); baseID < 2000; baseID++ {
		sampled := false
		for _, rate := range []float64{1, 5, 25, 50, 75, 99, 100} {
			decision := NewDeterministicSampler(baseID*0x9E3779B97F4A7C15, rate).Sample()
			if sampled {
				assert.True(t, decision,
					"raising the rate flipped a sampled id to dropped, baseID=%d rate=%f", baseID, rate)
			}
			sampled = sampled || decision
		}
	}
}

func TestDeterministicSampler_EdgeRates(t *testing.T) {
	t.Run("Rate 0 drops everything", func(t *testing.T) {
		assert.False(t, NewDeterministicSampler(42, 0).Sample())
	})
	t.Run("Rate 100 keeps everything", func(t *testing.T) {
		assert.True(t, NewDeterministicSampler(42, 100).Sample())
	})
	t.Run("Rates are clamped to the valid range", func(t *testing.T) {
		assert.True(t, NewDeterministicSampler(42, 250).Sample())
		assert.False(t, NewDeterministicSampler(42, -10).Sample())
	})
}

func TestDeterministicSampler_RoughlyUniform(t *testing.T) {
	const n = 100000
	kept := 0
	for baseID := uint64(1); baseID <= n; baseID++ {
		if NewDeterministicSampler(baseID*0x9E3779B97F4A7C15, 30).Sample() {
			kept++
		}
	}
	fraction := float64(kept) / n
	assert.InDelta(t, 0.30, fraction, 0.02)
}

func TestProbabilisticSampler_FractionWithinTolerance(t *testing.T) {
	const n = 100000
	s := NewProbabilisticSampler(30, 1)
	kept := 0
	for i := 0; i < n; i++ {
		if s.Sample() {
			kept++
		}
	}
	fraction := float64(kept) / n
	assert.InDelta(t, 0.30, fraction, 0.02)
}

func TestProbabilisticSampler_EdgeRates(t *testing.T) {
	t.Run("Rate 0 drops everything", func(t *testing.T) {
		s := NewProbabilisticSampler(0, 1)
		for i := 0; i < 1000; i++ {
			assert.False(t, s.Sample())
		}
	})
	t.Run("Rate 100 keeps everything", func(t *testing.T) {
		s := NewProbabilisticSampler(100, 1)
		for i := 0; i < 1000; i++ {
			assert.True(t, s.Sample())
		}
	})
}
