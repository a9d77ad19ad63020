package hydro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/hydronet/internal/network"
)

func TestReynolds(t *testing.T) {
	// ṁ = 1000 kg/h of water in a DN50 line, μ = 1 cP.
	re := Reynolds(1000.0/3600, 0.05, 1e-3)
	assert.InDelta(t, 7074, re, 10)

	assert.Zero(t, Reynolds(1, 0, 1e-3))
	assert.Zero(t, Reynolds(1, 0.05, 0))
}

func TestFrictionFactorLaminar(t *testing.T) {
	f, regime := FrictionFactor(1000, 0.001)
	assert.InDelta(t, 0.064, f, 1e-12)
	assert.Equal(t, network.RegimeLaminar, regime)

	// Roughness is irrelevant in the laminar regime.
	fr, _ := FrictionFactor(1000, 0.01)
	assert.Equal(t, f, fr)
}

func TestFrictionFactorContinuity(t *testing.T) {
	const eps = 1e-6
	for _, rr := range []float64{0, 1e-5, 9e-4, 0.01} {
		below, _ := FrictionFactor(reLaminarLimit-eps, rr)
		above, regime := FrictionFactor(reLaminarLimit+eps, rr)
		assert.InDelta(t, below, above, 1e-6, "laminar boundary, rr=%g", rr)
		assert.Equal(t, network.RegimeTransitional, regime)

		below, _ = FrictionFactor(reTurbulentLimit-eps, rr)
		above, regime = FrictionFactor(reTurbulentLimit+eps, rr)
		assert.InDelta(t, below, above, 1e-6, "turbulent boundary, rr=%g", rr)
		assert.Equal(t, network.RegimeTurbulent, regime)
	}
}

func TestFrictionFactorTurbulent(t *testing.T) {
	f, regime := FrictionFactor(7074, 9e-4)
	assert.Equal(t, network.RegimeTurbulent, regime)
	assert.InDelta(t, 0.0356, f, 0.0005)

	// Rougher pipe, higher friction.
	rough, _ := FrictionFactor(7074, 0.01)
	assert.Greater(t, rough, f)

	// Sanity against the smooth-pipe asymptote.
	smooth, _ := FrictionFactor(1e5, 0)
	assert.True(t, smooth > 0.015 && smooth < 0.02, "got %g", smooth)
	assert.False(t, math.IsNaN(smooth))
}

func TestErosionalVelocity(t *testing.T) {
	assert.InDelta(t, 100/math.Sqrt(998), ErosionalVelocity(998, 100), 1e-12)
	assert.Zero(t, ErosionalVelocity(0, 100))
}
