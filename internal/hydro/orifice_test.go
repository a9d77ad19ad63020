package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hydronet/internal/fluid"
	"github.com/talgya/hydronet/internal/network"
	"github.com/talgya/hydronet/internal/units"
)

func orificeContext() *Context {
	return &Context{
		Phase:     fluid.Liquid,
		MassFlow:  2,
		Diameter:  0.05,
		Density:   998,
		Viscosity: 1e-3,
	}
}

func TestDischargeCoefficient(t *testing.T) {
	assert.InDelta(t, 0.6025, DischargeCoefficient(0.5), 0.0005)

	// Cd stays in the plausible flange-tap range across the bracket.
	for beta := 0.1; beta <= 0.9; beta += 0.1 {
		cd := DischargeCoefficient(beta)
		assert.True(t, cd > 0.55 && cd < 0.65, "beta %.1f: cd %.4f", beta, cd)
	}
}

func TestOrificeDropMonotonicInBeta(t *testing.T) {
	ctx := orificeContext()
	small := OrificeDrop(ctx, 0.4)
	large := OrificeDrop(ctx, 0.7)
	assert.Greater(t, small, large, "smaller bore takes more drop")

	assert.Zero(t, OrificeDrop(ctx, 0))
	assert.Zero(t, OrificeDrop(ctx, 1))
}

func TestOrificeBetaRoundTrip(t *testing.T) {
	ctx := orificeContext()
	for _, beta := range []float64{0.3, 0.5, 0.6, 0.8} {
		drop := OrificeDrop(ctx, beta)
		require.Greater(t, drop, 0.0)
		back := OrificeBeta(ctx, drop)
		assert.InDelta(t, beta, back, 1e-6, "beta %v", beta)
	}
}

func TestOrificeSectionThroughEngine(t *testing.T) {
	eng := New(DefaultOptions())

	// Beta given → drop computed.
	o := network.Orifice{}
	o.SetBeta(0.6)
	p := waterPipe()
	p.Section = network.WithOrifice(o)

	results, _, err := eng.RecalculateSegment(p, liquidBoundary())
	require.NoError(t, err)
	assert.Greater(t, results.SectionDrop, 0.0)
	assert.Equal(t, 0.6, results.BetaRatio)

	// Drop given → beta back-solved to the same ratio.
	o2 := network.Orifice{}
	o2.SetDrop(units.Q(results.SectionDrop, units.Pa, units.Pressure))
	p2 := waterPipe()
	p2.Section = network.WithOrifice(o2)

	results2, _, err := eng.RecalculateSegment(p2, liquidBoundary())
	require.NoError(t, err)
	assert.InDelta(t, 0.6, results2.BetaRatio, 1e-6)
}
