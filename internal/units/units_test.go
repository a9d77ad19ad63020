package units

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAllPairs(t *testing.T) {
	samples := []float64{0.001, 1, 42.5, 998.2, 101325}

	for f := Pressure; f <= Dimensionless; f++ {
		us := Units(f)
		for _, a := range us {
			for _, b := range us {
				for _, x := range samples {
					mid, err := Convert(x, a, b, f)
					require.NoError(t, err, "%s: %s -> %s", f, a, b)
					back, err := Convert(mid, b, a, f)
					require.NoError(t, err, "%s: %s -> %s", f, b, a)

					tol := 1e-9 * math.Max(math.Abs(x), 1)
					if math.Abs(back-x) > tol {
						t.Errorf("%s round trip %s->%s->%s: got %v want %v",
							f, a, b, a, back, x)
					}
				}
			}
		}
	}
}

func TestGaugePressureOffset(t *testing.T) {
	// Gauge to absolute adds one atmosphere.
	abs, err := Convert(0, KPaG, KPa, Pressure)
	require.NoError(t, err)
	assert.InDelta(t, 101.325, abs, 1e-9)

	// Absolute to gauge subtracts it.
	g, err := Convert(101325, Pa, PsiG, Pressure)
	require.NoError(t, err)
	assert.InDelta(t, 0, g, 1e-9)

	// Gauge to gauge never touches the offset.
	gg, err := Convert(100, KPaG, BarG, Pressure)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, gg, 1e-9)
}

func TestTemperatureScaleAndOffset(t *testing.T) {
	tests := []struct {
		val      float64
		from, to Unit
		want     float64
	}{
		{0, Celsius, Kelvin, 273.15},
		{100, Celsius, Fahrenheit, 212},
		{32, Fahrenheit, Celsius, 0},
		{0, Kelvin, Rankine, 0},
		{491.67, Rankine, Celsius, 0},
	}
	for _, tc := range tests {
		got, err := Convert(tc.val, tc.from, tc.to, Temperature)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "%v %s -> %s", tc.val, tc.from, tc.to)
	}
}

func TestUnsupportedUnit(t *testing.T) {
	_, err := Convert(1, "furlong", Meter, Length)
	require.Error(t, err)

	var ue *UnsupportedUnitError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, Unit("furlong"), ue.Unit)

	// Unit registered for a different family is still unsupported.
	_, err = Convert(1, KPa, Meter, Length)
	require.Error(t, err)
}

func TestConvertScalarTolerant(t *testing.T) {
	v, ok := ConvertScalar(50, Millimeter, Meter, Length)
	require.True(t, ok)
	assert.InDelta(t, 0.05, v, 1e-12)

	_, ok = ConvertScalar(1, "bogus", Meter, Length)
	assert.False(t, ok)
}

func TestQuantityBase(t *testing.T) {
	q := Q(1000, KgH, MassFlow)
	v, err := q.Base()
	require.NoError(t, err)
	assert.InDelta(t, 1000.0/3600.0, v, 1e-12)

	v, err = Q(1, CP, Viscosity).Base()
	require.NoError(t, err)
	assert.InDelta(t, 1e-3, v, 1e-15)
}

func TestFamilyByName(t *testing.T) {
	f, ok := FamilyByName("pressure")
	require.True(t, ok)
	assert.Equal(t, Pressure, f)

	_, ok = FamilyByName("voltage")
	assert.False(t, ok)
}
