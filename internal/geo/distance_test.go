package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	points := [][2]float64{{0, 0}, {40, -74}, {-33.86, 151.2}, {90, 0}, {-90, 180}}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(40.0, -74.0, 51.5, -0.12)
	d2 := Distance(51.5, -0.12, 40.0, -74.0)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_OneDegreeLatitudeIndependentOfLongitude(t *testing.T) {
	expected := EarthRadiusKm * math.Pi / 180 // ≈111.19 км
	for _, lng := range []float64{-179, -74, 0, 37.6, 179} {
		assert.InDelta(t, expected, Distance(10, lng, 11, lng), 1e-6)
	}
	assert.InDelta(t, 111.19, expected, 0.01)
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(0, 0, 0, 180)
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
}

func TestDistance_KnownPair(t *testing.T) {
	// 0.05° по обеим осям около Нью-Йорка
	assert.InDelta(t, 7.0026, Distance(40.0, -74.0, 40.05, -74.05), 1e-3)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(90, 180))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.False(t, ValidCoordinates(90.01, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 6.96, Round2(6.9583))
	assert.Equal(t, 0.0, Round2(0.004))
}
