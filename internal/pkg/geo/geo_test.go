package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, DistanceMeters(40.0, -75.0, 40.0, -75.0))
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	t.Parallel()

	d1 := DistanceMeters(40.0, -75.0, 40.01, -75.02)
	d2 := DistanceMeters(40.01, -75.02, 40.0, -75.0)
	assert.Equal(t, d1, d2)
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	t.Parallel()

	// One degree of latitude is roughly 111.2 km.
	d := DistanceMeters(40.0, -75.0, 41.0, -75.0)
	assert.InDelta(t, 111195, d, 200)
}

func TestDistanceFeet_KnownDistance(t *testing.T) {
	t.Parallel()

	// 0.01 degrees of latitude is roughly 3646 ft.
	d := DistanceFeet(40.0, -75.0, 40.01, -75.0)
	assert.InDelta(t, 3646, d, 20)
}

func TestDistanceFeet_Symmetric(t *testing.T) {
	t.Parallel()

	d1 := DistanceFeet(40.0, -75.0, 39.99, -74.98)
	d2 := DistanceFeet(39.99, -74.98, 40.0, -75.0)
	assert.Equal(t, d1, d2)
}
