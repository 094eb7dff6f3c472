package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	d := Haversine(17.3616, 78.4747, 17.3616, 78.4747)
	assert.Equal(t, 0.0, d)
}

func TestHaversineHyderabadWarangal(t *testing.T) {
	// Charminar to Warangal, about 137 km great-circle.
	d := Haversine(17.3616, 78.4747, 17.9689, 79.6029)
	assert.InDelta(t, 137.3, d, 2)
}

func TestHaversineSymmetric(t *testing.T) {
	a := Haversine(17.3616, 78.4747, 18.0, 79.5)
	b := Haversine(18.0, 79.5, 17.3616, 78.4747)
	assert.InDelta(t, a, b, 1e-9)
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.0, RoundRating(12.0/3.0))
	assert.Equal(t, 4.3, RoundRating(13.0/3.0))
	assert.Equal(t, 3.7, RoundRating(11.0/3.0))
	assert.Equal(t, 0.0, RoundRating(0))
}
