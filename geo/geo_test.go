package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	berlin = Point{Latitude: 52.5200, Longitude: 13.4050}
	paris  = Point{Latitude: 48.8566, Longitude: 2.3522}
)

func TestDistanceBerlinParis(t *testing.T) {
	meters := Distance(berlin, paris)
	assert.InDelta(t, 878000, meters, 5000)
}

func TestDistanceSymmetric(t *testing.T) {
	assert.Equal(t, Distance(berlin, paris), Distance(paris, berlin))
}

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(berlin, berlin))
}

func TestDistanceWholeMeters(t *testing.T) {
	meters := Distance(berlin, Point{Latitude: 52.5201, Longitude: 13.4051})
	assert.Equal(t, meters, float64(int64(meters)))
}

func TestFromLonLat(t *testing.T) {
	p, ok := FromLonLat([]float64{13.4050, 52.5200})
	assert.True(t, ok)
	assert.Equal(t, berlin, p)

	_, ok = FromLonLat([]float64{13.4050})
	assert.False(t, ok)

	_, ok = FromLonLat(nil)
	assert.False(t, ok)
}
