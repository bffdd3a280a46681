package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubsolarPoint(t *testing.T) {
	lat, lng := subsolarPoint(time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC))
	assert.InDelta(t, 23.44, lat, 0.5)
	assert.InDelta(t, 0, lng, 1e-9)

	lat, lng = subsolarPoint(time.Date(2024, time.December, 21, 18, 0, 0, 0, time.UTC))
	assert.InDelta(t, -23.44, lat, 0.5)
	assert.InDelta(t, -90, lng, 1e-9)
}

func TestDayFraction(t *testing.T) {
	assert.Equal(t, 1.0, dayFraction(0, 0, 0, 0))
	assert.Equal(t, 0.0, dayFraction(0, 180, 0, 0))
	assert.InDelta(t, 0.5, dayFraction(0, 90, 0, 0), 1e-9)
	assert.Equal(t, 0.0, dayFraction(-80, 0, 23.44, 0))
}
