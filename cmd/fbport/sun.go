package main

import (
	"math"
	"time"
)

// subsolarPoint is the latitude (the solar declination) and longitude
// where the sun is at the zenith, in degrees. The equation of time is
// ignored.
func subsolarPoint(t time.Time) (lat, lng float64) {
	t = t.UTC()
	day := float64(t.YearDay())
	lat = -23.44 * math.Cos(2*math.Pi/365*(day+10))
	hours := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	lng = -15 * (hours - 12)
	return lat, lng
}

// twilight is the sine of the solar elevation over which night fades to day.
const twilight = 0.1

// dayFraction is 1 in daylight, 0 at night and in between through twilight.
func dayFraction(lat, lng, subLat, subLng float64) float64 {
	rad := math.Pi / 180
	sinElev := math.Sin(lat*rad)*math.Sin(subLat*rad) +
		math.Cos(lat*rad)*math.Cos(subLat*rad)*math.Cos((lng-subLng)*rad)
	return min(max((sinElev+twilight)/(2*twilight), 0), 1)
}
