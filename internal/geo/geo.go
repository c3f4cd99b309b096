// Package geo computes distances between geographic coordinates.
//
// Every proximity rule in this application (the 4 ft dig radius, the
// 30 ft search radius, the bury collision check) reduces to a single
// question: how many feet apart are two (latitude, longitude) pairs?
// This package answers it with the haversine great-circle formula,
// which is accurate to well under an inch at the walking-scale
// distances involved here.
package geo

import "math"

// earthRadiusFeet is the mean Earth radius (6371 km) expressed in feet.
const earthRadiusFeet = 20902231.0

// DistanceFeet returns the great-circle distance in feet between two
// coordinate pairs.
//
// Properties callers rely on:
//   - symmetric: DistanceFeet(a, b) == DistanceFeet(b, a)
//   - zero exactly when both pairs are identical
func DistanceFeet(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	// Haversine formula. All trigonometry is in radians.
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusFeet * c
}

// BoundingBox returns a latitude/longitude rectangle guaranteed to
// contain every point within radiusFeet of (lat, lon). The store uses
// it as a cheap WHERE-clause prefilter so the exact (and costlier)
// haversine check only runs on nearby rows.
//
// The box is deliberately generous: one degree of latitude is taken as
// 362,000 ft, slightly under its true value everywhere on Earth, so the
// computed degree spans err on the large side. The longitude span is
// widened by the secant of the latitude; close enough to a pole the
// circle covers every longitude and the span becomes the full 360
// degrees.
//
// The longitude bounds are intentionally NOT normalized to [-180, 180]:
// a box near the antimeridian extends past the seam (e.g. minLon of
// -180.0001), and callers that filter by longitude must split the range
// there. See the sqlite store for the canonical handling.
func BoundingBox(lat, lon, radiusFeet float64) (minLat, maxLat, minLon, maxLon float64) {
	const feetPerDegreeLat = 362000.0

	dLat := radiusFeet / feetPerDegreeLat

	// Longitude degrees shrink with the cosine of the latitude. When
	// the exact span reaches a hemisphere (or the cosine hits zero at
	// the pole itself), every longitude is within reach.
	dLon := 180.0
	cosLat := math.Cos(radians(lat))
	if cosLat > 0 && radiusFeet/(feetPerDegreeLat*cosLat) < 180 {
		dLon = radiusFeet / (feetPerDegreeLat * cosLat)
	}

	return lat - dLat, lat + dLat, lon - dLon, lon + dLon
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
