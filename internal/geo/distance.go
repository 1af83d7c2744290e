// Package geo provides geospatial primitives for activity discovery:
// great-circle distance, bounding boxes, and coarse geohash keys.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// Point represents a geographic coordinate with latitude and longitude
// in decimal degrees (WGS84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm computes the great-circle distance between two points using
// the Haversine formula. Returns kilometers.
//
// The result is symmetric and zero when both points are equal. Inputs are
// assumed to be valid degree ranges (lat in [-90,90], lng in [-180,180]);
// out-of-range input is a caller contract violation.
func DistanceKm(a, b Point) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	deltaLat := degreesToRadians(b.Lat - a.Lat)
	deltaLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// degreesToRadians converts degrees to radians.
func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Bounds is a geographic bounding box accumulated from a set of points.
// The zero value is empty; Extend points into it and check Valid before use.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`

	valid bool
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p Point) {
	if !b.valid {
		b.MinLat, b.MaxLat = p.Lat, p.Lat
		b.MinLng, b.MaxLng = p.Lng, p.Lng
		b.valid = true
		return
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	if p.Lng < b.MinLng {
		b.MinLng = p.Lng
	}
	if p.Lng > b.MaxLng {
		b.MaxLng = p.Lng
	}
}

// Valid reports whether the bounds contain at least one point.
func (b *Bounds) Valid() bool {
	return b.valid
}

// Center returns the midpoint of the bounds. Only meaningful when Valid.
func (b *Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}
