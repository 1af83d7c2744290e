package geo

import "strings"

// DefaultGeohashPrecision is the geohash length used for coarse display
// keys on activity markers. Six characters is roughly ±0.61 km, enough to
// group nearby venues without pinpointing an exact address.
const DefaultGeohashPrecision = 6

// geohashBase32 is the geohash base32 alphabet (excludes 'a', 'i', 'l', 'o').
const geohashBase32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// Geohash encodes a point into a geohash string of the given precision
// using the standard interleaved bisection algorithm. A precision below 1
// falls back to DefaultGeohashPrecision.
func Geohash(p Point, precision int) string {
	if precision < 1 {
		precision = DefaultGeohashPrecision
	}

	latRange := [2]float64{-90.0, 90.0}
	lngRange := [2]float64{-180.0, 180.0}

	var out strings.Builder
	out.Grow(precision)

	bits := 0
	var ch uint

	even := true
	for out.Len() < precision {
		if even {
			mid := (lngRange[0] + lngRange[1]) / 2
			if p.Lng > mid {
				ch |= 1 << (4 - bits)
				lngRange[0] = mid
			} else {
				lngRange[1] = mid
			}
		} else {
			mid := (latRange[0] + latRange[1]) / 2
			if p.Lat > mid {
				ch |= 1 << (4 - bits)
				latRange[0] = mid
			} else {
				latRange[1] = mid
			}
		}

		even = !even
		bits++

		if bits == 5 {
			out.WriteByte(geohashBase32[ch])
			bits = 0
			ch = 0
		}
	}

	return out.String()
}
