package geo

import (
	"strings"
	"testing"
)

func TestGeohash_PrefixStability(t *testing.T) {
	// Increasing precision only appends characters; a coarser hash is
	// always a prefix of a finer one for the same point.
	points := []Point{
		{Lat: 28.6139, Lng: 77.2090},
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 0, Lng: 0},
	}

	for _, p := range points {
		prev := ""
		for precision := 1; precision <= 9; precision++ {
			got := Geohash(p, precision)
			if len(got) != precision {
				t.Fatalf("Geohash(%v, %d) length = %d, want %d", p, precision, len(got), precision)
			}
			if !strings.HasPrefix(got, prev) {
				t.Fatalf("Geohash(%v, %d) = %q does not extend %q", p, precision, got, prev)
			}
			prev = got
		}
	}
}

func TestGeohash_Alphabet(t *testing.T) {
	// The output alphabet excludes a, i, l, and o.
	points := []Point{
		{Lat: 28.6139, Lng: 77.2090},
		{Lat: 47.6062, Lng: -122.3321},
		{Lat: -89.9, Lng: 179.9},
	}

	for _, p := range points {
		hash := Geohash(p, 12)
		for _, c := range hash {
			if !strings.ContainsRune(geohashBase32, c) {
				t.Errorf("Geohash(%v) = %q contains invalid character %q", p, hash, c)
			}
		}
	}
}

func TestGeohash_NearbyPointsShareGrouping(t *testing.T) {
	// Venues a few hundred meters apart land in the same 5-character
	// cell; a different city never does.
	indiaGate := Point{Lat: 28.6129, Lng: 77.2295}
	nearby := Point{Lat: 28.6135, Lng: 77.2300}
	mumbai := Point{Lat: 19.0760, Lng: 72.8777}

	if Geohash(indiaGate, 5) != Geohash(nearby, 5) {
		t.Errorf("nearby points should share a coarse cell: %q vs %q",
			Geohash(indiaGate, 5), Geohash(nearby, 5))
	}
	if Geohash(indiaGate, 5) == Geohash(mumbai, 5) {
		t.Error("distant points should not share a coarse cell")
	}
}

func TestGeohash_Deterministic(t *testing.T) {
	p := Point{Lat: 28.6139, Lng: 77.2090}
	first := Geohash(p, DefaultGeohashPrecision)
	for i := 0; i < 100; i++ {
		if got := Geohash(p, DefaultGeohashPrecision); got != first {
			t.Fatalf("Geohash inconsistent: first=%q, iteration %d=%q", first, i, got)
		}
	}
}

func TestDefaultGeohashPrecision(t *testing.T) {
	if DefaultGeohashPrecision != 6 {
		t.Errorf("DefaultGeohashPrecision = %d, want 6", DefaultGeohashPrecision)
	}
}
