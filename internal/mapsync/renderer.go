// Package mapsync keeps map markers, the camera, and the user position
// consistent with the filtered activity list. The rendering surface is an
// injected Renderer so the reconciliation logic is testable without a map.
package mapsync

import (
	"strings"
	"time"

	"github.com/neighborfit/neighborfit/internal/activity"
	"github.com/neighborfit/neighborfit/internal/geo"
)

// Marker is the visual state of one activity on the map, keyed by the
// activity id.
type Marker struct {
	ID       string    `json:"id"`
	Position geo.Point `json:"position"`

	// Color is the difficulty encoding, a three-way categorical hex color.
	Color string `json:"color"`
	// Glyph is the activity-type emoji shown inside the marker.
	Glyph string `json:"glyph"`

	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Time         string   `json:"time"`
	Participants int      `json:"participants"`
	Capacity     int      `json:"capacity"`
	Price        int64    `json:"price"`
	Geohash      string   `json:"geohash"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

// CameraMove is a fly-to request: an animated pan/zoom to a point with a
// bounded, finite duration.
type CameraMove struct {
	Center   geo.Point     `json:"center"`
	Zoom     float64       `json:"zoom"`
	Duration time.Duration `json:"duration"`
}

// FitBounds is a fit-to-bounds request: animate the camera to the
// smallest region covering the bounds, with padding in pixels.
type FitBounds struct {
	Bounds   geo.Bounds    `json:"bounds"`
	Padding  int           `json:"padding"`
	Duration time.Duration `json:"duration"`
}

// Renderer is the rendering surface the controller drives. Markers are
// keyed by activity id: removing a key removes exactly one marker. The
// user marker is distinguished from activity markers and must pulse.
type Renderer interface {
	AddMarker(m Marker) error
	UpdateMarker(m Marker) error
	RemoveMarker(id string) error
	SetUserMarker(p geo.Point) error
	FlyTo(move CameraMove) error
	FitToBounds(fit FitBounds) error
}

// Difficulty marker colors, matching the list-view difficulty badges.
const (
	colorBeginner     = "#10b981"
	colorIntermediate = "#f59e0b"
	colorAdvanced     = "#ef4444"
	colorDefault      = "#6b7280"
)

// DifficultyColor returns the marker color for a difficulty level.
func DifficultyColor(d activity.Difficulty) string {
	switch d {
	case activity.DifficultyBeginner:
		return colorBeginner
	case activity.DifficultyIntermediate:
		return colorIntermediate
	case activity.DifficultyAdvanced:
		return colorAdvanced
	default:
		return colorDefault
	}
}

// TypeGlyph returns the emoji glyph for an activity type. Unknown types
// fall back to the runner.
func TypeGlyph(activityType string) string {
	switch strings.ToLower(activityType) {
	case "yoga":
		return "🧘"
	case "hiit":
		return "💪"
	case "cycling":
		return "🚴"
	case "swimming":
		return "🏊"
	case "running":
		return "🏃"
	case "dance":
		return "💃"
	case "martial arts":
		return "🥋"
	case "rock climbing":
		return "🧗"
	default:
		return "🏃"
	}
}

// MarkerFor builds the marker spec for an activity.
func MarkerFor(a *activity.Activity) Marker {
	m := Marker{
		ID:           a.ID,
		Position:     a.Coordinates,
		Color:        DifficultyColor(a.Difficulty),
		Glyph:        TypeGlyph(a.Type),
		Title:        a.Title,
		Location:     a.Location,
		Time:         a.Time,
		Participants: a.Participants,
		Capacity:     a.Capacity,
		Price:        a.Price,
		Geohash:      geo.Geohash(a.Coordinates, geo.DefaultGeohashPrecision),
	}
	if a.DistanceKm != nil {
		d := *a.DistanceKm
		m.DistanceKm = &d
	}
	return m
}

// markerEqual reports whether two marker specs render identically, so the
// controller can skip no-op updates.
func markerEqual(a, b Marker) bool {
	if a.DistanceKm == nil != (b.DistanceKm == nil) {
		return false
	}
	if a.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm {
		return false
	}
	da, db := a.DistanceKm, b.DistanceKm
	a.DistanceKm, b.DistanceKm = nil, nil
	equal := a == b
	a.DistanceKm, b.DistanceKm = da, db
	return equal
}
