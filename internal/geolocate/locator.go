// Package geolocate resolves the viewer's position once per session, with
// a fixed fallback when geolocation is denied or unavailable.
package geolocate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/neighborfit/neighborfit/internal/geo"
)

// ErrDenied is returned by a Locator when the viewer refused to share
// their position.
var ErrDenied = errors.New("geolocation denied")

// Locator supplies the viewer's position. Implementations report either
// success with coordinates or failure with a reason; the fallback policy
// belongs to the Resolver, not the locator.
type Locator interface {
	Position(ctx context.Context) (geo.Point, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (geo.Point, error)

// Position calls f.
func (f LocatorFunc) Position(ctx context.Context) (geo.Point, error) {
	return f(ctx)
}

// Resolver resolves the session position exactly once. On locator failure
// it falls back to the configured default (the launch city center) so
// distance enrichment never thrashes between fallback and real values.
type Resolver struct {
	locator  Locator
	fallback geo.Point

	once     sync.Once
	pos      geo.Point
	fellBack bool
}

// NewResolver creates a resolver around the given locator and fallback
// coordinate.
func NewResolver(locator Locator, fallback geo.Point) *Resolver {
	return &Resolver{locator: locator, fallback: fallback}
}

// Resolve returns the session position and whether the fallback was
// applied. The first call consults the locator; every later call returns
// the same result. The locator is never retried: it resolves once,
// success or failure. The fallback flag comes from the resolution path,
// not a coordinate comparison, so a viewer who really stands at the
// fallback point is not reported as falling back.
func (r *Resolver) Resolve(ctx context.Context) (geo.Point, bool) {
	r.once.Do(func() {
		pos, err := r.locator.Position(ctx)
		if err != nil {
			slog.InfoContext(ctx, "geolocation unavailable, using fallback",
				"reason", err,
				"fallback_lat", r.fallback.Lat,
				"fallback_lng", r.fallback.Lng,
			)
			r.pos = r.fallback
			r.fellBack = true
			return
		}
		r.pos = pos
	})
	return r.pos, r.fellBack
}
