package mapsync

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/neighborfit/neighborfit/internal/activity"
	"github.com/neighborfit/neighborfit/internal/geo"
)

// SurfaceState is the lifecycle of the rendering surface. Degraded states
// never block list-based discovery; the map is an enhancement.
type SurfaceState string

// Surface states.
const (
	SurfaceLoading SurfaceState = "loading"
	SurfaceReady   SurfaceState = "ready"
	SurfaceFailed  SurfaceState = "failed"
)

// ErrSurfaceFailed is returned by camera operations when the rendering
// surface failed to initialize.
var ErrSurfaceFailed = errors.New("map surface failed to initialize")

// CameraConfig tunes the controller's camera transitions. All durations
// are finite; zero values are replaced by DefaultCameraConfig values.
type CameraConfig struct {
	OverviewZoom   float64
	SelectZoom     float64
	DetailZoom     float64
	UserZoom       float64
	FlyToDuration  time.Duration
	DetailDuration time.Duration
	FitPadding     int
	FitDuration    time.Duration
}

// DefaultCameraConfig returns the camera tuning used by the demo map.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		OverviewZoom:   11,
		SelectZoom:     15,
		DetailZoom:     16,
		UserZoom:       14,
		FlyToDuration:  1000 * time.Millisecond,
		DetailDuration: 1500 * time.Millisecond,
		FitPadding:     50,
		FitDuration:    1000 * time.Millisecond,
	}
}

// Controller owns the relationship between the filtered activity list,
// the map camera, and the rendered marker set. It reconciles markers by
// diffing against the current rendered set: unchanged markers are left
// untouched so filter keystrokes never flicker the map.
type Controller struct {
	mu sync.Mutex

	renderer Renderer
	camera   CameraConfig
	metrics  *Metrics

	state      SurfaceState
	surfaceErr error

	rendered map[string]Marker
	userPos  *geo.Point

	// pending holds the latest desired marker set while the surface is
	// still loading; it is flushed on Ready. Last write wins.
	pending []Marker
}

// NewController creates a controller in the loading state. Call Ready or
// Fail once the rendering surface reports its initialization outcome.
func NewController(renderer Renderer, camera CameraConfig, metrics *Metrics) *Controller {
	if camera == (CameraConfig{}) {
		camera = DefaultCameraConfig()
	}
	return &Controller{
		renderer: renderer,
		camera:   camera,
		metrics:  metrics,
		state:    SurfaceLoading,
		rendered: make(map[string]Marker),
	}
}

// State returns the rendering surface state.
func (c *Controller) State() SurfaceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SurfaceErr returns the initialization error, if the surface failed.
func (c *Controller) SurfaceErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surfaceErr
}

// Ready marks the surface initialized and flushes the latest pending
// marker set and user marker.
func (c *Controller) Ready() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == SurfaceReady {
		return
	}
	c.state = SurfaceReady
	c.surfaceErr = nil

	if c.userPos != nil {
		if err := c.renderer.SetUserMarker(*c.userPos); err != nil {
			c.failLocked(err)
			return
		}
	}
	if c.pending != nil {
		desired := c.pending
		c.pending = nil
		c.reconcileLocked(desired)
	}
}

// Fail marks the surface as failed. Discovery continues list-only; the
// map pane shows the degraded state instead of "no activities".
func (c *Controller) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = SurfaceFailed
	c.surfaceErr = err
	if c.metrics != nil {
		c.metrics.IncSurfaceFailures()
	}
}

// Reconcile drives the rendered marker set to match the visible
// activities. Markers for ids no longer visible are removed, new ids are
// added, changed markers are updated in place, and unchanged markers are
// not touched. Calling it twice with the same input is a no-op the second
// time; rapid successive calls converge on the latest input.
func (c *Controller) Reconcile(visible []*activity.Activity) {
	desired := make([]Marker, 0, len(visible))
	for _, a := range visible {
		desired = append(desired, MarkerFor(a))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case SurfaceReady:
		c.reconcileLocked(desired)
	case SurfaceLoading:
		c.pending = desired
	case SurfaceFailed:
		// Markers have nowhere to render; keep the desired set in case
		// the surface is retried via Ready.
		c.pending = desired
	}
}

// reconcileLocked applies the minimal add/update/remove delta. Caller
// holds c.mu and the surface is ready.
func (c *Controller) reconcileLocked(desired []Marker) {
	if c.metrics != nil {
		c.metrics.IncReconciles()
	}

	want := make(map[string]Marker, len(desired))
	for _, m := range desired {
		want[m.ID] = m
	}

	for id := range c.rendered {
		if _, ok := want[id]; !ok {
			if err := c.renderer.RemoveMarker(id); err != nil {
				c.failLocked(err)
				return
			}
			delete(c.rendered, id)
			if c.metrics != nil {
				c.metrics.IncMarkersRemoved()
			}
		}
	}

	for _, m := range desired {
		current, exists := c.rendered[m.ID]
		switch {
		case !exists:
			if err := c.renderer.AddMarker(m); err != nil {
				c.failLocked(err)
				return
			}
			c.rendered[m.ID] = m
			if c.metrics != nil {
				c.metrics.IncMarkersAdded()
			}
		case !markerEqual(current, m):
			if err := c.renderer.UpdateMarker(m); err != nil {
				c.failLocked(err)
				return
			}
			c.rendered[m.ID] = m
			if c.metrics != nil {
				c.metrics.IncMarkersUpdated()
			}
		}
	}

	if c.metrics != nil {
		c.metrics.SetRenderedMarkers(len(c.rendered))
	}
}

func (c *Controller) failLocked(err error) {
	c.state = SurfaceFailed
	c.surfaceErr = fmt.Errorf("renderer error: %w", err)
	if c.metrics != nil {
		c.metrics.IncSurfaceFailures()
	}
}

// SetUserPosition places or moves the pulsing user marker. The marker
// exists only while a position is known.
func (c *Controller) SetUserPosition(pos geo.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := pos
	c.userPos = &p
	if c.state != SurfaceReady {
		return
	}
	if err := c.renderer.SetUserMarker(p); err != nil {
		c.failLocked(err)
	}
}

// Select flies the camera to the activity at the selection zoom. List
// clicks and marker clicks both land here: two views, one camera effect.
func (c *Controller) Select(a *activity.Activity) error {
	return c.flyTo(a.Coordinates, c.camera.SelectZoom, c.camera.FlyToDuration)
}

// ViewDetail flies tighter than Select, for the detail panel's
// view-details affordance.
func (c *Controller) ViewDetail(a *activity.Activity) error {
	return c.flyTo(a.Coordinates, c.camera.DetailZoom, c.camera.DetailDuration)
}

// FlyToUser centers the camera on the user marker. No-op without a
// known position.
func (c *Controller) FlyToUser() error {
	c.mu.Lock()
	pos := c.userPos
	c.mu.Unlock()

	if pos == nil {
		return nil
	}
	return c.flyTo(*pos, c.camera.UserZoom, c.camera.FlyToDuration)
}

func (c *Controller) flyTo(center geo.Point, zoom float64, duration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != SurfaceReady {
		return ErrSurfaceFailed
	}
	if err := c.renderer.FlyTo(CameraMove{Center: center, Zoom: zoom, Duration: duration}); err != nil {
		c.failLocked(err)
		return err
	}
	if c.metrics != nil {
		c.metrics.IncCameraMoves()
	}
	return nil
}

// FitAll animates the camera to the smallest region covering every
// rendered marker plus the user position. A no-op when nothing is
// rendered: there is no defined region to fit.
func (c *Controller) FitAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != SurfaceReady {
		return ErrSurfaceFailed
	}

	var bounds geo.Bounds
	for _, m := range c.rendered {
		bounds.Extend(m.Position)
	}
	if !bounds.Valid() {
		return nil
	}
	if c.userPos != nil {
		bounds.Extend(*c.userPos)
	}

	if err := c.renderer.FitToBounds(FitBounds{
		Bounds:   bounds,
		Padding:  c.camera.FitPadding,
		Duration: c.camera.FitDuration,
	}); err != nil {
		c.failLocked(err)
		return err
	}
	if c.metrics != nil {
		c.metrics.IncCameraMoves()
	}
	return nil
}

// RenderedMarkers returns a snapshot of the rendered marker set, keyed by
// activity id.
func (c *Controller) RenderedMarkers() map[string]Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Marker, len(c.rendered))
	for id, m := range c.rendered {
		out[id] = m
	}
	return out
}
