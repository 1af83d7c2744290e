package mapsync

import "github.com/prometheus/client_golang/prometheus"

// Metric names as constants for consistency.
const (
	MetricReconciles      = "mapsync_reconciles_total"
	MetricMarkersAdded    = "mapsync_markers_added_total"
	MetricMarkersRemoved  = "mapsync_markers_removed_total"
	MetricMarkersUpdated  = "mapsync_markers_updated_total"
	MetricRenderedMarkers = "mapsync_rendered_markers"
	MetricCameraMoves     = "mapsync_camera_moves_total"
	MetricSurfaceFailures = "mapsync_surface_failures_total"
)

// Metrics contains Prometheus metrics for marker reconciliation.
// All operations are thread-safe.
type Metrics struct {
	reconciles      prometheus.Counter
	markersAdded    prometheus.Counter
	markersRemoved  prometheus.Counter
	markersUpdated  prometheus.Counter
	renderedMarkers prometheus.Gauge
	cameraMoves     prometheus.Counter
	surfaceFailures prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to register
// them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		reconciles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricReconciles,
			Help: "Total number of marker reconciliation runs",
		}),
		markersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMarkersAdded,
			Help: "Total number of markers added to the map",
		}),
		markersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMarkersRemoved,
			Help: "Total number of markers removed from the map",
		}),
		markersUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMarkersUpdated,
			Help: "Total number of in-place marker updates",
		}),
		renderedMarkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricRenderedMarkers,
			Help: "Number of activity markers currently rendered",
		}),
		cameraMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricCameraMoves,
			Help: "Total number of fly-to and fit-to-bounds camera transitions",
		}),
		surfaceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSurfaceFailures,
			Help: "Total number of map surface initialization or render failures",
		}),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.reconciles,
		m.markersAdded,
		m.markersRemoved,
		m.markersUpdated,
		m.renderedMarkers,
		m.cameraMoves,
		m.surfaceFailures,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncReconciles increments the reconciliation run counter.
func (m *Metrics) IncReconciles() { m.reconciles.Inc() }

// IncMarkersAdded increments the markers-added counter.
func (m *Metrics) IncMarkersAdded() { m.markersAdded.Inc() }

// IncMarkersRemoved increments the markers-removed counter.
func (m *Metrics) IncMarkersRemoved() { m.markersRemoved.Inc() }

// IncMarkersUpdated increments the markers-updated counter.
func (m *Metrics) IncMarkersUpdated() { m.markersUpdated.Inc() }

// SetRenderedMarkers records the current rendered marker count.
func (m *Metrics) SetRenderedMarkers(n int) { m.renderedMarkers.Set(float64(n)) }

// IncCameraMoves increments the camera transition counter.
func (m *Metrics) IncCameraMoves() { m.cameraMoves.Inc() }

// IncSurfaceFailures increments the surface failure counter.
func (m *Metrics) IncSurfaceFailures() { m.surfaceFailures.Inc() }
