package mapsync

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/neighborfit/neighborfit/internal/geo"
)

// Map operation types pushed to browser renderers.
const (
	OpAddMarker     = "add_marker"
	OpUpdateMarker  = "update_marker"
	OpRemoveMarker  = "remove_marker"
	OpSetUserMarker = "set_user_marker"
	OpFlyTo         = "fly_to"
	OpFitBounds     = "fit_bounds"
)

// MapOp is one rendering instruction on the wire. Exactly one payload
// field is set, matching Op. Durations are milliseconds.
type MapOp struct {
	Op string `json:"op"`

	Marker   *Marker    `json:"marker,omitempty"`
	MarkerID string     `json:"marker_id,omitempty"`
	Position *geo.Point `json:"position,omitempty"`

	Center     *geo.Point  `json:"center,omitempty"`
	Zoom       float64     `json:"zoom,omitempty"`
	Bounds     *geo.Bounds `json:"bounds,omitempty"`
	Padding    int         `json:"padding,omitempty"`
	DurationMS int64       `json:"duration_ms,omitempty"`
}

// Broadcaster fans map operations out to every connected browser
// renderer and implements Renderer, so the controller can drive remote
// map surfaces directly.
//
// Late subscribers receive a replay of the current marker state from the
// controller via ReplayTo.
type Broadcaster struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]bool
}

// NewBroadcaster creates a broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{conns: make(map[*websocket.Conn]bool)}
}

// Subscribe registers a WebSocket connection for map operations.
func (b *Broadcaster) Subscribe(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conns[conn] = true
}

// Unsubscribe removes a WebSocket connection.
func (b *Broadcaster) Unsubscribe(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conns, conn)
}

// SubscriberCount returns the number of connected renderers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.conns)
}

// ReplayTo sends the given marker set and user position to a single
// connection, bringing a late subscriber up to the current state.
func (b *Broadcaster) ReplayTo(conn *websocket.Conn, markers map[string]Marker, userPos *geo.Point) error {
	for _, m := range markers {
		marker := m
		if err := writeOp(conn, MapOp{Op: OpAddMarker, Marker: &marker}); err != nil {
			return err
		}
	}
	if userPos != nil {
		p := *userPos
		if err := writeOp(conn, MapOp{Op: OpSetUserMarker, Position: &p}); err != nil {
			return err
		}
	}
	return nil
}

// AddMarker broadcasts an add-marker op.
func (b *Broadcaster) AddMarker(m Marker) error {
	return b.broadcast(MapOp{Op: OpAddMarker, Marker: &m})
}

// UpdateMarker broadcasts an update-marker op.
func (b *Broadcaster) UpdateMarker(m Marker) error {
	return b.broadcast(MapOp{Op: OpUpdateMarker, Marker: &m})
}

// RemoveMarker broadcasts a remove-marker op. Removing a key removes
// exactly one marker on each renderer.
func (b *Broadcaster) RemoveMarker(id string) error {
	return b.broadcast(MapOp{Op: OpRemoveMarker, MarkerID: id})
}

// SetUserMarker broadcasts the pulsing user marker position.
func (b *Broadcaster) SetUserMarker(p geo.Point) error {
	return b.broadcast(MapOp{Op: OpSetUserMarker, Position: &p})
}

// FlyTo broadcasts an animated camera transition.
func (b *Broadcaster) FlyTo(move CameraMove) error {
	center := move.Center
	return b.broadcast(MapOp{
		Op:         OpFlyTo,
		Center:     &center,
		Zoom:       move.Zoom,
		DurationMS: move.Duration.Milliseconds(),
	})
}

// FitToBounds broadcasts a fit-to-bounds camera transition.
func (b *Broadcaster) FitToBounds(fit FitBounds) error {
	bounds := fit.Bounds
	return b.broadcast(MapOp{
		Op:         OpFitBounds,
		Bounds:     &bounds,
		Padding:    fit.Padding,
		DurationMS: fit.Duration.Milliseconds(),
	})
}

// broadcast serializes the op once and writes it to every subscriber. A
// failed write is logged and skipped; the connection is cleaned up when
// the client disconnects.
func (b *Broadcaster) broadcast(op MapOp) error {
	data, err := json.Marshal(op)
	if err != nil {
		slog.Error("failed to marshal map op", "op", op.Op, "error", err)
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for conn := range b.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("failed to send map op to websocket client",
				"op", op.Op,
				"error", err,
			)
		}
	}
	return nil
}

func writeOp(conn *websocket.Conn, op MapOp) error {
	data, err := json.Marshal(op)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
