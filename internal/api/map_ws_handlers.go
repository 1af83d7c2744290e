package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/neighborfit/neighborfit/internal/activity"
	"github.com/neighborfit/neighborfit/internal/mapsync"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: Implement proper CORS checking based on configuration
		// For now, allow all origins (should be restricted in production)
		return true
	},
}

// MapWSHandlers streams map operations (markers, camera moves) to
// browser map surfaces over WebSocket.
type MapWSHandlers struct {
	broadcaster *mapsync.Broadcaster
	mapCtrl     *mapsync.Controller
	store       *activity.Store
}

// NewMapWSHandlers creates a new MapWSHandlers instance.
func NewMapWSHandlers(broadcaster *mapsync.Broadcaster, mapCtrl *mapsync.Controller, store *activity.Store) *MapWSHandlers {
	return &MapWSHandlers{
		broadcaster: broadcaster,
		mapCtrl:     mapCtrl,
		store:       store,
	}
}

// ServeWS handles GET /map/ws - upgrades to WebSocket, replays the
// current marker set so a late-joining surface catches up, and then
// receives live operations until the client disconnects.
func (h *MapWSHandlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	ctx := r.Context()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade websocket connection", "error", err)
		return
	}

	// Replay current state before subscribing so the surface never
	// misses markers rendered before it connected.
	if err := h.broadcaster.ReplayTo(conn, h.mapCtrl.RenderedMarkers(), h.store.UserPosition()); err != nil {
		slog.WarnContext(ctx, "failed to replay map state", "error", err)
		_ = conn.Close()
		return
	}

	h.broadcaster.Subscribe(conn)
	slog.InfoContext(ctx, "map surface connected", "subscribers", h.broadcaster.SubscriberCount())

	defer func() {
		h.broadcaster.Unsubscribe(conn)
		_ = conn.Close()
		slog.InfoContext(ctx, "map surface disconnected", "subscribers", h.broadcaster.SubscriberCount())
	}()

	// Keep connection alive - read messages to detect disconnection.
	// Clients don't send messages; we read only to notice when they go.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "websocket connection closed unexpectedly", "error", err)
			}
			return
		}
	}
}
