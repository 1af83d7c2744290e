package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/neighborfit/neighborfit/internal/activity"
	"github.com/neighborfit/neighborfit/internal/auth"
	"github.com/neighborfit/neighborfit/internal/geo"
	"github.com/neighborfit/neighborfit/internal/geolocate"
	"github.com/neighborfit/neighborfit/internal/mapsync"
	"github.com/neighborfit/neighborfit/internal/selection"
)

// SessionResponse represents the response for session creation.
type SessionResponse struct {
	ViewerID string `json:"viewer_id"`
	Token    string `json:"token"`
}

// SelectRequest represents the request body for selecting an activity.
type SelectRequest struct {
	ActivityID string `json:"activity_id"`
}

// SelectResponse represents the response for selection operations.
type SelectResponse struct {
	SelectedID string `json:"selected_id"`
	Changed    bool   `json:"changed"`
}

// LocateRequest represents the client's geolocation outcome. Either
// coordinates or a denial; a denied or empty request resolves to the
// configured fallback.
type LocateRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Denied bool     `json:"denied"`
}

// LocateResponse reports the position the session resolved to.
type LocateResponse struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Fallback bool    `json:"fallback"`
}

// SessionHandlers holds dependencies for session-scoped HTTP handlers:
// login, activity selection, and geolocation.
type SessionHandlers struct {
	store     *activity.Store
	selection *selection.Controller
	mapCtrl   *mapsync.Controller
	sessions  *auth.SessionService

	// The resolver pins the session position after the first locate
	// call; pending carries the request body into its locator.
	mu       sync.Mutex
	resolver *geolocate.Resolver
	pending  LocateRequest
}

// NewSessionHandlers creates a new SessionHandlers instance. fallback is
// the position used when the viewer denies geolocation.
func NewSessionHandlers(store *activity.Store, sel *selection.Controller, mapCtrl *mapsync.Controller, sessions *auth.SessionService, fallback geo.Point) *SessionHandlers {
	h := &SessionHandlers{
		store:     store,
		selection: sel,
		mapCtrl:   mapCtrl,
		sessions:  sessions,
	}
	h.resolver = geolocate.NewResolver(geolocate.LocatorFunc(h.locate), fallback)
	return h
}

// locate adapts the most recent locate request body to the Locator
// interface. The resolver only ever calls it once per session; callers
// must hold h.mu.
func (h *SessionHandlers) locate(_ context.Context) (geo.Point, error) {
	if h.pending.Denied || h.pending.Lat == nil || h.pending.Lng == nil {
		return geo.Point{}, geolocate.ErrDenied
	}
	return geo.Point{Lat: *h.pending.Lat, Lng: *h.pending.Lng}, nil
}

// Create handles POST /session - issues a session token for an
// anonymous viewer. There is no account system; the token just keeps a
// stable viewer id in the access logs.
func (h *SessionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	viewerID := uuid.New().String()
	token, err := h.sessions.GenerateToken(viewerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to generate session token", "error", err)
		WriteError(w, r.Context(), http.StatusInternalServerError, ErrCodeInternal, "Failed to create session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(SessionResponse{ViewerID: viewerID, Token: token}); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode session response", "error", err)
	}
}

// Select handles POST and DELETE /session/select.
//
// POST selects an activity: idempotent, and the camera flies to the
// marker even when the activity is already selected. The camera move is
// skipped when the map surface is degraded; selection itself always
// succeeds.
//
// DELETE clears the selection without any camera movement.
func (h *SessionHandlers) Select(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.selectActivity(w, r)
	case http.MethodDelete:
		h.clearSelection(w, r)
	default:
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
	}
}

func (h *SessionHandlers) selectActivity(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}
	if req.ActivityID == "" {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeValidation, "activity_id is required")
		return
	}

	a, err := h.store.Get(req.ActivityID)
	if err != nil {
		WriteError(w, r.Context(), http.StatusNotFound, ErrCodeNotFound, "Activity not found")
		return
	}

	changed := h.selection.Select(a.ID)

	// Re-selecting still re-centers: clicking the same card again flies
	// the camera back to its marker.
	if err := h.mapCtrl.Select(a); err != nil && !errors.Is(err, mapsync.ErrSurfaceFailed) {
		slog.WarnContext(r.Context(), "selection camera move failed", "error", err, "activity_id", a.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SelectResponse{SelectedID: a.ID, Changed: changed}); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode select response", "error", err)
	}
}

func (h *SessionHandlers) clearSelection(w http.ResponseWriter, _ *http.Request) {
	h.selection.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Locate handles POST /session/locate - records the client's
// geolocation outcome. The first call pins the session position: real
// coordinates on success, the launch city fallback on denial. Later
// calls return the pinned position unchanged, so distances never thrash
// between fallback and real values.
func (h *SessionHandlers) Locate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	var req LocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}

	h.mu.Lock()
	h.pending = req
	pos, fellBack := h.resolver.Resolve(r.Context())
	h.mu.Unlock()

	h.store.SetUserPosition(pos)
	h.mapCtrl.SetUserPosition(pos)
	if err := h.mapCtrl.FlyToUser(); err != nil && !errors.Is(err, mapsync.ErrSurfaceFailed) {
		slog.WarnContext(r.Context(), "fly-to-user failed", "error", err)
	}

	response := LocateResponse{
		Lat:      pos.Lat,
		Lng:      pos.Lng,
		Fallback: fellBack,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode locate response", "error", err)
	}
}
