// Package api provides HTTP handlers for the NeighborFit API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/neighborfit/neighborfit/internal/activity"
	"github.com/neighborfit/neighborfit/internal/mapsync"
	"github.com/neighborfit/neighborfit/internal/payment"
)

// ActivityListResponse represents the response for the activity list.
// EmptyState is set when no activities match; an empty result is a
// defined UI state, never an error.
type ActivityListResponse struct {
	Activities []*activity.Activity `json:"activities"`
	EmptyState activity.EmptyState  `json:"empty_state,omitempty"`
	Counts     activity.TabCounts   `json:"counts"`
}

// JoinResponse represents the response for a participation toggle.
type JoinResponse struct {
	Activity *activity.Activity `json:"activity"`
	Joined   bool               `json:"joined"`

	// PaymentSessionID is set when joining a paid activity; the client
	// completes checkout out-of-band and the join stays optimistic until
	// the provider reports a result.
	PaymentSessionID string `json:"payment_session_id,omitempty"`
	PaymentRecordID  string `json:"payment_record_id,omitempty"`
}

// ActivityHandlers holds dependencies for activity HTTP handlers.
type ActivityHandlers struct {
	store    *activity.Store
	mapCtrl  *mapsync.Controller
	payments *payment.Service
}

// NewActivityHandlers creates a new ActivityHandlers instance.
func NewActivityHandlers(store *activity.Store, mapCtrl *mapsync.Controller, payments *payment.Service) *ActivityHandlers {
	return &ActivityHandlers{
		store:    store,
		mapCtrl:  mapCtrl,
		payments: payments,
	}
}

// List handles GET /activities - the filtered, distance-enriched list.
//
// Query parameters:
//   - q: free-text search over title, type, location, and organizer name
//   - facets: comma-separated filter chips, OR-combined
//   - tab: all | joined | hosting
//   - sort: "distance" orders by proximity to the viewer
//
// The map marker set is reconciled to exactly the visible activities.
func (h *ActivityHandlers) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	q := r.URL.Query()
	fs := activity.FilterState{
		Query:  strings.TrimSpace(q.Get("q")),
		Facets: parseFacets(q.Get("facets")),
		Tab:    activity.ParseTab(q.Get("tab")),
	}

	records := h.store.Activities()
	if q.Get("sort") == "distance" {
		activity.SortByDistance(records)
	}

	visible := activity.Visible(records, fs)

	// Markers mirror the visible set, filtered tabs included.
	h.mapCtrl.Reconcile(visible)

	response := ActivityListResponse{
		Activities: visible,
		EmptyState: activity.EmptyStateFor(visible, fs.Tab),
		Counts:     h.store.TabCounts(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode activity list", "error", err)
	}
}

// Get handles GET /activities/{id} - the activity detail view. Opening
// the detail also flies the map camera in tight on the activity; the
// camera move is skipped when the map surface is degraded, the detail
// data still renders.
func (h *ActivityHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/activities/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Activity ID is required")
		return
	}

	a, err := h.store.Get(id)
	if err != nil {
		WriteError(w, r.Context(), http.StatusNotFound, ErrCodeNotFound, "Activity not found")
		return
	}

	if err := h.mapCtrl.ViewDetail(a); err != nil && !errors.Is(err, mapsync.ErrSurfaceFailed) {
		slog.WarnContext(r.Context(), "detail camera move failed", "error", err, "activity_id", id)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(a); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode activity", "error", err)
	}
}

// Join handles POST /activities/{id}/join - toggles the viewer's
// participation. Joining a paid activity is optimistic: the join is
// applied locally first, then a checkout session is requested. If the
// checkout cannot even be created the join is rolled back immediately.
func (h *ActivityHandlers) Join(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	pathParts := strings.Split(strings.TrimPrefix(r.URL.Path, "/activities/"), "/")
	if len(pathParts) < 2 || pathParts[0] == "" || pathParts[1] != "join" {
		WriteError(w, r.Context(), http.StatusBadRequest, ErrCodeBadRequest, "Activity ID is required")
		return
	}
	id := pathParts[0]

	a, joined, err := h.store.ToggleParticipation(id)
	if err != nil {
		switch {
		case errors.Is(err, activity.ErrNotFound):
			WriteError(w, r.Context(), http.StatusNotFound, ErrCodeNotFound, "Activity not found")
		case errors.Is(err, activity.ErrHostedActivity):
			WriteError(w, r.Context(), http.StatusForbidden, ErrCodeHostedActivity, "You host this activity and are already counted")
		case errors.Is(err, activity.ErrActivityFull):
			WriteError(w, r.Context(), http.StatusConflict, ErrCodeActivityFull, "Activity is at capacity")
		default:
			slog.ErrorContext(r.Context(), "failed to toggle participation", "error", err, "activity_id", id)
			WriteError(w, r.Context(), http.StatusInternalServerError, ErrCodeInternal, "Failed to update participation")
		}
		return
	}

	response := JoinResponse{Activity: a, Joined: joined}

	if joined && a.Paid() {
		record, payErr := h.payments.RequestJoinPayment(a)
		if payErr != nil {
			// Checkout never started; undo the optimistic join.
			if undoErr := h.store.LeaveIfJoined(id); undoErr != nil {
				slog.ErrorContext(r.Context(), "failed to roll back join", "error", undoErr, "activity_id", id)
			}
			slog.WarnContext(r.Context(), "checkout session failed", "error", payErr, "activity_id", id)
			WriteError(w, r.Context(), http.StatusPaymentRequired, ErrCodePaymentFailed, "Payment could not be started")
			return
		}
		response.PaymentSessionID = record.SessionID
		response.PaymentRecordID = record.ID
		response.Activity, _ = h.store.Get(id)
	}

	slog.InfoContext(r.Context(), "participation toggled",
		"activity_id", id,
		"joined", joined,
		"participants", response.Activity.Participants,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode join response", "error", err)
	}
}

// parseFacets splits the comma-separated facets parameter, dropping
// empty entries.
func parseFacets(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	facets := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			facets = append(facets, f)
		}
	}
	return facets
}
