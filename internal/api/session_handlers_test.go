package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neighborfit/neighborfit/internal/mapsync"
)

func TestSession_Create(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	w := httptest.NewRecorder()
	env.sessions.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode session response: %v", err)
	}
	if resp.ViewerID == "" || resp.Token == "" {
		t.Errorf("expected viewer id and token, got %+v", resp)
	}
}

func TestSelect_FliesToMarker(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session/select", jsonBody(`{"activity_id":"3"}`))
	w := httptest.NewRecorder()
	env.sessions.Select(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp SelectResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode select response: %v", err)
	}
	if resp.SelectedID != "3" || !resp.Changed {
		t.Errorf("select response = %+v, want selected 3 changed", resp)
	}

	if len(env.renderer.flyTos) != 1 {
		t.Fatalf("fly-to count = %d, want 1", len(env.renderer.flyTos))
	}
	move := env.renderer.flyTos[0]
	if move.Zoom != mapsync.DefaultCameraConfig().SelectZoom {
		t.Errorf("zoom = %f, want select zoom", move.Zoom)
	}
	if move.Center.Lat != 28.6315 || move.Center.Lng != 77.2167 {
		t.Errorf("camera centered at %+v, want activity 3 coordinates", move.Center)
	}
}

func TestSelect_ReselectStillFlies(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/session/select", jsonBody(`{"activity_id":"3"}`))
		w := httptest.NewRecorder()
		env.sessions.Select(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}

		var resp SelectResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		wantChanged := i == 0
		if resp.Changed != wantChanged {
			t.Errorf("attempt %d: changed = %v, want %v", i, resp.Changed, wantChanged)
		}
	}

	// Both selects fly, even the idempotent second one.
	if len(env.renderer.flyTos) != 2 {
		t.Errorf("fly-to count = %d, want 2", len(env.renderer.flyTos))
	}
}

func TestSelect_UnknownActivity(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session/select", jsonBody(`{"activity_id":"999"}`))
	w := httptest.NewRecorder()
	env.sessions.Select(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSelect_Clear(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session/select", jsonBody(`{"activity_id":"3"}`))
	env.sessions.Select(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodDelete, "/session/select", nil)
	w := httptest.NewRecorder()
	env.sessions.Select(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}

	// Clearing never moves the camera.
	if len(env.renderer.flyTos) != 1 {
		t.Errorf("fly-to count = %d, want 1 (select only)", len(env.renderer.flyTos))
	}
}

func TestSelect_DegradedSurfaceStillSelects(t *testing.T) {
	env := newTestEnv(t)
	env.mapCtrl.Fail(mapsync.ErrSurfaceFailed)

	req := httptest.NewRequest(http.MethodPost, "/session/select", jsonBody(`{"activity_id":"3"}`))
	w := httptest.NewRecorder()
	env.sessions.Select(w, req)

	// Selection succeeds even when the camera cannot move.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 in degraded mode", w.Code)
	}

	var resp SelectResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.SelectedID != "3" {
		t.Errorf("selected = %s, want 3", resp.SelectedID)
	}
	if len(env.renderer.flyTos) != 0 {
		t.Errorf("degraded surface should not fly, got %d moves", len(env.renderer.flyTos))
	}
}

func TestLocate_WithCoordinates(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session/locate", jsonBody(`{"lat":28.6315,"lng":77.2167}`))
	w := httptest.NewRecorder()
	env.sessions.Locate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp LocateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode locate response: %v", err)
	}
	if resp.Fallback {
		t.Error("real coordinates should not report fallback")
	}
	if resp.Lat != 28.6315 || resp.Lng != 77.2167 {
		t.Errorf("position = %f,%f, want posted coordinates", resp.Lat, resp.Lng)
	}

	// Distances are enriched from the resolved position.
	a, err := env.store.Get("3")
	if err != nil {
		t.Fatalf("store lookup failed: %v", err)
	}
	if a.DistanceKm == nil {
		t.Fatal("expected distance to be computed")
	}
	if math.Abs(*a.DistanceKm) > 0.001 {
		t.Errorf("distance to own position = %f, want ~0", *a.DistanceKm)
	}
}

func TestLocate_DeniedUsesFallback(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session/locate", jsonBody(`{"denied":true}`))
	w := httptest.NewRecorder()
	env.sessions.Locate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp LocateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if !resp.Fallback {
		t.Error("denial should resolve to the fallback position")
	}
	if resp.Lat != 28.6139 || resp.Lng != 77.2090 {
		t.Errorf("fallback = %f,%f, want Delhi center", resp.Lat, resp.Lng)
	}
}

func TestLocate_RealCoordsAtFallbackCenter(t *testing.T) {
	env := newTestEnv(t)

	// Coordinates that happen to equal the fallback point still count as
	// a real locate, not a fallback.
	req := httptest.NewRequest(http.MethodPost, "/session/locate", jsonBody(`{"lat":28.6139,"lng":77.2090}`))
	w := httptest.NewRecorder()
	env.sessions.Locate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp LocateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Fallback {
		t.Error("real coordinates at the fallback point reported as fallback")
	}
}

func TestLocate_ResolvesExactlyOnce(t *testing.T) {
	env := newTestEnv(t)

	// First call denies: session pins to the fallback.
	req := httptest.NewRequest(http.MethodPost, "/session/locate", jsonBody(`{"denied":true}`))
	env.sessions.Locate(httptest.NewRecorder(), req)

	// A later call with real coordinates cannot move the pinned position.
	req = httptest.NewRequest(http.MethodPost, "/session/locate", jsonBody(`{"lat":19.0760,"lng":72.8777}`))
	w := httptest.NewRecorder()
	env.sessions.Locate(w, req)

	var resp LocateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if !resp.Fallback {
		t.Error("position should stay pinned to the first resolution")
	}
	if resp.Lat != 28.6139 || resp.Lng != 77.2090 {
		t.Errorf("position = %f,%f, want the pinned fallback", resp.Lat, resp.Lng)
	}
}

func TestLocate_FliesToUser(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session/locate", jsonBody(`{"lat":28.60,"lng":77.21}`))
	env.sessions.Locate(httptest.NewRecorder(), req)

	if len(env.renderer.flyTos) != 1 {
		t.Fatalf("fly-to count = %d, want 1", len(env.renderer.flyTos))
	}
	move := env.renderer.flyTos[0]
	if move.Zoom != mapsync.DefaultCameraConfig().UserZoom {
		t.Errorf("zoom = %f, want user zoom", move.Zoom)
	}
	if move.Center.Lat != 28.60 || move.Center.Lng != 77.21 {
		t.Errorf("camera centered at %+v, want user position", move.Center)
	}
}
