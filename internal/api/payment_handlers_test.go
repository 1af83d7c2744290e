package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPaymentResult_UnknownRecord(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/payments/result", jsonBody(`{"record_id":"missing","succeeded":true}`))
	w := httptest.NewRecorder()
	env.payResults.Result(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPaymentResult_MissingRecordID(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/payments/result", jsonBody(`{"succeeded":true}`))
	w := httptest.NewRecorder()
	env.payResults.Result(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPaymentResult_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/payments/result", jsonBody(`{not json`))
	w := httptest.NewRecorder()
	env.payResults.Result(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
