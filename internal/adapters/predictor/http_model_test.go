package predictor_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/transitline/journeyd/internal/adapters/predictor"
	"github.com/transitline/journeyd/internal/core/domain"
)

func TestHTTPModel_PredictDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Stops []string `json:"stops"`
			Times []int    `json:"times"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"delays": make([]float64, len(req.Stops)),
		})
	}))
	defer srv.Close()

	m := predictor.NewHTTPModel(srv.URL)
	delays, err := m.Predict(t.Context(), []domain.StopID{"A", "B"}, []domain.SecondsSinceMidnight{100, 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(delays) != 2 {
		t.Fatalf("expected 2 delays, got %d", len(delays))
	}
}

func TestHTTPModel_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := predictor.NewHTTPModel(srv.URL)
	_, err := m.Predict(t.Context(), []domain.StopID{"A"}, []domain.SecondsSinceMidnight{100})
	if err == nil {
		t.Fatalf("expected an error on a non-200 response")
	}
}

func TestHTTPModel_MismatchedDelayCountIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"delays": []float64{1, 2, 3},
		})
	}))
	defer srv.Close()

	m := predictor.NewHTTPModel(srv.URL)
	_, err := m.Predict(t.Context(), []domain.StopID{"A"}, []domain.SecondsSinceMidnight{100})
	if err == nil {
		t.Fatalf("expected a length-mismatch error")
	}
}
