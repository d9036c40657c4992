package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nordtext/scandibench/internal/leaderboard"
)

func newTestRouter(t *testing.T, store *leaderboard.Store) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("SCANDIBENCH_API_KEY", "")
	t.Setenv("SCANDIBENCH_DISABLE_AUTH", "true")

	r := gin.New()
	s := &Server{router: r, store: store}
	if err := s.registerRoutes(); err != nil {
		t.Fatalf("registerRoutes: %v", err)
	}
	return r
}

func newTestStore(t *testing.T) *leaderboard.Store {
	t.Helper()
	store, err := leaderboard.NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Save(context.Background(), &leaderboard.Entry{
		Model:    "m1",
		Provider: "openai",
		Dataset:  "scandiqa-da",
		Task:     "question-answering",
		Language: "da",
		Score:    62.5,
		Metrics:  map[string]float64{"em": 50, "f1": 62.5},
		Latency:  100,
		EvalDate: time.UnixMilli(1000).UTC(),
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return store
}

func TestHandleHealth(t *testing.T) {
	r := newTestRouter(t, newTestStore(t))
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
}

func TestHandleGetLeaderboard(t *testing.T) {
	r := newTestRouter(t, newTestStore(t))
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?dataset=scandiqa-da&limit=10", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.Bytes()

	var out []leaderboard.Entry
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(entries): got %d want %d", len(out), 1)
	}
	if out[0].Model != "m1" {
		t.Fatalf("entry[0].Model: got %q want %q", out[0].Model, "m1")
	}
	if out[0].Metrics["f1"] != 62.5 {
		t.Fatalf("entry[0].Metrics: got %v", out[0].Metrics)
	}

	// The payload uses snake_case field names, not Go-cased ones.
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	for _, key := range []string{"run_id", "latency_ms", "eval_date"} {
		if _, ok := raw[0][key]; !ok {
			t.Fatalf("payload missing %q: keys %v", key, mapKeys(raw[0]))
		}
	}
	for _, key := range []string{"RunID", "Latency", "EvalDate"} {
		if _, ok := raw[0][key]; ok {
			t.Fatalf("payload leaked Go field name %q", key)
		}
	}
}

func mapKeys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestHandleGetLeaderboard_MissingDataset(t *testing.T) {
	r := newTestRouter(t, newTestStore(t))
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleGetModelHistory(t *testing.T) {
	r := newTestRouter(t, newTestStore(t))
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/history?model=m1&dataset=scandiqa-da", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}

	var out []leaderboard.Entry
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(history): got %d want %d", len(out), 1)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("SCANDIBENCH_API_KEY", "secret")
	t.Setenv("SCANDIBENCH_DISABLE_AUTH", "")

	r := gin.New()
	s := &Server{router: r, store: newTestStore(t)}
	if err := s.registerRoutes(); err != nil {
		t.Fatalf("registerRoutes: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without key: got %d want %d", rec.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with key: got %d want %d", rec.Code, http.StatusOK)
	}
}

func TestRegisterRoutes_MissingAuthConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("SCANDIBENCH_API_KEY", "")
	t.Setenv("SCANDIBENCH_DISABLE_AUTH", "")

	if _, err := NewServer(newTestStore(t)); err == nil {
		t.Fatal("expected error when neither api key nor auth opt-out is set")
	}
}
