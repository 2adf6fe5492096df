package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	googleauth "resumind-backend/internal/auth"
	"resumind-backend/internal/capability"
	"resumind-backend/internal/config"
	"resumind-backend/internal/convert"
	"resumind-backend/internal/llm"
	"resumind-backend/internal/resumes"
	"resumind-backend/internal/shared/storage/kv"
	localstore "resumind-backend/internal/shared/storage/object/local"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		Port:            "8080",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	}

	records := resumes.NewRecordStore(kv.NewMemoryStore())
	svc := resumes.NewService(records, localstore.New(t.TempDir()), convert.Unconfigured{}, llm.PlaceholderClient{}, capability.New("any", 768), false)
	handler := resumes.NewHandler(svc)
	authSvc := googleauth.NewGoogleService("", "", "", "")

	return NewRouter(cfg, handler, authSvc)
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	for _, metric := range []string{
		"resume_analyses_started_total",
		"resume_conversions_skipped_total",
		"resume_analysis_duration_ms_count",
	} {
		if !strings.Contains(w.Body.String(), metric) {
			t.Fatalf("metrics output missing %s", metric)
		}
	}
}

func TestResumeRoutesRequireAuth(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/api/v1/resumes", "/api/v1/resumes/abc"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s status = %d, want 401", path, w.Code)
		}
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7070": ":7070",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
