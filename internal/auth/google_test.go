package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestStartRequiresConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewGoogleService("", "", "", "").RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestStartRedirectsToGoogle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewGoogleService("client-id", "client-secret", "http://localhost:8080/api/v1/auth/google/callback", "http://localhost:5173/auth")
	svc.RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	loc := w.Header().Get("Location")
	if loc == "" {
		t.Fatal("no redirect location")
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewGoogleService("client-id", "client-secret", "http://localhost/cb", "http://localhost:5173/auth")
	svc.RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=forged&code=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCallbackRequiresStateAndCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewGoogleService("client-id", "client-secret", "http://localhost/cb", "http://localhost:5173/auth")
	svc.RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSignout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewGoogleService("client-id", "client-secret", "http://localhost/cb", "http://localhost:5173/auth")
	svc.RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestStateStoreConsumeOnce(t *testing.T) {
	s := newStateStore()
	s.put("abc", time.Now().Add(time.Minute))

	if !s.consume("abc") {
		t.Fatal("fresh state should consume")
	}
	if s.consume("abc") {
		t.Fatal("state should be single use")
	}
}

func TestStateStoreExpires(t *testing.T) {
	s := newStateStore()
	s.put("old", time.Now().Add(-time.Second))
	if s.consume("old") {
		t.Fatal("expired state should not consume")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://localhost:5173/auth?next=%2Fhome", "tok123")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	if got != "http://localhost:5173/auth?next=%2Fhome&token=tok123" {
		t.Fatalf("appendToken = %q", got)
	}

	if _, err := appendToken("", "tok"); err == nil {
		t.Fatal("empty redirect should error")
	}
}
