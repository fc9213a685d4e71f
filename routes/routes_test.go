package routes

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/walkin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseCorsOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{"*"}},
		{" , ", []string{"*"}},
		{"http://desk.local, https://frontdesk.example.com", []string{"http://desk.local", "https://frontdesk.example.com"}},
	}
	for _, tt := range tests {
		if got := parseCorsOrigins(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%q: expected %v, got %v", tt.raw, tt.want, got)
		}
	}
}

func TestHealthAndOptionalSurfaces(t *testing.T) {
	r := SetupRouter(nil, nil, nil, nil, "", zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}

	for _, path := range []string{"/api/rooms/available-now", "/walk-in-dashboard"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s should not be mounted, got %d", path, w.Code)
		}
	}
}

func TestFrontDeskRoutesMounted(t *testing.T) {
	registry := walkin.NewRegistry(func(string) *walkin.Controller {
		return walkin.NewController(walkin.Options{})
	})
	r := SetupRouter(nil, nil, nil, controllers.NewFrontDeskController(registry), "", zerolog.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/walk-in-dashboard" {
		t.Fatalf("root should redirect to the dashboard, got %d %s", w.Code, w.Header().Get("Location"))
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/walk-in/booking-success", nil)
	req.Header.Set("X-Terminal-ID", "desk-1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/walk-in-dashboard" {
		t.Fatalf("receipt without booking should redirect, got %d %s", w.Code, w.Header().Get("Location"))
	}
}
