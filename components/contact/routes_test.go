package contact

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/site"); got != "/site/contact" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("site"); got != "/site/contact" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/site/", WithRoutePath("hello")); got != "/site/hello" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := AssetPath("/site", "contact.css"); got != "/site/contact/assets/contact.css" {
		t.Fatalf("unexpected asset path: %q", got)
	}
}

func TestRegisterRoutes_ServeMux(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/site", WithCollaborator(testsupport.NewRecorder()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/site/contact" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, pattern, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<script src="/site/contact/assets/contact-reveal.js" defer></script>`) {
		t.Fatalf("runtime script not linked:\n%s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/site/contact/assets/contact-reveal.js", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected asset status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "IntersectionObserver") {
		t.Fatalf("unexpected asset body")
	}
}

func TestRegisterRoutes_Chi(t *testing.T) {
	router := chi.NewRouter()
	component := New(WithCollaborator(testsupport.NewRecorder()))
	pattern, err := component.RegisterRoutes(router, "/")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/contact" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/contact/assets/contact.css", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stylesheet status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("unexpected stylesheet content-type %q", ct)
	}
}

func TestRegisterRoutes_NilMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
