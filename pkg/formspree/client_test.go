package formspree

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/submission"
)

func contactValues() submission.Values {
	return submission.Values{"name": "Ana", "email": "ana@x.com", "message": "hi"}
}

func TestNew_RequiresFormOrEndpoint(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatalf("expected error without form id")
	}
	c, err := New("xdovlepp")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := c.Endpoint(); got != "https://formspree.io/f/xdovlepp" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}

func TestSubmit_Success(t *testing.T) {
	var received submission.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected JSON accept header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"next":"/thanks"}`))
	}))
	defer srv.Close()

	c, err := New("", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Submit(context.Background(), contactValues()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(contactValues(), received); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"error": "Validation errors",
			"errors": [
				{"field": "email", "code": "TYPE_EMAIL", "message": "should be an email"},
				{"field": "message", "code": "REQUIRED_FIELD_EMPTY", "message": ""}
			]
		}`))
	}))
	defer srv.Close()

	c, _ := New("", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	err := c.Submit(context.Background(), contactValues())

	var rejection *submission.Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("expected rejection, got %v", err)
	}
	want := &submission.Rejection{
		Errors: []submission.ValidationError{
			{Field: "email", Message: "should be an email"},
			{Field: "message", Message: "REQUIRED_FIELD_EMPTY"},
		},
		Form: []string{"Validation errors"},
	}
	if diff := cmp.Diff(want, rejection); diff != "" {
		t.Fatalf("rejection mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := New("", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	err := c.Submit(context.Background(), contactValues())

	var status StatusError
	if !errors.As(err, &status) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if status.StatusCode() != http.StatusBadGateway {
		t.Fatalf("unexpected status %d", status.StatusCode())
	}
	var rejection *submission.Rejection
	if errors.As(err, &rejection) {
		t.Fatalf("server errors must not be reported as validation failures")
	}
}

func TestSubmit_ClientErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<html>not found</html>`))
	}))
	defer srv.Close()

	c, _ := New("", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	var status StatusError
	if err := c.Submit(context.Background(), contactValues()); !errors.As(err, &status) {
		t.Fatalf("expected StatusError, got %v", err)
	}
}

func TestSubmit_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New("", WithEndpoint(url))
	err := c.Submit(context.Background(), contactValues())
	if err == nil {
		t.Fatalf("expected network error")
	}
	var rejection *submission.Rejection
	if errors.As(err, &rejection) {
		t.Fatalf("network errors must not be reported as validation failures")
	}
}

func TestSubmit_WithMachine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"field":"email","code":"TYPE_EMAIL","message":"invalid"}]}`))
	}))
	defer srv.Close()

	c, _ := New("", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	m := submission.New(c)
	m.Submit(context.Background(), contactValues())
	snap, err := m.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if diff := cmp.Diff([]string{"invalid"}, snap.ErrorsFor("email")); diff != "" {
		t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
	}
	if snap.ErrorsFor("name") != nil || snap.General {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
