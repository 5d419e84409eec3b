package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/submission"
)

// Recorder is a submission.Collaborator that records every call and answers
// with queued results. An empty queue answers nil (success).
type Recorder struct {
	mu      sync.Mutex
	calls   []submission.Values
	results []error
}

var _ submission.Collaborator = (*Recorder)(nil)

// NewRecorder returns a Recorder that answers with results in order.
func NewRecorder(results ...error) *Recorder {
	return &Recorder{results: results}
}

// Submit records values and pops the next queued result.
func (r *Recorder) Submit(ctx context.Context, values submission.Values) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, values.Clone())
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(r.results) == 0 {
		return nil
	}
	next := r.results[0]
	r.results = r.results[1:]
	return next
}

// Calls returns a copy of the recorded submissions.
func (r *Recorder) Calls() []submission.Values {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]submission.Values, 0, len(r.calls))
	for _, call := range r.calls {
		out = append(out, call.Clone())
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file as indented JSON when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
