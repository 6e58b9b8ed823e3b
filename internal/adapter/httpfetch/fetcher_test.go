package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("slide bytes"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSuccess(t *testing.T) {
	srv := newTestServer(t)
	f := New(nil, zap.NewNop())

	dest := filepath.Join(t.TempDir(), "presentation", "slide-1.png")
	outcome, err := f.Fetch(context.Background(), srv.URL+"/ok", dest)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if outcome != domain.OutcomeSuccess {
		t.Errorf("expected success, got %v", outcome)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination not written: %v", err)
	}
	if string(data) != "slide bytes" {
		t.Errorf("unexpected file content %q", data)
	}
	if _, err := os.Stat(dest + ".downloading"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestFetchOverwritesExisting(t *testing.T) {
	srv := newTestServer(t)
	f := New(nil, zap.NewNop())

	dest := filepath.Join(t.TempDir(), "file.bin")
	if err := os.WriteFile(dest, []byte("stale truncated data"), 0644); err != nil {
		t.Fatal(err)
	}

	outcome, err := f.Fetch(context.Background(), srv.URL+"/ok", dest)
	if err != nil || outcome != domain.OutcomeSuccess {
		t.Fatalf("Fetch failed: outcome=%v err=%v", outcome, err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "slide bytes" {
		t.Errorf("existing file not overwritten, got %q", data)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := newTestServer(t)
	f := New(nil, zap.NewNop())

	dest := filepath.Join(t.TempDir(), "file.bin")
	outcome, err := f.Fetch(context.Background(), srv.URL+"/missing", dest)
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if outcome != domain.OutcomeNotFound {
		t.Errorf("expected not_found, got %v", outcome)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("no file should be written for a 404")
	}
}

func TestFetchServerError(t *testing.T) {
	srv := newTestServer(t)
	f := New(nil, zap.NewNop())

	dest := filepath.Join(t.TempDir(), "file.bin")
	outcome, err := f.Fetch(context.Background(), srv.URL+"/broken", dest)
	if outcome != domain.OutcomeFailed {
		t.Errorf("expected failed, got %v", outcome)
	}
	if err == nil {
		t.Error("expected diagnostic error for a non-404 failure")
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	f := New(nil, zap.NewNop())

	dest := filepath.Join(t.TempDir(), "file.bin")
	outcome, err := f.Fetch(context.Background(), "http://127.0.0.1:1/x", dest)
	if outcome != domain.OutcomeFailed {
		t.Errorf("expected failed, got %v", outcome)
	}
	if err == nil {
		t.Error("expected transport error")
	}
}

func TestFetchSkipExisting(t *testing.T) {
	srv := newTestServer(t)
	f := New(&Config{SkipExisting: true}, zap.NewNop())

	dest := filepath.Join(t.TempDir(), "file.bin")
	if err := os.WriteFile(dest, []byte("already here"), 0644); err != nil {
		t.Fatal(err)
	}

	outcome, err := f.Fetch(context.Background(), srv.URL+"/ok", dest)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if outcome != domain.OutcomeSkipped {
		t.Errorf("expected skipped, got %v", outcome)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "already here" {
		t.Error("existing file was overwritten in skip mode")
	}
}

func TestFetchSkipExistingIgnoresEmptyFile(t *testing.T) {
	srv := newTestServer(t)
	f := New(&Config{SkipExisting: true}, zap.NewNop())

	dest := filepath.Join(t.TempDir(), "file.bin")
	if err := os.WriteFile(dest, nil, 0644); err != nil {
		t.Fatal(err)
	}

	outcome, err := f.Fetch(context.Background(), srv.URL+"/ok", dest)
	if err != nil || outcome != domain.OutcomeSuccess {
		t.Fatalf("empty file should be re-fetched: outcome=%v err=%v", outcome, err)
	}
}
