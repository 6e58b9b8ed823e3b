package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"go.uber.org/zap"
)

// mockDownloader implements port.SessionDownloader for testing
type mockDownloader struct {
	lastURL  string
	lastName string
	ref      *domain.SessionRef
	err      error
}

func (m *mockDownloader) Download(ctx context.Context, rawURL, wantedName string) (*domain.SessionRef, error) {
	m.lastURL = rawURL
	m.lastName = wantedName
	if m.err != nil {
		return nil, m.err
	}
	return m.ref, nil
}

func newTestServer(t *testing.T) (*Server, *mockDownloader, string) {
	t.Helper()
	root := t.TempDir()
	dl := &mockDownloader{ref: &domain.SessionRef{SessionID: "abc-123"}}
	cfg := DefaultConfig()
	cfg.MeetingsDir = root
	return New(cfg, nil, dl, zap.NewNop()), dl, root
}

func makeSession(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		p := filepath.Join(dir, f)
		os.MkdirAll(filepath.Dir(p), 0755)
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestIndexListsSessions(t *testing.T) {
	srv, _, root := newTestServer(t)
	makeSession(t, root, "weekly-standup", domain.SentinelFilename, "index.html", "asset-manifest.json")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "weekly-standup") {
		t.Error("session name missing from index page")
	}
	if !strings.Contains(body, "/meetings/weekly-standup/index.html") {
		t.Error("playback link missing from index page")
	}
}

func TestIndexMarksIncompleteSessions(t *testing.T) {
	srv, _, root := newTestServer(t)
	makeSession(t, root, "halfway")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(rec.Body.String(), "incomplete") {
		t.Error("incomplete session not flagged on index page")
	}
}

func TestDownloadFormTriggersDownload(t *testing.T) {
	srv, dl, _ := newTestServer(t)

	form := url.Values{}
	form.Set("meeting-url", "https://bbb.example.com/playback/presentation/2.3/x")
	form.Set("meeting-name", "my standup")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if dl.lastURL != "https://bbb.example.com/playback/presentation/2.3/x" {
		t.Errorf("downloader got URL %q", dl.lastURL)
	}
	if dl.lastName != "my_standup" {
		t.Errorf("spaces in name should become underscores, got %q", dl.lastName)
	}
	if !strings.Contains(rec.Body.String(), "abc-123 downloaded") {
		t.Error("success message missing")
	}
}

func TestDownloadFormMissingURL(t *testing.T) {
	srv, dl, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("meeting-name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if dl.lastURL != "" {
		t.Error("downloader must not run without a URL")
	}
	if !strings.Contains(rec.Body.String(), "required") {
		t.Error("validation message missing")
	}
}

func TestDownloadFormReportsFailure(t *testing.T) {
	srv, dl, _ := newTestServer(t)
	dl.err = errors.New("session id not found in URL")

	form := url.Values{}
	form.Set("meeting-url", "https://bbb.example.com/nope")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Download failed") {
		t.Error("failure message missing")
	}
}

func TestMeetingsFilesServedWithoutCaching(t *testing.T) {
	srv, _, root := newTestServer(t)
	makeSession(t, root, "s1", "metadata.xml")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meetings/s1/metadata.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected Cache-Control no-store, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Error("health body missing status")
	}
}

func TestUnknownPathIs404(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
