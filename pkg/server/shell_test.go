package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPageShell(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "/psychologist/42/intro")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`data-view="PsychologistIntro"`,
		`data-route="PsychologistIntro"`,
		`data-path="/psychologist/42/intro"`,
		`{"id":"42"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("shell missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "/assets/app.js") {
		t.Error("assets should not be referenced without a static dir")
	}
}

func TestPageShellHome(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-view="HomePage"`) {
		t.Errorf("shell should render HomePage:\n%s", rec.Body.String())
	}
}

func TestPageShellEscapesParams(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "/psychologist/%3Cscript%3E/chat")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("param value must be escaped in the shell")
	}
}

func TestPageShellRedirectsToCanonical(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target   string
		location string
	}{
		{"/psychologist/7/chat/", "/psychologist/7/chat"},
		{"/psychologist//7/chat?topic=sleep", "/psychologist/7/chat?topic=sleep"},
	}
	for _, tt := range tests {
		rec := do(t, s, tt.target)
		if rec.Code != http.StatusMovedPermanently {
			t.Errorf("GET %s status = %d, want 301", tt.target, rec.Code)
			continue
		}
		if got := rec.Header().Get("Location"); got != tt.location {
			t.Errorf("GET %s Location = %q, want %q", tt.target, got, tt.location)
		}
	}
}

func TestPageShellNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, "/psychologist/42")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPageShellCustomNotFound(t *testing.T) {
	s := newTestServer(t, WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("lost: " + r.URL.Path))
	})))

	rec := do(t, s, "/unknown")
	if rec.Code != http.StatusTeapot || rec.Body.String() != "lost: /unknown" {
		t.Errorf("GET /unknown = %d %q", rec.Code, rec.Body.String())
	}
}

func TestPageShellFingerprintedAssets(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"app.js": "app.3f9c1a2b.js", "app.css": "app.77d0e41c.css"}`
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	cfg.StaticDir = dir
	s := New(newTestTable(t), cfg)

	body := do(t, s, "/").Body.String()
	for _, want := range []string{
		`src="/assets/app.3f9c1a2b.js"`,
		`href="/assets/app.77d0e41c.css"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("shell missing %q:\n%s", want, body)
		}
	}
}
