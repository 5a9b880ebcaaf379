package server

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestAssetRelPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/assets/app.js", "app.js", true},
		{"/assets/css/app.css", "css/app.css", true},
		{"/assets/", "", false},
		{"/assets/../secret", "", false},
		{"/assets/./app.js", "", false},
		{"/assets//etc/passwd", "", false},
		{"/assets/.env", "", false},
		{"/assets/js\\app.js", "", false},
		{"/other/app.js", "", false},
	}
	for _, tt := range tests {
		got, ok := assetRelPath(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("assetRelPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsFingerprinted(t *testing.T) {
	tests := map[string]bool{
		"app.3f9c1a2b.js":      true,
		"css/app.77D0E41C.css": true,
		"app.js":               false,
		"app.v2.js":            false,
		"app.nothexxx.js":      false,
	}
	for name, want := range tests {
		if got := isFingerprinted(name); got != want {
			t.Errorf("isFingerprinted(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestStaticCacheHeaders(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"app.js":          "plain",
		"app.3f9c1a2b.js": "hashed",
		".env":            "SECRET=1",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	cfg.StaticDir = dir
	s := New(newTestTable(t), cfg)

	rec := do(t, s, "/assets/app.3f9c1a2b.js")
	if rec.Code != http.StatusOK || rec.Header().Get("Cache-Control") != "public, max-age=31536000, immutable" {
		t.Errorf("hashed asset = %d %q", rec.Code, rec.Header().Get("Cache-Control"))
	}

	rec = do(t, s, "/assets/app.js")
	if rec.Code != http.StatusOK || rec.Header().Get("Cache-Control") != "public, max-age=300, must-revalidate" {
		t.Errorf("plain asset = %d %q", rec.Code, rec.Header().Get("Cache-Control"))
	}

	if rec := do(t, s, "/assets/.env"); rec.Code != http.StatusNotFound {
		t.Errorf("hidden file status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, "/assets/missing.js"); rec.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d, want 404", rec.Code)
	}
}
