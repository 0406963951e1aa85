package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/shared"
	"github.com/desertthunder/streamfront/internal/state"
	tu "github.com/desertthunder/streamfront/internal/testing"
)

func TestCompose(t *testing.T) {
	page := Page{
		Title:  "PlatziVideo",
		Markup: template.HTML(`<section class="login">hi</section>`),
		State:  state.DefaultState(),
		Assets: DefaultAssets(),
	}

	t.Run("Document Layout", func(t *testing.T) {
		doc, err := Compose(page)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		html := string(doc)
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<title>PlatziVideo</title>",
			`<link rel="stylesheet" href="/assets/main.css"`,
			`<div id="app"><section class="login">hi</section></div>`,
			"window.__PRELOADED_STATE__ = ",
			`<script src="/assets/vendor.js"`,
			`<script src="/assets/bundle.js"`,
		} {
			if !strings.Contains(html, want) {
				t.Errorf("expected document to contain %q", want)
			}
		}
		if strings.Index(html, "/assets/vendor.js") > strings.Index(html, "/assets/bundle.js") {
			t.Error("expected vendor bundle before main bundle")
		}
	})

	t.Run("State Shape", func(t *testing.T) {
		doc, _ := Compose(page)

		raw := extractState(t, string(doc))
		var got map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("expected state to be valid JSON, got %v: %s", err, raw)
		}
		for _, key := range []string{"user", "playing", "mylist", "trends", "originals", "search"} {
			if _, ok := got[key]; !ok {
				t.Errorf("expected key %q in state", key)
			}
		}
		if string(got["playing"]) != "{}" || string(got["mylist"]) != "[]" {
			t.Errorf("expected empty defaults, got playing=%s mylist=%s", got["playing"], got["mylist"])
		}
	})

	t.Run("Token Never Serialized", func(t *testing.T) {
		p := page
		p.State.User = models.Identity{ID: "u1", Email: "ada@example.com", Token: "secret-jwt"}

		doc, _ := Compose(p)

		if bytes.Contains(doc, []byte("secret-jwt")) {
			t.Error("expected token to stay out of the document")
		}
	})

	t.Run("Script Close Tag Is Escaped", func(t *testing.T) {
		p := page
		p.State.Trends = []models.Movie{{ID: "x", Title: "</script><script>alert(1)</script>"}}

		doc, err := Compose(p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		html := string(doc)
		if strings.Contains(html, "</script><script>alert(1)") {
			t.Error("expected </script> inside state to be escaped")
		}
		if !strings.Contains(html, `\u003c/script`) {
			t.Error("expected < to be written as \\u003c")
		}
		if n := strings.Count(html, "</script>"); n != 3 {
			t.Errorf("expected exactly 3 closing script tags, got %d", n)
		}

		var s map[string]any
		if err := json.Unmarshal([]byte(extractState(t, html)), &s); err != nil {
			t.Fatalf("expected escaped state to remain valid JSON: %v", err)
		}
		title := s["trends"].([]any)[0].(map[string]any)["title"]
		if title != "</script><script>alert(1)</script>" {
			t.Errorf("expected title to round trip, got %v", title)
		}
	})

	t.Run("Manifest Substitution", func(t *testing.T) {
		p := page
		p.Assets = Manifest{"main.js": "/assets/bundle-abc123.js"}.Assets()

		html := string(mustCompose(t, p))

		if !strings.Contains(html, `<script src="/assets/bundle-abc123.js"`) {
			t.Error("expected hashed main bundle")
		}
		if strings.Contains(html, `src="/assets/bundle.js"`) {
			t.Error("expected fallback main bundle to be replaced")
		}
		if !strings.Contains(html, `src="/assets/vendor.js"`) {
			t.Error("expected vendor fallback for missing key")
		}
	})

	t.Run("No Manifest Uses Fallback", func(t *testing.T) {
		p := page
		p.Assets = NewManifestSource(filepath.Join(t.TempDir(), "missing.json"), false, shared.NewLogger(&bytes.Buffer{})).Assets()

		html := string(mustCompose(t, p))

		if !strings.Contains(html, `<script src="/assets/bundle.js"`) {
			t.Error("expected fallback main bundle")
		}
	})
}

func mustCompose(t *testing.T, p Page) []byte {
	t.Helper()
	doc, err := Compose(p)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	return doc
}

func extractState(t *testing.T, html string) string {
	t.Helper()
	const marker = "window.__PRELOADED_STATE__ = "
	start := strings.Index(html, marker)
	if start < 0 {
		t.Fatal("state assignment not found")
	}
	rest := html[start+len(marker):]
	end := strings.Index(rest, "</script>")
	if end < 0 {
		t.Fatal("state script not closed")
	}
	return strings.TrimSpace(rest[:end])
}

func TestManifest(t *testing.T) {
	t.Run("LoadManifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		tu.MustWriteFile(t, path, `{"main.css":"/assets/main-1.css","main.js":"/assets/bundle-1.js","vendors.js":"/assets/vendor-1.js"}`)

		m, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := Assets{Stylesheet: "/assets/main-1.css", MainJS: "/assets/bundle-1.js", VendorJS: "/assets/vendor-1.js"}
		if got := m.Assets(); got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		tu.MustWriteFile(t, path, `{not json`)

		if _, err := LoadManifest(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("Nil Manifest", func(t *testing.T) {
		var m Manifest
		if got := m.Assets(); got != DefaultAssets() {
			t.Errorf("expected fallbacks, got %+v", got)
		}
	})

	t.Run("Production Reads Once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		tu.MustWriteFile(t, path, `{"main.js":"/assets/bundle-1.js"}`)
		src := NewManifestSource(path, false, shared.NewLogger(&bytes.Buffer{}))

		first := src.Assets()
		tu.MustWriteFile(t, path, `{"main.js":"/assets/bundle-2.js"}`)
		second := src.Assets()

		if first.MainJS != "/assets/bundle-1.js" || second.MainJS != "/assets/bundle-1.js" {
			t.Errorf("expected cached manifest, got %q then %q", first.MainJS, second.MainJS)
		}
	})

	t.Run("Development Rereads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		tu.MustWriteFile(t, path, `{"main.js":"/assets/bundle-1.js"}`)
		src := NewManifestSource(path, true, shared.NewLogger(&bytes.Buffer{}))

		src.Assets()
		if err := os.Remove(path); err != nil {
			t.Fatal(err)
		}

		if got := src.Assets(); got != DefaultAssets() {
			t.Errorf("expected fallback after manifest removal, got %+v", got)
		}
	})
}

func TestGravatar(t *testing.T) {
	want := "https://gravatar.com/avatar/b642b4217b34b1e8d3bd915fc65c4452"

	if got := Gravatar("test@test.com"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got := Gravatar("  TEST@test.com "); got != want {
		t.Errorf("expected normalized address to match, got %s", got)
	}
}
