package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRenderOncePipeline(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "resume.md"),
		"# Ada Lovelace\n\n## Summary\n\nEngine programmer.\n")
	writeFile(t, filepath.Join(dir, "templates", "base.mustache.html"),
		"<h1>{{person.full_name}}</h1>\n{{> footer}}")
	writeFile(t, filepath.Join(dir, "templates", "footer.mustache.html"),
		"<p>{{summary}}</p>")

	renderOpts.content = filepath.Join(dir, "resume.md")
	renderOpts.template = filepath.Join(dir, "templates", "base.mustache.html")
	renderOpts.output = filepath.Join(dir, "out.html")
	renderOpts.dataOut = filepath.Join(dir, "data.json")
	renderOpts.overlay = ""

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := renderOnce(logger); err != nil {
		t.Fatalf("renderOnce failed: %v", err)
	}

	out, err := os.ReadFile(renderOpts.output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	expected := "<h1>Ada Lovelace</h1>\n<p>Engine programmer.</p>"
	if string(out) != expected {
		t.Errorf("expected %q, got %q", expected, string(out))
	}

	raw, err := os.ReadFile(renderOpts.dataOut)
	if err != nil {
		t.Fatalf("failed to read data-out: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("data-out is not valid JSON: %v", err)
	}
	if data["summary"] != "Engine programmer." {
		t.Errorf("unexpected summary in data-out: %v", data["summary"])
	}
}

func TestRenderOnceWithOverlay(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "resume.md"),
		"# Ada Lovelace\n\n## Summary\n\nOriginal summary.\n")
	writeFile(t, filepath.Join(dir, "base.mustache.html"),
		"{{summary}} ({{theme}})")
	writeFile(t, filepath.Join(dir, "overlay.yaml"),
		"summary: Overridden summary\ntheme: dark\n")

	renderOpts.content = filepath.Join(dir, "resume.md")
	renderOpts.template = filepath.Join(dir, "base.mustache.html")
	renderOpts.output = filepath.Join(dir, "out.html")
	renderOpts.dataOut = ""
	renderOpts.overlay = filepath.Join(dir, "overlay.yaml")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := renderOnce(logger); err != nil {
		t.Fatalf("renderOnce failed: %v", err)
	}

	out, err := os.ReadFile(renderOpts.output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(out) != "Overridden summary (dark)" {
		t.Errorf("unexpected output %q", string(out))
	}
}

func TestLoadOverlayAcceptsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.json")
	writeFile(t, path, `{"theme": "light", "year": 2026}`)

	overlay, err := loadOverlay(path)
	if err != nil {
		t.Fatalf("loadOverlay failed: %v", err)
	}
	if overlay["theme"] != "light" {
		t.Errorf("expected theme 'light', got %v", overlay["theme"])
	}
}

func TestMergeContext(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	mergeContext(base, map[string]any{"b": 3, "c": 4})

	if base["a"] != 1 || base["b"] != 3 || base["c"] != 4 {
		t.Errorf("unexpected merge result: %v", base)
	}
}
