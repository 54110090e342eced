package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTextBuiltinWithParams(t *testing.T) {
	c := NewCatalog("en")

	if got := c.Text("embedvideo-consent-load", "video"); got != "Load video" {
		t.Errorf("unexpected load prompt: %q", got)
	}
	if got := c.Text("embedvideo-service-youtube"); got != "YouTube" {
		t.Errorf("unexpected service name: %q", got)
	}
}

func TestTextMissingIDPlaceholder(t *testing.T) {
	c := NewCatalog("en")
	if got := c.Text("embedvideo-service-nosuch"); got != "(embedvideo-service-nosuch)" {
		t.Errorf("missing ids must yield a placeholder, got %q", got)
	}
}

func TestTextFallsBackToEnglish(t *testing.T) {
	c := NewCatalog("de")
	if got := c.Text("embedvideo-consent-continue"); got != "Continue" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestTextParamSubstitutionOrder(t *testing.T) {
	c := NewCatalog("en")
	dir := t.TempDir()
	writeMessages(t, dir, "en.json", `{"test-multi": "$2 then $1"}`)
	if err := c.LoadDirectory(dir); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := c.Text("test-multi", "first", "second"); got != "second then first" {
		t.Errorf("unexpected substitution: %q", got)
	}
}

func TestLoadDirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	writeMessages(t, dir, "de.json", `{"embedvideo-consent-continue": "Weiter"}`)

	c := NewCatalog("de")
	if err := c.LoadDirectory(dir); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := c.Text("embedvideo-consent-continue"); got != "Weiter" {
		t.Errorf("override not applied: %q", got)
	}
	// Unoverridden ids still fall back to English.
	if got := c.Text("embedvideo-consent-dismiss"); got != "Dismiss" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestLoadDirectoryMissingIsNotAnError(t *testing.T) {
	c := NewCatalog("en")
	if err := c.LoadDirectory(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("missing directory must not fail: %v", err)
	}
}

func TestLoadDirectoryMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeMessages(t, dir, "en.json", `{not json`)

	c := NewCatalog("en")
	if err := c.LoadDirectory(dir); err == nil {
		t.Error("malformed message files must fail loading")
	}
}

func writeMessages(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}
