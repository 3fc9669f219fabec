package uischema

import (
	"strings"
	"testing"
)

func TestSanitizeIconMarkupRemovesScripts(t *testing.T) {
	input := `  <svg viewBox="0 0 64 64" onload="steal()"><script>alert('x')</script><circle cx="1" cy="2" r="3" /></svg>`
	got := sanitizeIconMarkup(input)
	if got == "" {
		t.Fatalf("expected sanitized markup, got empty string")
	}
	for _, banned := range []string{"script", "onload", "alert"} {
		if strings.Contains(got, banned) {
			t.Fatalf("expected %q to be removed, got %q", banned, got)
		}
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "<circle") {
		t.Fatalf("expected svg/circle elements to remain, got %q", got)
	}
}

func TestSanitizeIconMarkupEmpty(t *testing.T) {
	if got := sanitizeIconMarkup("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := sanitizeIconMarkup(`<img src="x" onerror="boom()">`); got != "" {
		t.Fatalf("expected non-svg markup to be stripped, got %q", got)
	}
}
