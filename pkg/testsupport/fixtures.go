// Package testsupport holds fixtures and golden file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-pizzaform/pkg/order"
)

// UpdateEnv is the environment variable that makes Golden rewrite files.
const UpdateEnv = "UPDATE_GOLDENS"

// Context returns the context tests pass to renderers and stores.
func Context() context.Context {
	return context.Background()
}

// MustLoadDraft decodes a JSON draft fixture.
func MustLoadDraft(t *testing.T, path string) order.Draft {
	t.Helper()
	var draft order.Draft
	if err := json.Unmarshal(readFile(t, path), &draft); err != nil {
		t.Fatalf("decode draft %s: %v", path, err)
	}
	return draft
}

// MustDecodeJSON decodes a JSON object into a generic map.
func MustDecodeJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode json: %v\n%s", err, data)
	}
	return out
}

// Golden returns the expected contents stored at path. When UPDATE_GOLDENS is
// set, got is written to path first, so the comparison that follows passes.
func Golden(t *testing.T, path string, got []byte) []byte {
	t.Helper()
	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("update golden %s: %v", path, err)
		}
	}
	return readFile(t, path)
}

// RenderBoth runs fn with a buffer and returns what fn returned alongside
// what it wrote, failing the test when fn errors.
func RenderBoth(t *testing.T, fn func(io.Writer) (string, error)) (returned, written string) {
	t.Helper()
	var buf bytes.Buffer
	returned, err := fn(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return returned, buf.String()
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
