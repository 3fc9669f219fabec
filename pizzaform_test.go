package pizzaform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/renderers/vanilla"
)

func TestAssetsFSContainsRuntimeScript(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.RuntimeScriptName)
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "X-CSRF-Token") {
		t.Fatalf("expected runtime script to send the csrf header")
	}
}

func TestEmbeddedTemplatesIncludePages(t *testing.T) {
	for _, name := range []string{"layout.tmpl", "home.tmpl", "order.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestRenderOrderHTML(t *testing.T) {
	html, err := RenderOrderHTML(context.Background(), Draft{FullName: "Ada Lovelace", Size: order.SizeSmall})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	output := string(html)
	for _, fragment := range []string{`value="Ada Lovelace"`, `<option value="S" selected>Small</option>`, "data-submit>"} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, output)
		}
	}
}

func TestNewFormStartsInvalid(t *testing.T) {
	form := NewForm("")
	if form.State().Valid {
		t.Fatalf("empty draft should be invalid")
	}
}
