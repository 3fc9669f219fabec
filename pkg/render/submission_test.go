package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pizzaform/pkg/render"
)

func TestSortedHiddenFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   []render.HiddenField
	}{
		{name: "none"},
		{name: "blank names dropped", fields: map[string]string{" ": "x", "": "y"}},
		{
			name:   "csrf token",
			fields: render.CSRFHidden("tok-123"),
			want:   []render.HiddenField{{Name: "_csrf", Value: "tok-123"}},
		},
		{
			name:   "sorted by trimmed name",
			fields: map[string]string{"_csrf": "tok", " attempt ": "4", "draft": ""},
			want: []render.HiddenField{
				{Name: "_csrf", Value: "tok"},
				{Name: "attempt", Value: "4"},
				{Name: "draft", Value: ""},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, render.SortedHiddenFields(tt.fields)); diff != "" {
				t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCSRFHiddenBlankToken(t *testing.T) {
	if got := render.CSRFHidden(""); got != nil {
		t.Fatalf("expected no hidden fields, got %v", got)
	}
}
