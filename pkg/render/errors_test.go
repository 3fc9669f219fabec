package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/render"
)

var orderFields = []string{order.FieldFullName, order.FieldSize, order.FieldToppings}

func TestMapErrorPayload(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string][]string
		wantFields map[string][]string
		wantForm   []string
	}{
		{
			name: "validation keys",
			payload: map[string][]string{
				"full_name": {"Full name is required"},
				"size":      {" Size must be S, M, or L ", "Size must be S, M, or L"},
			},
			wantFields: map[string][]string{
				"full_name": {"Full name is required"},
				"size":      {"Size must be S, M, or L"},
			},
		},
		{
			name: "contract pointers",
			payload: map[string][]string{
				"/full_name":  {"value must be a string"},
				"toppings/1":  {"value must be a string"},
				"toppings.3":  {"value must be a string"},
				"toppings[4]": {"unknown topping"},
			},
			wantFields: map[string][]string{
				"full_name": {"value must be a string"},
				"toppings":  {"value must be a string", "unknown topping"},
			},
		},
		{
			name: "unknown and blank keys go to form level",
			payload: map[string][]string{
				"":          {"property \"crust\" is unsupported"},
				"crust":     {"Crust is not on the menu"},
				"full_name": {"   "},
			},
			wantForm: []string{"Crust is not on the menu", "property \"crust\" is unsupported"},
		},
		{name: "empty payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := render.MapErrorPayload(orderFields, tt.payload)
			sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
			if diff := cmp.Diff(tt.wantFields, mapped.Fields, sortStrings); diff != "" {
				t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantForm, mapped.Form, sortStrings); diff != "" {
				t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
	if got := render.MergeFormErrors(nil); got != nil {
		t.Fatalf("expected nil for no messages, got %#v", got)
	}
}
