package order

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate_FullNameBounds(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: MsgFullNameRequired},
		{name: "whitespace only", in: "   \t", want: MsgFullNameRequired},
		{name: "one char", in: "A", want: MsgFullNameTooShort},
		{name: "two chars", in: "Al", want: MsgFullNameTooShort},
		{name: "padded two chars", in: "  Al  ", want: MsgFullNameTooShort},
		{name: "three chars", in: "Bob", want: ""},
		{name: "twenty chars", in: strings.Repeat("x", 20), want: ""},
		{name: "padded twenty chars", in: "  " + strings.Repeat("x", 20) + "  ", want: ""},
		{name: "twenty one chars", in: strings.Repeat("x", 21), want: MsgFullNameTooLong},
		{name: "multibyte within bounds", in: "Zoë", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(Draft{FullName: tc.in, Size: SizeMedium})
			if got := result.Get(FieldFullName); got != tc.want {
				t.Fatalf("full_name message: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidate_AllLengths(t *testing.T) {
	for length := 0; length <= 30; length++ {
		name := strings.Repeat("a", length)
		flagged := Validate(Draft{FullName: name, Size: SizeLarge}).Get(FieldFullName) != ""
		inRange := length >= FullNameMinLength && length <= FullNameMaxLength
		if flagged == inRange {
			t.Fatalf("length %d: flagged=%v inRange=%v", length, flagged, inRange)
		}
	}
}

func TestValidate_Size(t *testing.T) {
	cases := []struct {
		size Size
		want string
	}{
		{size: "", want: MsgSizeRequired},
		{size: "S", want: ""},
		{size: "M", want: ""},
		{size: "L", want: ""},
		{size: "s", want: MsgSizeIncorrect},
		{size: "XL", want: MsgSizeIncorrect},
		{size: " ", want: MsgSizeIncorrect},
	}

	for _, tc := range cases {
		result := Validate(Draft{FullName: "Alice", Size: tc.size})
		if got := result.Get(FieldSize); got != tc.want {
			t.Fatalf("size %q: want %q, got %q", tc.size, tc.want, got)
		}
	}
}

func TestValidate_ShortNameScenario(t *testing.T) {
	result := Validate(Draft{FullName: "Al", Size: SizeMedium})

	want := ValidationResult{FieldFullName: MsgFullNameTooShort}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("validation result mismatch (-want +got):\n%s", diff)
	}
	if result.Valid() {
		t.Fatalf("expected draft to be invalid")
	}
}

func TestValidate_ValidDraftIsEmpty(t *testing.T) {
	result := Validate(Draft{FullName: "Alice Smith", Size: SizeSmall, Toppings: []string{"1", "3"}})
	if !result.Valid() {
		t.Fatalf("expected valid draft, got %v", result)
	}
	if result == nil {
		t.Fatalf("expected non-nil result")
	}
	if result.Messages() != nil {
		t.Fatalf("expected nil messages for valid result")
	}
}

func TestValidationResult_FieldsSorted(t *testing.T) {
	result := Validate(Draft{})
	if diff := cmp.Diff([]string{FieldFullName, FieldSize}, result.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	messages := result.Messages()
	if messages[FieldSize][0] != MsgSizeRequired {
		t.Fatalf("unexpected size messages: %v", messages[FieldSize])
	}
}
