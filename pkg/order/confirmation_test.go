package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestConfirmation_MessagePluralisesToppings(t *testing.T) {
	catalog := DefaultCatalog()
	cases := []struct {
		name  string
		draft Draft
		want  string
	}{
		{
			name:  "two toppings",
			draft: Draft{FullName: "Alice Smith", Size: SizeSmall, Toppings: []string{"1", "3"}},
			want:  "Thank you for your order, Alice Smith! Your small pizza with 2 toppings is on the way.",
		},
		{
			name:  "single topping",
			draft: Draft{FullName: "Carol", Size: SizeMedium, Toppings: []string{"5"}},
			want:  "Thank you for your order, Carol! Your medium pizza with 1 topping is on the way.",
		},
		{
			name:  "no toppings",
			draft: Draft{FullName: "Bob", Size: SizeLarge},
			want:  "Thank you for your order, Bob! Your large pizza with no toppings is on the way.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewConfirmation(tc.draft, catalog, Receipt{}).Message()
			if got != tc.want {
				t.Fatalf("message mismatch\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestConfirmation_ResolvesToppingNames(t *testing.T) {
	c := NewConfirmation(Draft{FullName: " Dee ", Size: SizeSmall, Toppings: []string{"3", "1"}}, DefaultCatalog(), Receipt{ID: "abc"})
	if strings.Join(c.Toppings, ",") != "Pineapple,Pepperoni" {
		t.Fatalf("unexpected topping names: %v", c.Toppings)
	}
	if c.FullName != "Dee" {
		t.Fatalf("expected trimmed name, got %q", c.FullName)
	}
	if c.Receipt.ID != "abc" {
		t.Fatalf("receipt not kept")
	}
}

func TestSize_Labels(t *testing.T) {
	want := map[Size]string{SizeSmall: "small", SizeMedium: "medium", SizeLarge: "large", "X": ""}
	for size, label := range want {
		if got := size.Label(); got != label {
			t.Fatalf("size %q label: want %q, got %q", size, label, got)
		}
	}
	if SizeLarge.Title() != "Large" {
		t.Fatalf("unexpected title %q", SizeLarge.Title())
	}
}

func TestCatalog_LookupAndUnknown(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 5 {
		t.Fatalf("expected 5 toppings, got %d", len(catalog))
	}
	if topping, ok := catalog.Lookup("2"); !ok || topping.Text != "Green Peppers" {
		t.Fatalf("lookup 2: %+v %v", topping, ok)
	}
	unknown := catalog.Unknown([]string{"1", "9", "x"})
	if strings.Join(unknown, ",") != "9,x" {
		t.Fatalf("unexpected unknown ids: %v", unknown)
	}
}

func TestErrors_MatchSentinels(t *testing.T) {
	verr := &ValidationError{Result: Validate(Draft{})}
	if !errors.Is(verr, ErrInvalidDraft) {
		t.Fatalf("validation error should match ErrInvalidDraft")
	}
	if !strings.Contains(verr.Error(), "full_name: "+MsgFullNameRequired) {
		t.Fatalf("unexpected validation error text: %s", verr.Error())
	}

	cause := errors.New("connection refused")
	serr := fmt.Errorf("wrap: %w", &SubmissionError{Err: cause})
	if !errors.Is(serr, ErrSubmission) {
		t.Fatalf("submission error should match ErrSubmission")
	}
	if !errors.Is(serr, cause) {
		t.Fatalf("submission error should unwrap to cause")
	}
	var target *SubmissionError
	if !errors.As(serr, &target) {
		t.Fatalf("errors.As failed")
	}
}

func TestReceipt_JSONKeepsCreatedAt(t *testing.T) {
	tests := []struct {
		name    string
		receipt Receipt
		want    string
	}{
		{name: "zero", receipt: Receipt{}, want: `{"created_at":"0001-01-01T00:00:00Z"}`},
		{
			name:    "placed",
			receipt: Receipt{ID: "abc", Message: "ok", CreatedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)},
			want:    `{"id":"abc","message":"ok","created_at":"2026-10-18T12:00:00Z"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := json.Marshal(tt.receipt)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(payload) != tt.want {
				t.Fatalf("payload = %s, want %s", payload, tt.want)
			}
		})
	}
}
