package order

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Field names used as ValidationResult keys and on the wire.
const (
	FieldFullName = "full_name"
	FieldSize     = "size"
	FieldToppings = "toppings"
)

// Validation messages shown inline next to each field.
const (
	MsgFullNameTooShort = "Full name must be at least 3 characters"
	MsgFullNameTooLong  = "Full name must be at most 20 characters"
	MsgFullNameRequired = "Full name is required"
	MsgSizeIncorrect    = "Size must be S, M, or L"
	MsgSizeRequired     = "Size is required"
)

const (
	FullNameMinLength = 3
	FullNameMaxLength = 20
)

// ValidationResult maps a field name to its error message. An empty result
// means the draft is valid.
type ValidationResult map[string]string

// Valid reports whether no field carries an error.
func (r ValidationResult) Valid() bool {
	return len(r) == 0
}

// Get returns the message for field or an empty string.
func (r ValidationResult) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

// Fields returns the failing field names sorted for deterministic output.
func (r ValidationResult) Fields() []string {
	if len(r) == 0 {
		return nil
	}
	out := make([]string, 0, len(r))
	for field := range r {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Messages converts the result into the map[string][]string shape used by
// render options and API error payloads.
func (r ValidationResult) Messages() map[string][]string {
	if len(r) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r))
	for field, msg := range r {
		out[field] = []string{msg}
	}
	return out
}

// Validate checks the draft against the order schema. It never returns nil so
// callers can index the result directly.
func Validate(d Draft) ValidationResult {
	result := ValidationResult{}
	if msg := validateFullName(d.FullName); msg != "" {
		result[FieldFullName] = msg
	}
	if msg := validateSize(d.Size); msg != "" {
		result[FieldSize] = msg
	}
	return result
}

// ValidateFullName exposes the single-field rule for prompt validators.
func ValidateFullName(name string) string {
	return validateFullName(name)
}

func validateFullName(name string) string {
	trimmed := strings.TrimSpace(name)
	length := utf8.RuneCountInString(trimmed)
	switch {
	case length == 0:
		return MsgFullNameRequired
	case length < FullNameMinLength:
		return MsgFullNameTooShort
	case length > FullNameMaxLength:
		return MsgFullNameTooLong
	default:
		return ""
	}
}

func validateSize(size Size) string {
	switch {
	case size == "":
		return MsgSizeRequired
	case !size.Valid():
		return MsgSizeIncorrect
	default:
		return ""
	}
}
