package order

import "strings"

// Size is the pizza size code. The zero value means "not chosen".
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// Sizes lists the accepted size codes in display order.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge}
}

// Valid reports whether s is one of S, M or L.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// Label returns the lowercase label used in confirmation messages
// (small, medium, large). Unknown sizes yield an empty string.
func (s Size) Label() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return ""
	}
}

// Title returns the capitalised label used for select options.
func (s Size) Title() string {
	label := s.Label()
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
