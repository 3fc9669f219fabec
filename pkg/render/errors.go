package render

import (
	"strings"
)

// ErrorMapping is an error payload split into per-field and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors joins form-level messages, trimming blanks and dropping
// repeats. The first occurrence keeps its position.
func MergeFormErrors(existing []string, extras ...string) []string {
	return uniqueMessages(append(append([]string(nil), existing...), extras...))
}

// MapErrorPayload assigns each payload entry to one of fields by the first
// segment of its key. Keys may be bare names ("size"), JSON pointers from
// contract validation ("/toppings/1") or dotted paths ("toppings.1"). Any
// other key, including "", is reported at form level.
func MapErrorPayload(fields []string, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	known := make(map[string]bool, len(fields))
	for _, field := range fields {
		known[strings.TrimSpace(field)] = true
	}

	for key, messages := range payload {
		messages = uniqueMessages(messages)
		if len(messages) == 0 {
			continue
		}
		field := fieldOf(key)
		if !known[field] || field == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[field] = uniqueMessages(append(mapping.Fields[field], messages...))
	}
	mapping.Form = uniqueMessages(mapping.Form)
	return mapping
}

// fieldOf returns the leading segment of an error key.
func fieldOf(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "#/")
	if i := strings.IndexAny(key, "/.["); i >= 0 {
		key = key[:i]
	}
	return key
}

func uniqueMessages(messages []string) []string {
	var out []string
	seen := make(map[string]bool, len(messages))
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}
