package order

import (
	"fmt"
	"strings"
	"time"
)

// Receipt is the decoded response of a successful order submission. Only its
// presence is meaningful to the form; the fields are kept for display and logs.
type Receipt struct {
	ID        string    `json:"id,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Placed is an accepted order as stored by the order endpoint.
type Placed struct {
	ID        string    `json:"id"`
	Draft     Draft     `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// Confirmation is what the customer sees after a successful submission.
type Confirmation struct {
	FullName string   `json:"full_name"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
	Receipt  Receipt  `json:"receipt"`
}

// NewConfirmation resolves topping ids to display names using catalog.
func NewConfirmation(d Draft, catalog Catalog, receipt Receipt) Confirmation {
	return Confirmation{
		FullName: strings.TrimSpace(d.FullName),
		Size:     d.Size,
		Toppings: catalog.Names(d.Toppings),
		Receipt:  receipt,
	}
}

// Message renders the thank-you sentence, pluralising the topping count.
func (c Confirmation) Message() string {
	return fmt.Sprintf("Thank you for your order, %s! Your %s pizza %s is on the way.",
		c.FullName, c.Size.Label(), ToppingSummary(len(c.Toppings)))
}

// ToppingSummary returns "with no toppings", "with 1 topping" or
// "with N toppings".
func ToppingSummary(count int) string {
	switch {
	case count <= 0:
		return "with no toppings"
	case count == 1:
		return "with 1 topping"
	default:
		return fmt.Sprintf("with %d toppings", count)
	}
}
