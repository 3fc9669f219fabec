package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "pizzaform-form"
	ClassField    ChromeClass = "input-group"
	ClassFieldset ChromeClass = "pizzaform-toppings"
	ClassActions  ChromeClass = "pizzaform-actions"
	ClassErrors   ChromeClass = "pizzaform-errors"
	ClassError    ChromeClass = "error"
	ClassNav      ChromeClass = "pizzaform-nav"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":     string(ClassForm),
		"field":    string(ClassField),
		"fieldset": string(ClassFieldset),
		"actions":  string(ClassActions),
		"errors":   string(ClassErrors),
		"error":    string(ClassError),
		"nav":      string(ClassNav),
	}
}
