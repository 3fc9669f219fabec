// Package uischema loads the copy that surrounds the order form: page titles,
// field labels and placeholders, navigation links and the home page icon.
// Documents may be JSON or YAML; icon markup is sanitised before it reaches a
// template.
package uischema
