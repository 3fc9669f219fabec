// Package template defines the renderer-agnostic template contract. The
// gotemplate subpackage provides the pongo2 implementation.
package template
