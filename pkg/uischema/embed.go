package uischema

import (
	"embed"
	"io/fs"
)

//go:embed ui/schema/*
var embeddedSchema embed.FS

// EmbeddedFS returns the bundled UI schema documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "ui/schema")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the embedded documents.
func Default() (*Store, error) {
	return LoadFS(EmbeddedFS())
}

// MustDefault panics when the embedded documents fail to load.
func MustDefault() *Store {
	store, err := Default()
	if err != nil {
		panic(err)
	}
	return store
}
