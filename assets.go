package pizzaform

import (
	"io/fs"

	"github.com/goliatone/go-pizzaform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and live validation script.
//
// Typical mount:
//
//	mux.Handle("GET /assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(pizzaform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
