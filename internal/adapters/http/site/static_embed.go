package site

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// docsRoot is the prefix of the embedded predictor guide.
const docsRoot = "static"

// Pages returns the predictor guide rooted at its index page, so
// "index.html" and "pages/features.html" resolve directly.
func Pages() fs.FS {
	sub, err := fs.Sub(staticFS, docsRoot)
	if err != nil {
		return staticFS
	}
	return sub
}
