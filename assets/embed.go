package assets

import (
	"embed"
	"io/fs"
)

//go:embed catalog.txt sql/*.sql
var FS embed.FS

// Catalog returns the embedded default vocabulary list as raw text.
func Catalog() (string, error) {
	b, err := FS.ReadFile("catalog.txt")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Migrations returns the embedded SQL migrations rooted at sql/.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// sql/ is part of the embed directive; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
