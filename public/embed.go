// Package public embeds the static files served under /assets and
// /downloads.
package public

import (
	"embed"
	"io/fs"
)

//go:embed assets downloads
var files embed.FS

// Assets returns the tree served under /assets.
func Assets() fs.FS { return sub("assets") }

// Downloads returns the tree served under /downloads.
func Downloads() fs.FS { return sub("downloads") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
