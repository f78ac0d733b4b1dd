// Package resources embeds the default resource root: maps, sprites, sounds and config.yaml.
package resources

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed maps images sounds
var files embed.FS

//go:embed config.yaml
var DefaultConfig []byte

// Embedded returns the built-in resource root.
func Embedded() fs.FS {
	return files
}

// FS returns dir as a resource root, or the embedded one when dir is empty.
func FS(dir string) fs.FS {
	if dir == "" {
		return files
	}
	return os.DirFS(dir)
}
