package assets

import (
	"embed"
	"io/fs"
)

//go:embed models
var embedded embed.FS

// DefaultManifest é o nome do manifesto dentro de DefaultFS.
const DefaultManifest = "manifest.yaml"

// DefaultFS retorna os modelos padrão embutidos no binário.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "models")
	if err != nil {
		panic(err)
	}
	return sub
}
