package assets

import (
	"errors"
	"path"
	"strings"

	"Solstice/shared/meshing"
)

// LoadState é o estado de carregamento de um asset.
type LoadState uint8

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "NotLoaded"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ErrNotLoaded é retornado ao pedir a malha de um asset que não está Loaded.
var ErrNotLoaded = errors.New("asset não carregado")

// Loader é o colaborador de carregamento de assets consultado pelo pipeline.
// Request inicia o carregamento e não bloqueia; State é consultado a cada tick.
type Loader interface {
	Request(path string)
	State(path string) LoadState
	Mesh(path string) (*meshing.Mesh, error)
}

// ModelName deriva o nome de um bloco a partir do caminho do arquivo:
// "models/solid.obj" -> "solid".
func ModelName(p string) string {
	base := path.Base(p)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}
