package render

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"Solstice/shared/assets"
	"Solstice/shared/meshing"
	"Solstice/shared/palette"
	"Solstice/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type loadedModel struct {
	state assets.LoadState
	mesh  *meshing.Mesh
	err   error
}

// RaylibLoader carrega modelos de um diretório com o importador do raylib.
// Os pedidos ficam numa fila e são processados na thread principal por Process.
type RaylibLoader struct {
	Dir string

	queue *util.UniqueQueue[string]

	mu     sync.RWMutex
	models map[string]*loadedModel
}

// NewRaylibLoader cria um loader que resolve caminhos relativos a dir.
func NewRaylibLoader(dir string) *RaylibLoader {
	return &RaylibLoader{
		Dir:    dir,
		queue:  util.NewUniqueQueue[string](),
		models: make(map[string]*loadedModel),
	}
}

// Request enfileira o caminho para carregamento.
func (l *RaylibLoader) Request(path string) {
	l.mu.Lock()
	if _, ok := l.models[path]; ok {
		l.mu.Unlock()
		return
	}
	l.models[path] = &loadedModel{state: assets.Loading}
	l.mu.Unlock()
	l.queue.Push(path)
}

// State retorna o estado de carregamento de path.
func (l *RaylibLoader) State(path string) assets.LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if m, ok := l.models[path]; ok {
		return m.state
	}
	return assets.NotLoaded
}

// Err retorna o erro de um carregamento que falhou.
func (l *RaylibLoader) Err(path string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if m, ok := l.models[path]; ok {
		return m.err
	}
	return nil
}

// Mesh retorna a malha convertida de path.
func (l *RaylibLoader) Mesh(path string) (*meshing.Mesh, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.models[path]
	if !ok || m.state != assets.Loaded {
		return nil, fmt.Errorf("%w: %s", assets.ErrNotLoaded, path)
	}
	return m.mesh, nil
}

// Process carrega até n modelos pendentes. Precisa rodar na thread da janela.
func (l *RaylibLoader) Process(n int) {
	for i := 0; i < n; i++ {
		path, ok := l.queue.Pop()
		if !ok {
			return
		}
		mesh, err := l.load(path)

		l.mu.Lock()
		m := l.models[path]
		if err != nil {
			m.state = assets.Failed
			m.err = err
			log.Printf("[RaylibLoader] Falha ao carregar %s: %v", path, err)
		} else {
			m.state = assets.Loaded
			m.mesh = mesh
			log.Printf("[RaylibLoader] Modelo carregado: %s (%d primitivas)", path, len(mesh.Primitives))
		}
		l.mu.Unlock()
	}
}

func (l *RaylibLoader) load(path string) (*meshing.Mesh, error) {
	full := filepath.Join(l.Dir, filepath.FromSlash(path))
	if _, err := os.Stat(full); err != nil {
		return nil, fmt.Errorf("falha ao abrir modelo: %w", err)
	}

	model := rl.LoadModel(full)
	defer rl.UnloadModel(model)
	if model.MeshCount == 0 {
		return nil, fmt.Errorf("falha ao carregar modelo %s: nenhuma malha", full)
	}

	meshes := unsafe.Slice(model.Meshes, model.MeshCount)
	materials := unsafe.Slice(model.Materials, model.MaterialCount)
	meshMaterial := unsafe.Slice(model.MeshMaterial, model.MeshCount)

	out := &meshing.Mesh{Name: assets.ModelName(path)}
	for i := range meshes {
		mat := palette.DefaultFlatMaterial()
		if idx := int(meshMaterial[i]); idx >= 0 && idx < len(materials) && materials[idx].Maps != nil {
			c := materials[idx].Maps.Color
			mat = mat.WithBaseColor(palette.FromRGB8(c.R, c.G, c.B))
		}
		out.Primitives = append(out.Primitives, meshing.Primitive{
			Geometry: meshToGeometry(meshes[i]),
			Material: mat,
		})
	}
	return out, nil
}

// meshToGeometry copia os buffers de uma malha do raylib. Sem índices, gera a
// sequência 0..n-1.
func meshToGeometry(m rl.Mesh) meshing.GeometryData {
	n := int(m.VertexCount)
	var g meshing.GeometryData
	if n == 0 || m.Vertices == nil {
		return g
	}
	g.Vertices = append([]float32(nil), unsafe.Slice(m.Vertices, n*3)...)
	if m.Normals != nil {
		g.Normals = append([]float32(nil), unsafe.Slice(m.Normals, n*3)...)
	} else {
		g.Normals = make([]float32, n*3)
	}
	if m.Texcoords != nil {
		g.UVs = append([]float32(nil), unsafe.Slice(m.Texcoords, n*2)...)
	} else {
		g.UVs = make([]float32, n*2)
	}

	if m.Indices != nil {
		src := unsafe.Slice(m.Indices, int(m.TriangleCount)*3)
		g.Indices = make([]uint32, len(src))
		for i, v := range src {
			g.Indices[i] = uint32(v)
		}
	} else {
		g.Indices = make([]uint32, n)
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}
	return g
}
