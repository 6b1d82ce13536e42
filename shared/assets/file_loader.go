package assets

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"sync"

	"Solstice/shared/meshing"

	"github.com/alitto/pond/v2"
)

type entry struct {
	state LoadState
	mesh  *meshing.Mesh
	err   error
}

// FileLoader decodifica modelos OBJ de um fs.FS em segundo plano.
type FileLoader struct {
	fsys fs.FS
	pool pond.Pool

	mu      sync.RWMutex
	entries map[string]*entry

	pending   sync.WaitGroup
	closeOnce sync.Once
}

// NewFileLoader cria um loader com workers goroutines de decodificação.
func NewFileLoader(fsys fs.FS, workers int) *FileLoader {
	if workers < 1 {
		workers = 1
	}
	return &FileLoader{
		fsys:    fsys,
		pool:    pond.NewPool(workers),
		entries: make(map[string]*entry),
	}
}

// Request agenda o carregamento de p. Pedidos repetidos são ignorados.
func (l *FileLoader) Request(p string) {
	l.mu.Lock()
	if _, ok := l.entries[p]; ok {
		l.mu.Unlock()
		return
	}
	l.entries[p] = &entry{state: Loading}
	l.mu.Unlock()

	l.pending.Add(1)
	l.pool.Submit(func() {
		defer l.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] Worker de assets falhou em %s: %v", p, r)
				l.finish(p, nil, fmt.Errorf("panic ao decodificar %s: %v", p, r))
			}
		}()
		mesh, err := l.decode(p)
		l.finish(p, mesh, err)
	})
}

func (l *FileLoader) decode(p string) (*meshing.Mesh, error) {
	f, err := l.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir %s: %w", p, err)
	}
	defer f.Close()

	dir := path.Dir(p)
	resolve := func(name string) (io.ReadCloser, error) {
		return l.fsys.Open(path.Join(dir, name))
	}
	mesh, err := DecodeOBJ(f, resolve)
	if err != nil {
		return nil, fmt.Errorf("falha ao decodificar %s: %w", p, err)
	}
	mesh.Name = ModelName(p)
	return mesh, nil
}

func (l *FileLoader) finish(p string, mesh *meshing.Mesh, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entries[p]
	if err != nil {
		log.Printf("[Assets] Erro: %v", err)
		e.state, e.err = Failed, err
		return
	}
	e.state, e.mesh = Loaded, mesh
	log.Printf("[Assets] %s carregado (%d primitivas, %d vértices)", p, len(mesh.Primitives), mesh.VertexCount())
}

// State retorna o estado atual de p; caminhos nunca pedidos são NotLoaded.
func (l *FileLoader) State(p string) LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e, ok := l.entries[p]; ok {
		return e.state
	}
	return NotLoaded
}

// Err retorna o erro de um carregamento Failed.
func (l *FileLoader) Err(p string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e, ok := l.entries[p]; ok {
		return e.err
	}
	return nil
}

// Mesh retorna a malha de um asset Loaded.
func (l *FileLoader) Mesh(p string) (*meshing.Mesh, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[p]
	if !ok || e.state != Loaded {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, p)
	}
	return e.mesh, nil
}

// Wait bloqueia até que todos os pedidos feitos até agora terminem.
func (l *FileLoader) Wait() {
	l.pending.Wait()
}

// Close encerra o pool de decodificação. Request não pode ser chamado depois.
func (l *FileLoader) Close() {
	l.closeOnce.Do(l.pool.StopAndWait)
}
