package blocks

import (
	"errors"
	"fmt"
	"log"

	"Solstice/shared/assets"
	"Solstice/shared/meshing"
	"Solstice/shared/physics"
)

var (
	// ErrAssetNotLoaded indica um modelo que ainda não está Loaded.
	ErrAssetNotLoaded = errors.New("modelo do bloco não carregado")
	// ErrMissingBlock indica um tipo de bloco sem modelo no manifesto.
	ErrMissingBlock = errors.New("tipo de bloco sem modelo")
)

// Prototype é o modelo imutável de um tipo de bloco: malha e colisor local.
type Prototype struct {
	Type     BlockType
	Name     string
	Path     string
	Mesh     *meshing.Mesh
	collider *physics.Builder
}

// Collider retorna uma cópia do colisor local.
func (p *Prototype) Collider() *physics.Builder {
	return p.collider.Clone()
}

// ColliderShapes retorna o número de formas do colisor.
func (p *Prototype) ColliderShapes() int {
	return p.collider.Len()
}

// Catalog guarda um protótipo por tipo de bloco, indexado pelo tipo.
type Catalog struct {
	cellSize   float32
	prototypes [Count]*Prototype
}

// NewCatalog cria um catálogo vazio.
func NewCatalog(cellSize float32) *Catalog {
	return &Catalog{cellSize: cellSize}
}

// CellSize retorna o lado da célula usado nos colisores.
func (c *Catalog) CellSize() float32 {
	return c.cellSize
}

// Add registra o protótipo de bt com a malha carregada de path.
func (c *Catalog) Add(bt BlockType, path string, mesh *meshing.Mesh) error {
	if !bt.Valid() {
		return fmt.Errorf("tipo de bloco inválido: %v", bt)
	}
	if mesh == nil || len(mesh.Primitives) == 0 {
		return fmt.Errorf("malha vazia para %v (%s)", bt, path)
	}
	c.prototypes[bt] = &Prototype{
		Type:     bt,
		Name:     assets.ModelName(path),
		Path:     path,
		Mesh:     mesh,
		collider: ColliderTemplate(bt, c.cellSize),
	}
	log.Printf("[Blocos] %s registrado como %v", c.prototypes[bt].Name, bt)
	return nil
}

// Get retorna o protótipo de bt.
func (c *Catalog) Get(bt BlockType) (*Prototype, bool) {
	if !bt.Valid() || c.prototypes[bt] == nil {
		return nil, false
	}
	return c.prototypes[bt], true
}

// MustGet retorna o protótipo de bt e entra em panic se ele não existir.
func (c *Catalog) MustGet(bt BlockType) *Prototype {
	p, ok := c.Get(bt)
	if !ok {
		panic(fmt.Sprintf("protótipo ausente para %v", bt))
	}
	return p
}

// Complete verifica se todos os tipos possuem protótipo.
func (c *Catalog) Complete() error {
	for _, bt := range All() {
		if c.prototypes[bt] == nil {
			return fmt.Errorf("%w: %v", ErrMissingBlock, bt)
		}
	}
	return nil
}

// Paths mapeia cada tipo de bloco ao caminho do manifesto.
func Paths(m *assets.Manifest) ([Count]string, error) {
	var out [Count]string
	for name, p := range m.Models {
		bt, err := Parse(name)
		if err != nil {
			return out, fmt.Errorf("falha ao ler manifesto: %w", err)
		}
		out[bt] = p
	}
	for _, bt := range All() {
		if out[bt] == "" {
			return out, fmt.Errorf("%w: %v", ErrMissingBlock, bt)
		}
	}
	return out, nil
}

// FromLoader monta o catálogo a partir de modelos já carregados.
// Qualquer caminho fora do estado Loaded é erro.
func FromLoader(loader assets.Loader, paths [Count]string, cellSize float32) (*Catalog, error) {
	c := NewCatalog(cellSize)
	for _, bt := range All() {
		p := paths[bt]
		if s := loader.State(p); s != assets.Loaded {
			return nil, fmt.Errorf("%w: %s está %v", ErrAssetNotLoaded, p, s)
		}
		mesh, err := loader.Mesh(p)
		if err != nil {
			return nil, fmt.Errorf("falha ao obter malha de %v: %w", bt, err)
		}
		if err := c.Add(bt, p, mesh); err != nil {
			return nil, err
		}
	}
	return c, nil
}
