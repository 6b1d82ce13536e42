package palette

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrPaletteTooWide indica um atlas mais estreito que o número de materiais.
var ErrPaletteTooWide = errors.New("largura do atlas menor que o número de materiais")

// Palette é uma lista ordenada de materiais distintos.
// A busca é linear: o número de materiais distintos por mundo é pequeno.
type Palette struct {
	materials []FlatMaterial
}

// New cria uma paleta vazia.
func New() *Palette {
	return &Palette{}
}

// Push adiciona o material se ele ainda não estiver presente e retorna seu índice.
func (p *Palette) Push(m FlatMaterial) int {
	if i, ok := p.Find(m); ok {
		return i
	}
	p.materials = append(p.materials, m)
	return len(p.materials) - 1
}

// Find retorna o índice de um material estruturalmente igual.
func (p *Palette) Find(m FlatMaterial) (int, bool) {
	for i, existing := range p.materials {
		if existing == m {
			return i, true
		}
	}
	return -1, false
}

// Contains verifica se o material já está na paleta.
func (p *Palette) Contains(m FlatMaterial) bool {
	_, ok := p.Find(m)
	return ok
}

// Len retorna o número de materiais.
func (p *Palette) Len() int {
	return len(p.materials)
}

// Materials retorna uma cópia da lista de materiais.
func (p *Palette) Materials() []FlatMaterial {
	out := make([]FlatMaterial, len(p.materials))
	copy(out, p.materials)
	return out
}

// Atlas contém as três imagens Nx1 compiladas a partir da paleta.
type Atlas struct {
	BaseColor         *image.NRGBA
	Emissive          *image.NRGBA
	MetallicRoughness *image.NRGBA
}

// Compile gera um atlas com um texel por material.
func (p *Palette) Compile() *Atlas {
	atlas, _ := p.CompileWidth(len(p.materials))
	return atlas
}

// CompileWidth gera um atlas de largura fixa, completando com DefaultFlatMaterial.
func (p *Palette) CompileWidth(width int) (*Atlas, error) {
	if width < len(p.materials) {
		return nil, fmt.Errorf("%w: largura %d, materiais %d", ErrPaletteTooWide, width, len(p.materials))
	}

	materials := p.Materials()
	for len(materials) < width {
		materials = append(materials, DefaultFlatMaterial())
	}

	rect := image.Rect(0, 0, width, 1)
	atlas := &Atlas{
		BaseColor:         image.NewNRGBA(rect),
		Emissive:          image.NewNRGBA(rect),
		MetallicRoughness: image.NewNRGBA(rect),
	}
	for i, m := range materials {
		atlas.BaseColor.SetNRGBA(i, 0, m.BaseColor.NRGBA())
		atlas.Emissive.SetNRGBA(i, 0, m.Emissive.NRGBA())
		atlas.MetallicRoughness.SetNRGBA(i, 0, m.metallicRoughness().NRGBA())
	}
	return atlas, nil
}

// Width retorna o número de texels do atlas.
func (a *Atlas) Width() int {
	if a == nil || a.BaseColor == nil {
		return 0
	}
	return a.BaseColor.Rect.Dx()
}

// UVPos retorna o centro do texel do material i.
// Um índice fora do atlas é erro de programação e causa panic.
func (a *Atlas) UVPos(i int) mgl32.Vec2 {
	n := a.Width()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("material %d fora do atlas: a paleta tem %d materiais", i, n))
	}
	return mgl32.Vec2{(float32(i) + 0.5) / float32(n), 0.5}
}

// RenderMaterial é o material único entregue ao renderizador.
// Os fatores brancos/1.0 deixam os texels do atlas passarem sem alteração.
type RenderMaterial struct {
	BaseColor Color
	Emissive  Color
	Metallic  float32
	Roughness float32

	BaseColorTexture         *image.NRGBA
	EmissiveTexture          *image.NRGBA
	MetallicRoughnessTexture *image.NRGBA
}

// IntoRenderMaterial embrulha o atlas em um material texturizado.
func (a *Atlas) IntoRenderMaterial() RenderMaterial {
	return RenderMaterial{
		BaseColor:                White,
		Emissive:                 White,
		Metallic:                 1.0,
		Roughness:                1.0,
		BaseColorTexture:         a.BaseColor,
		EmissiveTexture:          a.Emissive,
		MetallicRoughnessTexture: a.MetallicRoughness,
	}
}
