package meshing

import (
	"Solstice/shared/palette"

	"github.com/go-gl/mathgl/mgl32"
)

// Primitive é um trecho de malha com um único material.
type Primitive struct {
	Geometry GeometryData
	Material palette.FlatMaterial
}

// Mesh é uma malha composta por primitivas.
type Mesh struct {
	Name       string
	Primitives []Primitive
}

// VertexCount soma os vértices de todas as primitivas.
func (m *Mesh) VertexCount() int {
	n := 0
	for i := range m.Primitives {
		n += m.Primitives[i].Geometry.VertexCount()
	}
	return n
}

// Materials retorna os materiais das primitivas, na ordem.
func (m *Mesh) Materials() []palette.FlatMaterial {
	out := make([]palette.FlatMaterial, len(m.Primitives))
	for i := range m.Primitives {
		out[i] = m.Primitives[i].Material
	}
	return out
}

// Span marca um intervalo contíguo de vértices do buffer combinado que
// pertence a um material.
type Span struct {
	First    int
	Count    int
	Material palette.FlatMaterial
}

// CombineWithMesh adiciona todas as primitivas de mesh deslocadas por offset
// e retorna um span por primitiva.
func (g *GeometryData) CombineWithMesh(mesh *Mesh, offset mgl32.Vec3) []Span {
	spans := make([]Span, 0, len(mesh.Primitives))
	for i := range mesh.Primitives {
		p := &mesh.Primitives[i]
		part := p.Geometry.Clone()
		part.Translate(offset)

		first := g.VertexCount()
		g.AppendWithIndices(&part)
		spans = append(spans, Span{First: first, Count: part.VertexCount(), Material: p.Material})
	}
	return spans
}

// CombinePrimitives funde as primitivas ignorando os materiais.
func CombinePrimitives(mesh *Mesh) GeometryData {
	var out GeometryData
	out.CombineWithMesh(mesh, mgl32.Vec3{})
	return out
}

// CombineMeshWithMaterials funde uma malha em uma geometria única com um
// atlas próprio: cada primitiva recebe o UV do texel do seu material.
func CombineMeshWithMaterials(mesh *Mesh) (GeometryData, palette.RenderMaterial) {
	var out GeometryData
	spans := out.CombineWithMesh(mesh, mgl32.Vec3{})

	pal := palette.New()
	for _, s := range spans {
		pal.Push(s.Material)
	}
	atlas := pal.Compile()
	ApplySpanUVs(&out, spans, pal, atlas)
	return out, atlas.IntoRenderMaterial()
}

// ApplySpanUVs reescreve os UVs de cada span para o centro do texel do seu
// material. Todo material dos spans precisa estar na paleta.
func ApplySpanUVs(g *GeometryData, spans []Span, pal *palette.Palette, atlas *palette.Atlas) {
	for _, s := range spans {
		idx, ok := pal.Find(s.Material)
		if !ok {
			panic("material de span ausente da paleta")
		}
		g.SetUVRange(s.First, s.Count, atlas.UVPos(idx))
	}
}
