package meshing

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidGeometry indica buffers com tamanhos ou índices inconsistentes.
var ErrInvalidGeometry = errors.New("geometria inválida")

// GeometryData contém os buffers de vértices de uma malha, no layout que o
// renderizador envia para a GPU: 3 floats de posição, 3 de normal e 2 de UV
// por vértice, índices de triângulos em uint32.
type GeometryData struct {
	Vertices []float32
	Normals  []float32
	UVs      []float32
	Indices  []uint32
}

// VertexCount retorna o número de vértices.
func (g *GeometryData) VertexCount() int {
	return len(g.Vertices) / 3
}

// TriangleCount retorna o número de triângulos.
func (g *GeometryData) TriangleCount() int {
	return len(g.Indices) / 3
}

// IsEmpty indica se não há vértices.
func (g *GeometryData) IsEmpty() bool {
	return len(g.Vertices) == 0
}

// Clone cria uma cópia profunda dos buffers.
func (g GeometryData) Clone() GeometryData {
	clone := GeometryData{}
	if len(g.Vertices) > 0 {
		clone.Vertices = make([]float32, len(g.Vertices))
		copy(clone.Vertices, g.Vertices)
	}
	if len(g.Normals) > 0 {
		clone.Normals = make([]float32, len(g.Normals))
		copy(clone.Normals, g.Normals)
	}
	if len(g.UVs) > 0 {
		clone.UVs = make([]float32, len(g.UVs))
		copy(clone.UVs, g.UVs)
	}
	if len(g.Indices) > 0 {
		clone.Indices = make([]uint32, len(g.Indices))
		copy(clone.Indices, g.Indices)
	}
	return clone
}

// Validate verifica os invariantes dos buffers.
func (g *GeometryData) Validate() error {
	if len(g.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d floats de posição não formam vértices", ErrInvalidGeometry, len(g.Vertices))
	}
	n := g.VertexCount()
	if len(g.Normals) != n*3 {
		return fmt.Errorf("%w: %d normais para %d vértices", ErrInvalidGeometry, len(g.Normals)/3, n)
	}
	if len(g.UVs) != n*2 {
		return fmt.Errorf("%w: %d UVs para %d vértices", ErrInvalidGeometry, len(g.UVs)/2, n)
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d índices não formam triângulos", ErrInvalidGeometry, len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: índice %d = %d >= %d vértices", ErrInvalidGeometry, i, idx, n)
		}
	}
	return nil
}

// Translate desloca todas as posições.
func (g *GeometryData) Translate(offset mgl32.Vec3) {
	for i := 0; i+2 < len(g.Vertices); i += 3 {
		g.Vertices[i] += offset[0]
		g.Vertices[i+1] += offset[1]
		g.Vertices[i+2] += offset[2]
	}
}

// AppendWithIndices concatena other, deslocando seus índices pelo número de
// vértices já presentes. Normais ou UVs ausentes em other são preenchidos
// com zero para manter os buffers alinhados.
func (g *GeometryData) AppendWithIndices(other *GeometryData) {
	base := uint32(g.VertexCount())
	n := other.VertexCount()

	g.Vertices = append(g.Vertices, other.Vertices...)
	g.Normals = appendPadded(g.Normals, other.Normals, n*3)
	g.UVs = appendPadded(g.UVs, other.UVs, n*2)

	for _, idx := range other.Indices {
		g.Indices = append(g.Indices, idx+base)
	}
}

func appendPadded(dst, src []float32, want int) []float32 {
	if len(src) == want {
		return append(dst, src...)
	}
	start := len(dst)
	dst = append(dst, make([]float32, want)...)
	copy(dst[start:], src)
	return dst
}

// SetAllUV atribui a mesma coordenada de textura a todos os vértices.
func (g *GeometryData) SetAllUV(uv mgl32.Vec2) {
	g.SetUVRange(0, g.VertexCount(), uv)
}

// SetUVRange atribui uv aos vértices [first, first+count).
func (g *GeometryData) SetUVRange(first, count int, uv mgl32.Vec2) {
	if want := g.VertexCount() * 2; len(g.UVs) < want {
		g.UVs = append(g.UVs, make([]float32, want-len(g.UVs))...)
	}
	end := min(first+count, g.VertexCount())
	for i := max(first, 0); i < end; i++ {
		g.UVs[i*2] = uv[0]
		g.UVs[i*2+1] = uv[1]
	}
}

// Flatten expande os índices: cada triângulo ganha três vértices próprios
// e a geometria resultante não usa índices.
func (g *GeometryData) Flatten() GeometryData {
	n := len(g.Indices)
	out := GeometryData{
		Vertices: make([]float32, 0, n*3),
		Normals:  make([]float32, 0, n*3),
		UVs:      make([]float32, 0, n*2),
	}
	for _, idx := range g.Indices {
		i := int(idx)
		out.Vertices = append(out.Vertices, g.Vertices[i*3:i*3+3]...)
		if len(g.Normals) >= i*3+3 {
			out.Normals = append(out.Normals, g.Normals[i*3:i*3+3]...)
		} else {
			out.Normals = append(out.Normals, 0, 0, 0)
		}
		if len(g.UVs) >= i*2+2 {
			out.UVs = append(out.UVs, g.UVs[i*2:i*2+2]...)
		} else {
			out.UVs = append(out.UVs, 0, 0)
		}
	}
	return out
}
