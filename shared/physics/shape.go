package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape é uma forma primitiva de colisão no espaço local.
type Shape interface {
	// HalfExtents retorna a meia caixa que envolve a forma sem rotação.
	HalfExtents() mgl32.Vec3
	Kind() string
}

// Box é uma caixa alinhada aos eixos locais.
type Box struct {
	Half mgl32.Vec3
}

func (b Box) HalfExtents() mgl32.Vec3 { return b.Half }
func (b Box) Kind() string            { return "box" }

// Cylinder é um cilindro ao longo do eixo Y local.
type Cylinder struct {
	HalfHeight float32
	Radius     float32
}

func (c Cylinder) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{c.Radius, c.HalfHeight, c.Radius}
}
func (c Cylinder) Kind() string { return "cylinder" }

// AABB é uma caixa alinhada aos eixos do mundo.
type AABB struct {
	Min, Max mgl32.Vec3
}

// EmptyAABB retorna uma caixa invertida, neutra para Union.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty indica se a caixa não contém nenhum ponto.
func (a AABB) IsEmpty() bool {
	return a.Min.X() > a.Max.X() || a.Min.Y() > a.Max.Y() || a.Min.Z() > a.Max.Z()
}

// Union retorna a menor caixa que contém as duas.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: mgl32.Vec3{min(a.Min.X(), b.Min.X()), min(a.Min.Y(), b.Min.Y()), min(a.Min.Z(), b.Min.Z())},
		Max: mgl32.Vec3{max(a.Max.X(), b.Max.X()), max(a.Max.Y(), b.Max.Y()), max(a.Max.Z(), b.Max.Z())},
	}
}

// Intersects verifica sobreposição entre duas caixas (bordas inclusivas).
func (a AABB) Intersects(b AABB) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Center retorna o centro da caixa.
func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size retorna as dimensões da caixa.
func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// shapeAABB envolve a forma transformada pelos 8 cantos da sua meia caixa.
func shapeAABB(s Shape, t Transform) AABB {
	h := s.HalfExtents()
	out := EmptyAABB()
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				p := t.Apply(mgl32.Vec3{sx * h.X(), sy * h.Y(), sz * h.Z()})
				out = out.Union(AABB{Min: p, Max: p})
			}
		}
	}
	return out
}
