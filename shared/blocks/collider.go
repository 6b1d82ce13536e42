package blocks

import (
	"Solstice/shared/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// ColliderTemplate retorna o colisor local de um tipo de bloco para uma
// célula de lado cellSize, centrado na origem.
func ColliderTemplate(bt BlockType, cellSize float32) *physics.Builder {
	h := cellSize / 2
	t := cellSize / 12

	switch bt {
	case Solid:
		return physics.NewBuilder().Push(physics.Box{Half: mgl32.Vec3{h, h, h}}, physics.Identity())
	case Hollow:
		return shell(mgl32.Vec3{h, h, h}, t)
	case SpireSolid:
		return physics.NewBuilder().Push(physics.Box{Half: mgl32.Vec3{h / 2, h, h / 2}}, physics.Identity())
	case SpireHollow:
		return shell(mgl32.Vec3{h / 2, h, h / 2}, t/2)
	case Well:
		b := shell(mgl32.Vec3{h, h, h}, t)
		b.Push(physics.Cylinder{HalfHeight: h - t, Radius: h / 2}, physics.Identity())
		slab := physics.Box{Half: mgl32.Vec3{h, t / 2, h}}
		b.Push(slab, physics.FromTranslation(mgl32.Vec3{0, h - t/2, 0}))
		b.Push(slab, physics.FromTranslation(mgl32.Vec3{0, -h + t/2, 0}))
		return b
	default:
		panic("tipo de bloco inválido: " + bt.String())
	}
}

// shell monta as 12 arestas de uma caixa de meia extensão half com
// espessura 2*t.
func shell(half mgl32.Vec3, t float32) *physics.Builder {
	b := physics.NewBuilder()
	hx, hy, hz := half.X(), half.Y(), half.Z()
	signs := [2]float32{-1, 1}

	// arestas paralelas a X, Y e Z
	for _, s1 := range signs {
		for _, s2 := range signs {
			b.Push(physics.Box{Half: mgl32.Vec3{hx, t, t}},
				physics.FromTranslation(mgl32.Vec3{0, s1 * (hy - t), s2 * (hz - t)}))
			b.Push(physics.Box{Half: mgl32.Vec3{t, hy, t}},
				physics.FromTranslation(mgl32.Vec3{s1 * (hx - t), 0, s2 * (hz - t)}))
			b.Push(physics.Box{Half: mgl32.Vec3{t, t, hz}},
				physics.FromTranslation(mgl32.Vec3{s1 * (hx - t), s2 * (hy - t), 0}))
		}
	}
	return b
}
