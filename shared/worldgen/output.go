package worldgen

import (
	"fmt"
	"log"
	"time"

	"Solstice/shared/blocks"
	"Solstice/shared/meshing"
	"Solstice/shared/palette"
	"Solstice/shared/physics"
	"Solstice/shared/util"
)

// SlabCollider é o colisor composto de uma fatia não vazia.
type SlabCollider struct {
	Slab      int
	Transform physics.Transform
	Collider  *physics.Compound
	Groups    physics.Groups
}

// Stats resume uma geração.
type Stats struct {
	Seed           uint32
	Blocks         [blocks.Count]int
	Vertices       int
	Triangles      int
	Slabs          int
	NonEmptySlabs  int
	Colliders      int
	ColliderShapes int
	PaletteSize    int
	Elapsed        time.Duration
	GridDigest     string
}

// TotalBlocks soma os blocos de todos os tipos.
func (s Stats) TotalBlocks() int {
	n := 0
	for _, c := range s.Blocks {
		n += c
	}
	return n
}

func (s Stats) String() string {
	return fmt.Sprintf("seed=%d blocos=%d vértices=%d triângulos=%d fatias=%d/%d colisores=%d formas=%d materiais=%d tempo=%v",
		s.Seed, s.TotalBlocks(), s.Vertices, s.Triangles, s.NonEmptySlabs, s.Slabs,
		s.Colliders, s.ColliderShapes, s.PaletteSize, s.Elapsed.Round(time.Millisecond))
}

// Output é o resultado imutável da geração: uma malha, um material e os
// colisores estáticos por fatia.
type Output struct {
	Mesh      meshing.GeometryData
	Material  palette.RenderMaterial
	Materials []palette.FlatMaterial
	Colliders []SlabCollider
	Axis      util.Axis
	CellSize  float32
	Stats     Stats
}

// Register entrega os colisores ao mundo físico.
func (o *Output) Register(world *physics.StaticWorld) error {
	for _, c := range o.Colliders {
		if _, err := world.Register(c.Transform, c.Collider, c.Groups); err != nil {
			return fmt.Errorf("falha ao registrar colisor da fatia %d: %w", c.Slab, err)
		}
	}
	log.Printf("[Fisica] %d colisores de terreno registrados", len(o.Colliders))
	return nil
}
