package worldgen

import (
	"fmt"
	"log"
	"time"

	"Solstice/shared/blocks"
	"Solstice/shared/config"
	"Solstice/shared/meshing"
	"Solstice/shared/palette"
	"Solstice/shared/physics"
	"Solstice/shared/terrain"
	"Solstice/shared/util"
)

// Generate gera a grade e a converte em malha, material e colisores.
func Generate(cfg *config.GeneratorConfig, catalog *blocks.Catalog) (*Output, error) {
	start := time.Now()
	if catalog.CellSize() != cfg.CellSize {
		return nil, fmt.Errorf("catálogo com célula %.3f, configuração com %.3f", catalog.CellSize(), cfg.CellSize)
	}

	params := cfg.TerrainParams()
	log.Printf("[Terreno] Gerando mundo: raio %d, grade %dx%dx%d, seed %d",
		params.Radius, params.Bounds.X, params.Bounds.Y, params.Bounds.Z, params.Seed)

	grid, err := terrain.BuildGrid(params)
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar grade: %w", err)
	}

	out := Assemble(grid, catalog, cfg.Axis(), cfg.CellSize)
	out.Stats.Seed = params.Seed
	out.Stats.Elapsed = time.Since(start)
	log.Printf("[Terreno] Geração concluída: %s", out.Stats)
	return out, nil
}

// Assemble percorre a grade fatia a fatia ao longo de axis e monta a saída.
// Um tipo de bloco sem protótipo no catálogo causa panic.
func Assemble(grid *terrain.VoxelGrid, catalog *blocks.Catalog, axis util.Axis, cellSize float32) *Output {
	var (
		geom  meshing.GeometryData
		spans []meshing.Span
	)
	out := &Output{Axis: axis, CellSize: cellSize}
	groups := physics.TerrainGroups()

	slabs := grid.Bounds().Extent(axis)
	step := max(slabs/10, 1)
	for slab := 0; slab < slabs; slab++ {
		b := physics.NewBuilder()
		occupied := false
		grid.ForEachInSlab(axis, slab, func(c util.GridCoord, bt blocks.BlockType) {
			occupied = true
			proto := catalog.MustGet(bt)
			offset := util.CellToWorld(c, cellSize)
			spans = append(spans, geom.CombineWithMesh(proto.Mesh, offset)...)
			b.AppendWithTransform(proto.Collider(), physics.FromTranslation(offset))
		})

		if occupied {
			out.Stats.NonEmptySlabs++
		}
		if !b.IsEmpty() {
			compound, err := b.Build()
			if err != nil {
				panic(err)
			}
			out.Colliders = append(out.Colliders, SlabCollider{
				Slab:      slab,
				Transform: physics.Identity(),
				Collider:  compound,
				Groups:    groups,
			})
			out.Stats.ColliderShapes += compound.Len()
		}

		if (slab+1)%step == 0 || slab+1 == slabs {
			log.Printf("[Terreno] Fatias %d/%d (%d%%), %d vértices", slab+1, slabs, (slab+1)*100/slabs, geom.VertexCount())
		}
	}

	pal := palette.New()
	for _, s := range spans {
		pal.Push(s.Material)
	}
	atlas := pal.Compile()
	meshing.ApplySpanUVs(&geom, spans, pal, atlas)

	out.Mesh = geom
	out.Material = atlas.IntoRenderMaterial()
	out.Materials = pal.Materials()
	out.Stats.Blocks = grid.CountByType()
	out.Stats.Vertices = geom.VertexCount()
	out.Stats.Triangles = geom.TriangleCount()
	out.Stats.Slabs = slabs
	out.Stats.Colliders = len(out.Colliders)
	out.Stats.PaletteSize = pal.Len()
	out.Stats.GridDigest = grid.Digest()
	return out
}
