package worldgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"Solstice/shared/assets"
	"Solstice/shared/blocks"
	"Solstice/shared/config"
	"Solstice/shared/meshing"
	"Solstice/shared/physics"
	"Solstice/shared/terrain"
	"Solstice/shared/util"
)

func scenarioConfig() *config.GeneratorConfig {
	g := config.DefaultConfig().Generator
	seed := uint32(42)
	g.Seed = &seed
	g.Radius = 10
	g.Bounds = util.Bounds{X: 24, Y: 64, Z: 24}
	return &g
}

func defaultPipeline(t *testing.T, cfg *config.GeneratorConfig) (*Pipeline, *assets.FileLoader) {
	t.Helper()
	fsys := assets.DefaultFS()
	m, err := assets.LoadManifest(fsys, assets.DefaultManifest)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	loader := assets.NewFileLoader(fsys, 2)
	p, err := NewPipeline(cfg, loader, m)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p, loader
}

func runScenario(t *testing.T) (*Output, *blocks.Catalog) {
	t.Helper()
	p, loader := defaultPipeline(t, scenarioConfig())
	defer loader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out, err := Run(ctx, p, time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out, p.Catalog()
}

func TestEndToEndScenario(t *testing.T) {
	out, catalog := runScenario(t)

	if out.Stats.TotalBlocks() == 0 {
		t.Fatalf("nenhum bloco gerado")
	}
	if err := out.Mesh.Validate(); err != nil {
		t.Fatalf("Mesh.Validate(): %v", err)
	}

	want := 0
	for _, bt := range blocks.All() {
		want += out.Stats.Blocks[bt] * catalog.MustGet(bt).Mesh.VertexCount()
	}
	if out.Mesh.VertexCount() != want {
		t.Errorf("VertexCount() = %d, want %d", out.Mesh.VertexCount(), want)
	}

	nonEmpty := countOccupiedSlabs(t, scenarioConfig(), out.Stats.GridDigest)
	if len(out.Colliders) > nonEmpty {
		t.Errorf("%d colisores para %d fatias ocupadas", len(out.Colliders), nonEmpty)
	}
	if len(out.Colliders) != nonEmpty || out.Stats.NonEmptySlabs != nonEmpty {
		t.Errorf("colisores = %d, NonEmptySlabs = %d, want %d", len(out.Colliders), out.Stats.NonEmptySlabs, nonEmpty)
	}
	for _, c := range out.Colliders {
		if c.Groups != physics.TerrainGroups() {
			t.Errorf("fatia %d: grupos %+v", c.Slab, c.Groups)
		}
		if c.Collider.Len() == 0 {
			t.Errorf("fatia %d: colisor vazio", c.Slab)
		}
	}

	for i := 0; i < len(out.Mesh.UVs); i += 2 {
		u, v := out.Mesh.UVs[i], out.Mesh.UVs[i+1]
		if u <= 0 || u >= 1 || v != 0.5 {
			t.Fatalf("UV %d = (%v,%v) fora do atlas", i/2, u, v)
		}
	}
	if w := out.Material.BaseColorTexture.Rect.Dx(); w != out.Stats.PaletteSize || w != len(out.Materials) {
		t.Errorf("atlas com %d texels, paleta com %d", w, out.Stats.PaletteSize)
	}
}

// countOccupiedSlabs regenera a grade e conta as fatias com ao menos um bloco.
func countOccupiedSlabs(t *testing.T, cfg *config.GeneratorConfig, digest string) int {
	t.Helper()
	grid, err := terrain.BuildGrid(cfg.TerrainParams())
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if grid.Digest() != digest {
		t.Fatalf("grade regenerada difere da gerada pelo pipeline")
	}
	axis := cfg.Axis()
	n := 0
	for slab := 0; slab < grid.Bounds().Extent(axis); slab++ {
		occupied := false
		grid.ForEachInSlab(axis, slab, func(util.GridCoord, blocks.BlockType) { occupied = true })
		if occupied {
			n++
		}
	}
	return n
}

func TestAssembleOneColliderPerOccupiedSlab(t *testing.T) {
	_, catalog := runScenario(t)
	grid := terrain.NewVoxelGrid(util.Bounds{X: 4, Y: 4, Z: 4})
	grid.Set(util.GridCoord{X: 0, Y: 1, Z: 1}, blocks.Solid)
	grid.Set(util.GridCoord{X: 0, Y: 2, Z: 3}, blocks.Hollow)
	grid.Set(util.GridCoord{X: 2, Y: 0, Z: 0}, blocks.Well)

	out := Assemble(grid, catalog, util.AxisX, catalog.CellSize())
	if out.Stats.Slabs != 4 || out.Stats.NonEmptySlabs != 2 {
		t.Fatalf("fatias = %d/%d, want 2/4", out.Stats.NonEmptySlabs, out.Stats.Slabs)
	}
	if len(out.Colliders) != 2 {
		t.Fatalf("%d colisores, want 2", len(out.Colliders))
	}
	if out.Colliders[0].Slab != 0 || out.Colliders[1].Slab != 2 {
		t.Errorf("fatias dos colisores = %d,%d, want 0,2", out.Colliders[0].Slab, out.Colliders[1].Slab)
	}
}

func TestEndToEndDeterministic(t *testing.T) {
	a, _ := runScenario(t)
	b, _ := runScenario(t)
	if a.Stats.GridDigest != b.Stats.GridDigest {
		t.Errorf("digest diferente entre execuções")
	}
	if a.Mesh.VertexCount() != b.Mesh.VertexCount() || len(a.Colliders) != len(b.Colliders) {
		t.Errorf("saídas diferentes: %s / %s", a.Stats, b.Stats)
	}
}

func TestBaseLayerDeterministic(t *testing.T) {
	cfg := scenarioConfig()
	g1, _ := terrain.BuildGrid(cfg.TerrainParams())
	g2, _ := terrain.BuildGrid(cfg.TerrainParams())

	count := 0
	for x := 0; x < cfg.Bounds.X; x++ {
		for z := 0; z < cfg.Bounds.Z; z++ {
			c := util.GridCoord{X: x, Y: cfg.BaseLayer, Z: z}
			b1, ok1 := g1.Get(c)
			b2, ok2 := g2.Get(c)
			if ok1 != ok2 || b1 != b2 {
				t.Fatalf("camada base difere em %v", c)
			}
			if ok1 {
				count++
			}
		}
	}
	if count == 0 {
		t.Errorf("camada base vazia")
	}
}

func TestRegisterOutput(t *testing.T) {
	out, _ := runScenario(t)
	world := physics.NewStaticWorld()
	if err := out.Register(world); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if world.Len() != len(out.Colliders) || world.ShapeCount() != out.Stats.ColliderShapes {
		t.Errorf("mundo com %d/%d, want %d/%d", world.Len(), world.ShapeCount(), len(out.Colliders), out.Stats.ColliderShapes)
	}
}

type stubLoader struct {
	state     assets.LoadState
	requested []string
}

func (s *stubLoader) Request(p string)                   { s.requested = append(s.requested, p) }
func (s *stubLoader) State(string) assets.LoadState      { return s.state }
func (s *stubLoader) Mesh(string) (*meshing.Mesh, error) { return nil, assets.ErrNotLoaded }

func stubManifest() *assets.Manifest {
	m := &assets.Manifest{Models: map[string]string{}}
	for _, bt := range blocks.All() {
		m.Models[bt.String()] = bt.String() + ".obj"
	}
	return m
}

func TestPipelineWaitsAndFails(t *testing.T) {
	loader := &stubLoader{state: assets.Loading}
	p, err := NewPipeline(scenarioConfig(), loader, stubManifest())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	if err := p.Tick(); err != nil || p.Status() != Waiting {
		t.Fatalf("primeiro tick: %v, status %v", err, p.Status())
	}
	if len(loader.requested) != blocks.Count {
		t.Errorf("%d pedidos, want %d", len(loader.requested), blocks.Count)
	}
	for i := 0; i < 3; i++ {
		if err := p.Tick(); err != nil || p.Status() != Waiting {
			t.Fatalf("tick com Loading: %v, status %v", err, p.Status())
		}
	}

	loader.state = assets.Failed
	if err := p.Tick(); !errors.Is(err, ErrAssetFailed) {
		t.Errorf("tick com Failed = %v, want ErrAssetFailed", err)
	}
}

func TestPipelineDoneIsIdempotent(t *testing.T) {
	p, loader := defaultPipeline(t, scenarioConfig())
	defer loader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	out, err := Run(ctx, p, time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := p.Tick(); err != nil {
			t.Fatalf("tick após Done: %v", err)
		}
	}
	if p.Status() != Done || p.Output() != out {
		t.Errorf("Done não é idempotente")
	}
}

func TestRunCancelled(t *testing.T) {
	loader := &stubLoader{state: assets.Loading}
	p, _ := NewPipeline(scenarioConfig(), loader, stubManifest())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := Run(ctx, p, time.Millisecond); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v, want DeadlineExceeded", err)
	}
}

func TestAssembleMissingPrototypePanics(t *testing.T) {
	grid := terrain.NewVoxelGrid(util.Bounds{X: 2, Y: 2, Z: 2})
	grid.Set(util.GridCoord{X: 1, Y: 1, Z: 1}, blocks.Well)

	defer func() {
		if recover() == nil {
			t.Errorf("Assemble sem protótipo deveria entrar em panic")
		}
	}()
	Assemble(grid, blocks.NewCatalog(6), util.AxisX, 6)
}

func TestAssembleEmptyGrid(t *testing.T) {
	grid := terrain.NewVoxelGrid(util.Bounds{X: 3, Y: 3, Z: 3})
	out := Assemble(grid, blocks.NewCatalog(6), util.AxisY, 6)
	if len(out.Colliders) != 0 || !out.Mesh.IsEmpty() || out.Stats.Slabs != 3 {
		t.Errorf("grade vazia gerou %s", out.Stats)
	}
}
