package terrain

import (
	"bytes"
	"log"
	"math/rand/v2"
	"strings"
	"testing"

	"Solstice/shared/blocks"
	"Solstice/shared/util"
)

func testParams(seed uint32) Params {
	return Params{
		Radius:    10,
		Bounds:    util.Bounds{X: 24, Y: 64, Z: 24},
		BaseLayer: 32,
		WellMin:   25,
		WellMax:   50,
		Seed:      seed,
	}
}

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(42, DefaultNoiseScale)
	b := NewSampler(42, DefaultNoiseScale)
	for x := 0; x < 20; x++ {
		for z := 0; z < 20; z++ {
			for _, f := range []Field{Elevation, SpireDensity} {
				va, vb := a.Sample(f, x, z), b.Sample(f, x, z)
				if va != vb {
					t.Fatalf("Sample(%d,%d,%d) = %v e %v", f, x, z, va, vb)
				}
				if va < -1.01 || va > 1.01 {
					t.Fatalf("Sample(%d,%d,%d) = %v fora de [-1,1]", f, x, z, va)
				}
			}
		}
	}
}

func TestBuildGridDeterministic(t *testing.T) {
	g1, err := BuildGrid(testParams(42))
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	g2, _ := BuildGrid(testParams(42))
	if g1.Digest() != g2.Digest() {
		t.Errorf("mesma seed gerou grades diferentes")
	}
	g3, _ := BuildGrid(testParams(7))
	if g1.Digest() == g3.Digest() {
		t.Errorf("seeds 42 e 7 geraram a mesma grade")
	}
}

func TestBuildGridLayering(t *testing.T) {
	p := testParams(42)
	g, err := BuildGrid(p)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	base := 0
	b := g.Bounds()
	for x := 0; x < b.X; x++ {
		for z := 0; z < b.Z; z++ {
			if g.Occupied(util.GridCoord{X: x, Y: p.BaseLayer, Z: z}) {
				base++
			}
			for y := 0; y < b.Y; y++ {
				bt, ok := g.Get(util.GridCoord{X: x, Y: y, Z: z})
				if !ok {
					continue
				}
				if !util.InCircle(x, z, b.X/2, b.Z/2, p.Radius) && bt != blocks.Well {
					t.Fatalf("bloco %v fora do círculo em (%d,%d,%d)", bt, x, y, z)
				}
				switch {
				case bt == blocks.Well:
					if y < p.WellMin || y > p.WellMax {
						t.Fatalf("poço fora da faixa em y=%d", y)
					}
				case y < p.BaseLayer-3 || y > p.BaseLayer+MaxSpireHeight:
					t.Fatalf("bloco %v fora das camadas em y=%d", bt, y)
				}
			}
		}
	}
	if base == 0 {
		t.Errorf("camada base vazia")
	}
}

func TestGenerateWellClusterAtBoundary(t *testing.T) {
	p := testParams(1)
	p.Bounds = util.Bounds{X: 4, Y: 64, Z: 4}
	p.Radius = 2
	wb, err := NewWorldBuilder(p)
	if err != nil {
		t.Fatalf("NewWorldBuilder: %v", err)
	}
	corners := [][2]int{{0, 0}, {3, 3}, {0, 3}, {3, 0}, {-1, -1}, {4, 4}}
	for i := 0; i < 20; i++ {
		for _, c := range corners {
			wb.GenerateWellCluster(c[0], c[1])
		}
	}
	counts := wb.grid.CountByType()
	if counts[blocks.Well] == 0 {
		t.Errorf("nenhum poço gerado")
	}
	if counts[blocks.Well]%(p.WellMax-p.WellMin+1) != 0 {
		t.Errorf("colunas de poço incompletas: %d células", counts[blocks.Well])
	}
}

func TestWellsSurviveShaftBelowBase(t *testing.T) {
	for seed := uint32(0); seed < 10; seed++ {
		p := testParams(seed)
		p.Radius = 20
		p.Bounds = util.Bounds{X: 48, Y: 64, Z: 48}
		p.WellMin, p.WellMax = 25, 30
		g, err := BuildGrid(p)
		if err != nil {
			t.Fatalf("BuildGrid: %v", err)
		}

		for x := 0; x < p.Bounds.X; x++ {
			for z := 0; z < p.Bounds.Z; z++ {
				wells, others := 0, 0
				for y := p.WellMin; y <= p.WellMax; y++ {
					bt, ok := g.Get(util.GridCoord{X: x, Y: y, Z: z})
					switch {
					case ok && bt == blocks.Well:
						wells++
					case ok:
						others++
					}
				}
				if wells > 0 && others > 0 {
					t.Fatalf("seed %d coluna (%d,%d): %d poços e %d outros blocos na faixa do poço", seed, x, z, wells, others)
				}
			}
		}
	}
}

func TestSetUnlessWellKeepsWell(t *testing.T) {
	wb, err := NewWorldBuilder(testParams(3))
	if err != nil {
		t.Fatalf("NewWorldBuilder: %v", err)
	}
	c := util.GridCoord{X: 5, Y: 30, Z: 5}
	wb.wellColumn(c.X, c.Z)
	wb.setUnlessWell(c, blocks.Solid)
	if bt, _ := wb.grid.Get(c); bt != blocks.Well {
		t.Errorf("célula de poço sobrescrita por %v", bt)
	}

	empty := util.GridCoord{X: 6, Y: 30, Z: 6}
	wb.setUnlessWell(empty, blocks.Hollow)
	if bt, ok := wb.grid.Get(empty); !ok || bt != blocks.Hollow {
		t.Errorf("célula vazia = %v/%v, want Hollow", bt, ok)
	}
}

func TestWeightedPick(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		if WeightedPick(rng, 1, "a", "b") != "a" {
			t.Fatalf("bias 1 retornou b")
		}
		if WeightedPick(rng, 0, "a", "b") != "b" {
			t.Fatalf("bias 0 retornou a")
		}
	}

	hits := 0
	for i := 0; i < 10000; i++ {
		if WeightedPick(rng, 0.25, true, false) {
			hits++
		}
	}
	if hits < 2200 || hits > 2800 {
		t.Errorf("bias 0.25: %d/10000 acertos", hits)
	}
}

func TestWeightedPickWarnsOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	rng := rand.New(rand.NewPCG(1, 2))
	if got := WeightedPick(rng, 1.5, "a", "b"); got != "a" {
		t.Errorf("WeightedPick(1.5) = %q, want a", got)
	}
	if !strings.Contains(buf.String(), "fora de [0,1]") {
		t.Errorf("aviso ausente no log: %q", buf.String())
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Params)
	}{
		{"raio zero", func(p *Params) { p.Radius = 0 }},
		{"grade vazia", func(p *Params) { p.Bounds.Y = 0 }},
		{"base fora", func(p *Params) { p.BaseLayer = 64 }},
		{"poço invertido", func(p *Params) { p.WellMin, p.WellMax = 50, 25 }},
	}
	for _, tt := range tests {
		p := testParams(1)
		tt.edit(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("%s: Validate() deveria falhar", tt.name)
		}
	}
}

func TestForEachInSlabOrder(t *testing.T) {
	g := NewVoxelGrid(util.Bounds{X: 3, Y: 3, Z: 3})
	g.Set(util.GridCoord{X: 1, Y: 2, Z: 0}, blocks.Hollow)
	g.Set(util.GridCoord{X: 1, Y: 0, Z: 2}, blocks.Solid)
	g.Set(util.GridCoord{X: 2, Y: 0, Z: 0}, blocks.Well)

	var seen []util.GridCoord
	g.ForEachInSlab(util.AxisX, 1, func(c util.GridCoord, _ blocks.BlockType) {
		seen = append(seen, c)
	})
	if len(seen) != 2 || seen[0].Y != 0 || seen[1].Y != 2 {
		t.Errorf("fatia x=1 = %v", seen)
	}
	if g.Set(util.GridCoord{X: 3, Y: 0, Z: 0}, blocks.Solid) {
		t.Errorf("Set fora da grade retornou true")
	}
}
