package terrain

import (
	"fmt"
	"log"
	"math/rand/v2"

	"Solstice/shared/blocks"
	"Solstice/shared/util"
)

// Probabilidades e alturas do gerador.
const (
	WellChance        = 50 // 1 em 50 colunas
	WellClusterChance = 5  // 1 em 5 poços vira aglomerado 3x3
	MinSpireHeight    = 3
	MaxSpireHeight    = 7
)

// Limiares de elevação: cada um acrescenta uma camada abaixo da base.
var elevationLayers = [...]float64{0, 0.3, 0.6, 0.95}

// Params são as entradas do gerador de mundo.
type Params struct {
	Radius     int
	Bounds     util.Bounds
	BaseLayer  int
	WellMin    int
	WellMax    int
	Seed       uint32
	NoiseScale float64
}

// Validate verifica se a grade comporta o terreno pedido.
func (p Params) Validate() error {
	if p.Bounds.X <= 0 || p.Bounds.Y <= 0 || p.Bounds.Z <= 0 {
		return fmt.Errorf("dimensões da grade inválidas: %+v", p.Bounds)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("raio inválido: %d", p.Radius)
	}
	if p.BaseLayer < 0 || p.BaseLayer >= p.Bounds.Y {
		return fmt.Errorf("camada base %d fora da grade (altura %d)", p.BaseLayer, p.Bounds.Y)
	}
	if p.WellMin > p.WellMax {
		return fmt.Errorf("faixa de poço invertida: [%d,%d]", p.WellMin, p.WellMax)
	}
	return nil
}

// WorldBuilder preenche uma VoxelGrid a partir dos campos de ruído e de um
// fluxo aleatório determinístico derivado da seed.
type WorldBuilder struct {
	p       Params
	sampler *Sampler
	rng     *rand.Rand
	grid    *VoxelGrid
}

// NewWorldBuilder prepara o gerador. A mesma Params gera sempre a mesma grade.
func NewWorldBuilder(p Params) (*WorldBuilder, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("falha ao criar gerador de mundo: %w", err)
	}
	return &WorldBuilder{
		p:       p,
		sampler: NewSampler(p.Seed, p.NoiseScale),
		rng:     rand.New(rand.NewPCG(uint64(p.Seed), 0x5f3759df)),
		grid:    NewVoxelGrid(p.Bounds),
	}, nil
}

// BuildGrid gera a grade completa.
func BuildGrid(p Params) (*VoxelGrid, error) {
	wb, err := NewWorldBuilder(p)
	if err != nil {
		return nil, err
	}
	return wb.Build(), nil
}

// Build percorre as colunas dentro do círculo (x, depois z) e retorna a grade.
func (wb *WorldBuilder) Build() *VoxelGrid {
	b := wb.p.Bounds
	cx, cz := b.X/2, b.Z/2
	r := wb.p.Radius

	columns := 0
	for x := max(cx-r, 0); x <= min(cx+r, b.X-1); x++ {
		for z := max(cz-r, 0); z <= min(cz+r, b.Z-1); z++ {
			if !util.InCircle(x, z, cx, cz, r) {
				continue
			}
			if wb.column(x, z) {
				columns++
			}
		}
	}
	log.Printf("[Terreno] Grade gerada: %d colunas, %d blocos (seed %d)", columns, wb.grid.Count(), wb.p.Seed)
	return wb.grid
}

// column processa uma coluna. Retorna false quando ela já foi ocupada por um poço.
func (wb *WorldBuilder) column(x, z int) bool {
	base := wb.p.BaseLayer
	if wb.grid.Occupied(util.GridCoord{X: x, Y: base, Z: z}) {
		return false
	}

	n := wb.sampler.Sample(Elevation, x, z)
	for depth, threshold := range elevationLayers {
		if depth == 0 && n <= threshold {
			break
		}
		if depth > 0 && n < threshold {
			break
		}
		bt := WeightedPick(wb.rng, 0.5, blocks.Solid, blocks.Hollow)
		wb.setUnlessWell(util.GridCoord{X: x, Y: base - depth, Z: z}, bt)
	}

	if wb.rng.IntN(WellChance) == 0 {
		if wb.rng.IntN(WellClusterChance) == 0 && !wb.p.Bounds.OnHorizontalEdge(x, z) {
			wb.GenerateWellCluster(x, z)
		} else {
			wb.wellColumn(x, z)
		}
	}

	if wb.sampler.Sample(SpireDensity, x, z) > 0.5 {
		h := MinSpireHeight + wb.rng.IntN(MaxSpireHeight-MinSpireHeight+1)
		for i := 1; i <= h; i++ {
			bt := WeightedPick(wb.rng, 0.5, blocks.Solid, blocks.SpireHollow)
			wb.setUnlessWell(util.GridCoord{X: x, Y: base + i, Z: z}, bt)
		}
	}
	return true
}

// setUnlessWell grava bt em c, exceto quando c já é poço.
func (wb *WorldBuilder) setUnlessWell(c util.GridCoord, bt blocks.BlockType) {
	if cur, ok := wb.grid.Get(c); ok && cur == blocks.Well {
		return
	}
	wb.grid.Set(c, bt)
}

// GenerateWellCluster coloca poços no 3x3 centrado em (x, z); cada coluna
// recebe um poço com probabilidade 1/2. Colunas fora da grade são ignoradas.
func (wb *WorldBuilder) GenerateWellCluster(x, z int) {
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if wb.rng.IntN(2) == 0 {
				wb.wellColumn(x+dx, z+dz)
			}
		}
	}
}

// wellColumn preenche [WellMin, WellMax] com poço, sobrescrevendo o que houver.
func (wb *WorldBuilder) wellColumn(x, z int) {
	if x < 0 || z < 0 || x >= wb.p.Bounds.X || z >= wb.p.Bounds.Z {
		return
	}
	lo := max(wb.p.WellMin, 0)
	hi := min(wb.p.WellMax, wb.p.Bounds.Y-1)
	for y := lo; y <= hi; y++ {
		wb.grid.Set(util.GridCoord{X: x, Y: y, Z: z}, blocks.Well)
	}
}

// WeightedPick retorna a com probabilidade bias e b caso contrário.
// Um bias fora de [0,1] gera apenas um aviso.
func WeightedPick[T any](rng *rand.Rand, bias float64, a, b T) T {
	if bias < 0 || bias > 1 {
		log.Printf("[Terreno] Aviso: bias %.3f fora de [0,1]", bias)
	}
	if rng.Float64() < bias {
		return a
	}
	return b
}
