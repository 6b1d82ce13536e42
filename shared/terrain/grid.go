package terrain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"Solstice/shared/blocks"
	"Solstice/shared/util"
)

// VoxelGrid é a grade densa de blocos. Cada célula guarda 0 (vazia) ou
// tipo+1.
type VoxelGrid struct {
	bounds util.Bounds
	cells  []uint8
}

// NewVoxelGrid cria uma grade vazia.
func NewVoxelGrid(b util.Bounds) *VoxelGrid {
	return &VoxelGrid{bounds: b, cells: make([]uint8, b.Volume())}
}

// Bounds retorna as dimensões da grade.
func (g *VoxelGrid) Bounds() util.Bounds {
	return g.bounds
}

func (g *VoxelGrid) index(c util.GridCoord) int {
	return (c.X*g.bounds.Y+c.Y)*g.bounds.Z + c.Z
}

// Get retorna o bloco da célula, se houver.
func (g *VoxelGrid) Get(c util.GridCoord) (blocks.BlockType, bool) {
	if !g.bounds.Contains(c) {
		return 0, false
	}
	v := g.cells[g.index(c)]
	if v == 0 {
		return 0, false
	}
	return blocks.BlockType(v - 1), true
}

// Occupied indica se a célula contém um bloco.
func (g *VoxelGrid) Occupied(c util.GridCoord) bool {
	_, ok := g.Get(c)
	return ok
}

// Set grava bt na célula. Coordenadas fora da grade são ignoradas e
// retornam false.
func (g *VoxelGrid) Set(c util.GridCoord, bt blocks.BlockType) bool {
	if !g.bounds.Contains(c) || !bt.Valid() {
		return false
	}
	g.cells[g.index(c)] = uint8(bt) + 1
	return true
}

// Clear esvazia a célula.
func (g *VoxelGrid) Clear(c util.GridCoord) {
	if g.bounds.Contains(c) {
		g.cells[g.index(c)] = 0
	}
}

// Count retorna o número de células ocupadas.
func (g *VoxelGrid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// CountByType conta as células de cada tipo.
func (g *VoxelGrid) CountByType() [blocks.Count]int {
	var out [blocks.Count]int
	for _, v := range g.cells {
		if v != 0 {
			out[v-1]++
		}
	}
	return out
}

// ForEachInSlab chama fn para cada célula ocupada da fatia i ao longo de
// axis, em ordem determinística.
func (g *VoxelGrid) ForEachInSlab(axis util.Axis, i int, fn func(util.GridCoord, blocks.BlockType)) {
	b := g.bounds
	if i < 0 || i >= b.Extent(axis) {
		return
	}
	visit := func(c util.GridCoord) {
		if v := g.cells[g.index(c)]; v != 0 {
			fn(c, blocks.BlockType(v-1))
		}
	}
	switch axis {
	case util.AxisX:
		for y := 0; y < b.Y; y++ {
			for z := 0; z < b.Z; z++ {
				visit(util.GridCoord{X: i, Y: y, Z: z})
			}
		}
	case util.AxisY:
		for x := 0; x < b.X; x++ {
			for z := 0; z < b.Z; z++ {
				visit(util.GridCoord{X: x, Y: i, Z: z})
			}
		}
	case util.AxisZ:
		for x := 0; x < b.X; x++ {
			for y := 0; y < b.Y; y++ {
				visit(util.GridCoord{X: x, Y: y, Z: i})
			}
		}
	}
}

// Digest retorna o sha256 das dimensões e do conteúdo da grade em hex.
func (g *VoxelGrid) Digest() string {
	h := sha256.New()
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(g.bounds.X))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(g.bounds.Y))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(g.bounds.Z))
	h.Write(hdr[:])
	h.Write(g.cells)
	return hex.EncodeToString(h.Sum(nil))
}
