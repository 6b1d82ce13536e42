package util

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// GridCoord representa uma célula da grade de voxels.
// X = leste/oeste, Y = camada vertical, Z = norte/sul
type GridCoord struct {
	X, Y, Z int
}

// String retorna a representação em string da coordenada.
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// CellToWorld converte o índice de uma célula para a translação no mundo 3D.
func CellToWorld(c GridCoord, cellSize float32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.X) * cellSize,
		float32(c.Y) * cellSize,
		float32(c.Z) * cellSize,
	}
}

// Bounds é o tamanho da grade em células.
type Bounds struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Volume retorna o total de células.
func (b Bounds) Volume() int {
	return b.X * b.Y * b.Z
}

// Contains verifica se a coordenada está dentro da grade.
func (b Bounds) Contains(c GridCoord) bool {
	return c.X >= 0 && c.X < b.X &&
		c.Y >= 0 && c.Y < b.Y &&
		c.Z >= 0 && c.Z < b.Z
}

// OnHorizontalEdge indica se a coluna (x,z) está na borda da grade.
func (b Bounds) OnHorizontalEdge(x, z int) bool {
	return x <= 0 || z <= 0 || x >= b.X-1 || z >= b.Z-1
}

// Extent retorna o número de células ao longo de um eixo.
func (b Bounds) Extent(axis Axis) int {
	switch axis {
	case AxisY:
		return b.Y
	case AxisZ:
		return b.Z
	}
	return b.X
}

// Axis identifica um eixo da grade.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "x"
}

// ParseAxis converte "x", "y" ou "z" em um Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisX, fmt.Errorf("eixo inválido: %q", s)
}
