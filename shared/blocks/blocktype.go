package blocks

import "fmt"

// BlockType é o tipo de um bloco do terreno. O conjunto é fechado.
type BlockType uint8

const (
	Solid BlockType = iota
	Hollow
	SpireSolid
	SpireHollow
	Well

	// Count é o número de tipos de bloco.
	Count = int(Well) + 1
)

var blockNames = [Count]string{
	Solid:       "solid",
	Hollow:      "hollow",
	SpireSolid:  "spire_solid",
	SpireHollow: "spire_hollow",
	Well:        "well",
}

// Valid indica se o valor é um dos tipos definidos.
func (b BlockType) Valid() bool {
	return int(b) < Count
}

func (b BlockType) String() string {
	if !b.Valid() {
		return fmt.Sprintf("BlockType(%d)", uint8(b))
	}
	return blockNames[b]
}

// All retorna todos os tipos em ordem.
func All() []BlockType {
	out := make([]BlockType, Count)
	for i := range out {
		out[i] = BlockType(i)
	}
	return out
}

// Parse converte o nome usado no manifesto em BlockType.
func Parse(name string) (BlockType, error) {
	for i, n := range blockNames {
		if n == name {
			return BlockType(i), nil
		}
	}
	return 0, fmt.Errorf("tipo de bloco desconhecido: %q", name)
}
