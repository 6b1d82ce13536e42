package physics

// Group é uma máscara de bits de grupos de colisão.
type Group uint32

const (
	GroupTerrain Group = 1 << iota
	GroupPlayer
	GroupBuilding
	GroupProjectile

	GroupNone Group = 0
	GroupAll  Group = ^Group(0)
)

// Groups define a que grupos um colisor pertence e com quais interage.
type Groups struct {
	Membership Group
	Filter     Group
}

// TerrainGroups é o par usado pelos colisores do terreno: membro do
// terreno, colide com tudo exceto o próprio terreno.
func TerrainGroups() Groups {
	return Groups{Membership: GroupTerrain, Filter: GroupAll &^ GroupTerrain}
}

// Interacts verifica se dois colisores podem colidir: cada um precisa
// pertencer a algum grupo aceito pelo filtro do outro.
func (g Groups) Interacts(other Groups) bool {
	return g.Membership&other.Filter != 0 && other.Membership&g.Filter != 0
}
