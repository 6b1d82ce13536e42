package palette

// FlatMaterial é um material descrito apenas por parâmetros escalares, sem textura.
type FlatMaterial struct {
	BaseColor Color
	Emissive  Color
	Metallic  float32
	Roughness float32
}

// DefaultFlatMaterial retorna o material usado para completar atlas mais largos que a paleta.
func DefaultFlatMaterial() FlatMaterial {
	return FlatMaterial{
		BaseColor: White,
		Emissive:  Black,
		Metallic:  0.01,
		Roughness: 0.089,
	}
}

func (m FlatMaterial) WithBaseColor(c Color) FlatMaterial { m.BaseColor = c; return m }
func (m FlatMaterial) WithEmissive(c Color) FlatMaterial  { m.Emissive = c; return m }
func (m FlatMaterial) WithMetallic(v float32) FlatMaterial {
	m.Metallic = v
	return m
}
func (m FlatMaterial) WithRoughness(v float32) FlatMaterial {
	m.Roughness = v
	return m
}

// metallicRoughness codifica o material no layout glTF: R=0, G=roughness, B=metallic, A=1.
func (m FlatMaterial) metallicRoughness() Color {
	return RGBA(0, m.Roughness, m.Metallic, 1)
}
