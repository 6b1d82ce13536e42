package physics

import "errors"

// ErrEmptyCompound é retornado ao construir um composto sem formas.
var ErrEmptyCompound = errors.New("composto de colisão vazio")

// Part é uma forma posicionada dentro de um composto.
type Part struct {
	Shape     Shape
	Transform Transform
}

// Builder acumula formas e transformações locais para formar um composto.
type Builder struct {
	parts []Part
}

// NewBuilder cria um builder vazio.
func NewBuilder() *Builder {
	return &Builder{}
}

// Push adiciona uma forma com sua transformação local.
func (b *Builder) Push(s Shape, t Transform) *Builder {
	b.parts = append(b.parts, Part{Shape: s, Transform: t})
	return b
}

// Append copia as formas de outro builder, preservando a ordem.
func (b *Builder) Append(other *Builder) *Builder {
	b.parts = append(b.parts, other.parts...)
	return b
}

// Transform compõe delta em todas as formas.
// A translação é somada diretamente, sem ser rotacionada pela rotação
// acumulada; com rotações não identidade o resultado difere de uma
// composição rígida completa.
func (b *Builder) Transform(delta Transform) *Builder {
	for i := range b.parts {
		b.parts[i].Transform = b.parts[i].Transform.Compose(delta)
	}
	return b
}

// WithTransform retorna uma cópia transformada, sem alterar o original.
func (b *Builder) WithTransform(delta Transform) *Builder {
	return b.Clone().Transform(delta)
}

// AppendWithTransform adiciona uma cópia transformada de other.
func (b *Builder) AppendWithTransform(other *Builder, delta Transform) *Builder {
	return b.Append(other.WithTransform(delta))
}

// Clone retorna uma cópia independente.
func (b *Builder) Clone() *Builder {
	parts := make([]Part, len(b.parts))
	copy(parts, b.parts)
	return &Builder{parts: parts}
}

// IsEmpty indica se nenhuma forma foi adicionada.
func (b *Builder) IsEmpty() bool {
	return len(b.parts) == 0
}

// Len retorna o número de formas.
func (b *Builder) Len() int {
	return len(b.parts)
}

// Parts retorna uma cópia das formas acumuladas.
func (b *Builder) Parts() []Part {
	out := make([]Part, len(b.parts))
	copy(out, b.parts)
	return out
}

// Build gera o composto imutável.
func (b *Builder) Build() (*Compound, error) {
	if b.IsEmpty() {
		return nil, ErrEmptyCompound
	}
	c := &Compound{parts: b.Parts(), bounds: EmptyAABB()}
	for _, p := range c.parts {
		c.bounds = c.bounds.Union(shapeAABB(p.Shape, p.Transform))
	}
	return c, nil
}

// Compound é um conjunto imutável de formas tratado como um único colisor.
type Compound struct {
	parts  []Part
	bounds AABB
}

// Len retorna o número de formas do composto.
func (c *Compound) Len() int {
	return len(c.parts)
}

// Parts retorna uma cópia das formas.
func (c *Compound) Parts() []Part {
	out := make([]Part, len(c.parts))
	copy(out, c.parts)
	return out
}

// LocalAABB retorna a caixa envolvente no espaço do composto.
func (c *Compound) LocalAABB() AABB {
	return c.bounds
}

// AABB retorna a caixa envolvente do composto posicionado por t.
func (c *Compound) AABB(t Transform) AABB {
	out := EmptyAABB()
	for _, p := range c.parts {
		out = out.Union(shapeAABB(p.Shape, t.Mul(p.Transform)))
	}
	return out
}
