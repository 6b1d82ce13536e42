package artifact

import (
	"math"

	"Solstice/shared/palette"
	"Solstice/shared/physics"
	"Solstice/shared/worldgen"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	kindBox      = 0
	kindCylinder = 1
)

// Encode serializa e comprime a saída da geração.
func Encode(out *worldgen.Output) []byte {
	raw := Marshal(out)
	return compress(raw)
}

// Marshal serializa a saída sem compressão.
func Marshal(out *worldgen.Output) []byte {
	var b []byte
	b = appendVarint(b, 1, Version)
	b = appendVarint(b, 2, uint64(out.Stats.Seed))
	b = appendVarint(b, 3, uint64(out.Axis))
	b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(out.CellSize))

	b = appendFloats(b, 5, out.Mesh.Vertices)
	b = appendFloats(b, 6, out.Mesh.Normals)
	b = appendFloats(b, 7, out.Mesh.UVs)
	b = appendIndices(b, 8, out.Mesh.Indices)

	for _, m := range out.Materials {
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalMaterial(m))
	}
	for _, c := range out.Colliders {
		b = protowire.AppendTag(b, 10, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalSlab(c))
	}
	if out.Stats.GridDigest != "" {
		b = protowire.AppendTag(b, 11, protowire.BytesType)
		b = protowire.AppendString(b, out.Stats.GridDigest)
	}
	return b
}

func marshalMaterial(m palette.FlatMaterial) []byte {
	var b []byte
	b = appendFloats(b, 1, []float32{m.BaseColor.R, m.BaseColor.G, m.BaseColor.B, m.BaseColor.A})
	b = appendFloats(b, 2, []float32{m.Emissive.R, m.Emissive.G, m.Emissive.B, m.Emissive.A})
	b = appendFloats(b, 3, []float32{m.Metallic})
	b = appendFloats(b, 4, []float32{m.Roughness})
	return b
}

func marshalSlab(c worldgen.SlabCollider) []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(c.Slab))
	b = appendVarint(b, 2, uint64(c.Groups.Membership))
	b = appendVarint(b, 3, uint64(c.Groups.Filter))
	for _, p := range c.Collider.Parts() {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalPart(p))
	}
	return b
}

func marshalPart(p physics.Part) []byte {
	var b []byte
	kind := uint64(kindBox)
	if _, ok := p.Shape.(physics.Cylinder); ok {
		kind = kindCylinder
	}
	h := p.Shape.HalfExtents()
	r := p.Transform.Rotation
	t := p.Transform.Translation

	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, kind)
	b = appendFloats(b, 2, h[:])
	b = appendFloats(b, 3, []float32{r.W, r.V[0], r.V[1], r.V[2]})
	b = appendFloats(b, 4, t[:])
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// appendFloats grava um campo fixed32 empacotado.
func appendFloats(b []byte, num protowire.Number, vs []float32) []byte {
	if len(vs) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(len(vs)*4))
	for _, v := range vs {
		b = protowire.AppendFixed32(b, math.Float32bits(v))
	}
	return b
}

// appendIndices grava um campo varint empacotado.
func appendIndices(b []byte, num protowire.Number, vs []uint32) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}
