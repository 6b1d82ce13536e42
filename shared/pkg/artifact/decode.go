package artifact

import (
	"fmt"
	"math"

	"Solstice/shared/palette"
	"Solstice/shared/physics"
	"Solstice/shared/util"
	"Solstice/shared/worldgen"

	"github.com/go-gl/mathgl/mgl32"
	"google.golang.org/protobuf/encoding/protowire"
)

// Decode descomprime e reconstrói a saída de uma geração. O atlas é
// recompilado a partir dos materiais e os colisores são reconstruídos.
func Decode(data []byte) (*worldgen.Output, error) {
	raw, err := decompress(data)
	if err != nil {
		return nil, err
	}
	return Unmarshal(raw)
}

// Unmarshal reconstrói a saída a partir dos bytes sem compressão.
func Unmarshal(b []byte) (*worldgen.Output, error) {
	out := &worldgen.Output{}
	var version uint64
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, n uint64) error {
		var err error
		switch num {
		case 1:
			version = n
		case 2:
			out.Stats.Seed = uint32(n)
		case 3:
			out.Axis = util.Axis(n)
		case 4:
			out.CellSize = math.Float32frombits(uint32(n))
		case 5:
			out.Mesh.Vertices, err = readFloats(v)
		case 6:
			out.Mesh.Normals, err = readFloats(v)
		case 7:
			out.Mesh.UVs, err = readFloats(v)
		case 8:
			out.Mesh.Indices, err = readIndices(v)
		case 9:
			var m palette.FlatMaterial
			if m, err = unmarshalMaterial(v); err == nil {
				out.Materials = append(out.Materials, m)
			}
		case 10:
			var c worldgen.SlabCollider
			if c, err = unmarshalSlab(v); err == nil {
				out.Colliders = append(out.Colliders, c)
			}
		case 11:
			out.Stats.GridDigest = string(v)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: versão %d não suportada", ErrMalformed, version)
	}
	if err := out.Mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	pal := palette.New()
	for _, m := range out.Materials {
		pal.Push(m)
	}
	out.Material = pal.Compile().IntoRenderMaterial()

	out.Stats.Vertices = out.Mesh.VertexCount()
	out.Stats.Triangles = out.Mesh.TriangleCount()
	out.Stats.Colliders = len(out.Colliders)
	out.Stats.NonEmptySlabs = len(out.Colliders)
	out.Stats.PaletteSize = pal.Len()
	for _, c := range out.Colliders {
		out.Stats.ColliderShapes += c.Collider.Len()
	}
	return out, nil
}

func unmarshalMaterial(b []byte) (palette.FlatMaterial, error) {
	var m palette.FlatMaterial
	err := walk(b, func(num protowire.Number, _ protowire.Type, v []byte, _ uint64) error {
		fs, err := readFloats(v)
		if err != nil {
			return err
		}
		switch {
		case num == 1 && len(fs) == 4:
			m.BaseColor = palette.RGBA(fs[0], fs[1], fs[2], fs[3])
		case num == 2 && len(fs) == 4:
			m.Emissive = palette.RGBA(fs[0], fs[1], fs[2], fs[3])
		case num == 3 && len(fs) == 1:
			m.Metallic = fs[0]
		case num == 4 && len(fs) == 1:
			m.Roughness = fs[0]
		default:
			return fmt.Errorf("%w: campo de material %d com %d valores", ErrMalformed, num, len(fs))
		}
		return nil
	})
	return m, err
}

func unmarshalSlab(b []byte) (worldgen.SlabCollider, error) {
	c := worldgen.SlabCollider{Transform: physics.Identity()}
	builder := physics.NewBuilder()
	err := walk(b, func(num protowire.Number, _ protowire.Type, v []byte, n uint64) error {
		switch num {
		case 1:
			c.Slab = int(n)
		case 2:
			c.Groups.Membership = physics.Group(n)
		case 3:
			c.Groups.Filter = physics.Group(n)
		case 4:
			shape, t, err := unmarshalPart(v)
			if err != nil {
				return err
			}
			builder.Push(shape, t)
		}
		return nil
	})
	if err != nil {
		return c, err
	}
	if c.Collider, err = builder.Build(); err != nil {
		return c, fmt.Errorf("%w: fatia %d: %v", ErrMalformed, c.Slab, err)
	}
	return c, nil
}

func unmarshalPart(b []byte) (physics.Shape, physics.Transform, error) {
	var (
		kind uint64
		half []float32
		rot  = []float32{1, 0, 0, 0}
		pos  = []float32{0, 0, 0}
	)
	err := walk(b, func(num protowire.Number, _ protowire.Type, v []byte, n uint64) error {
		var err error
		switch num {
		case 1:
			kind = n
		case 2:
			half, err = readFloats(v)
		case 3:
			rot, err = readFloats(v)
		case 4:
			pos, err = readFloats(v)
		}
		return err
	})
	if err != nil {
		return nil, physics.Transform{}, err
	}
	if len(half) != 3 || len(rot) != 4 || len(pos) != 3 {
		return nil, physics.Transform{}, fmt.Errorf("%w: forma incompleta", ErrMalformed)
	}

	t := physics.Transform{
		Rotation:    mgl32.Quat{W: rot[0], V: mgl32.Vec3{rot[1], rot[2], rot[3]}},
		Translation: mgl32.Vec3{pos[0], pos[1], pos[2]},
	}
	switch kind {
	case kindBox:
		return physics.Box{Half: mgl32.Vec3{half[0], half[1], half[2]}}, t, nil
	case kindCylinder:
		return physics.Cylinder{HalfHeight: half[1], Radius: half[0]}, t, nil
	}
	return nil, physics.Transform{}, fmt.Errorf("%w: tipo de forma %d", ErrMalformed, kind)
}

// walk percorre os campos de uma mensagem. Para campos bytes, v recebe o
// conteúdo; para varint e fixed32, n recebe o valor.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, n uint64) error) error {
	for len(b) > 0 {
		num, typ, l := protowire.ConsumeTag(b)
		if l < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(l))
		}
		b = b[l:]

		var (
			v []byte
			n uint64
		)
		switch typ {
		case protowire.VarintType:
			n, l = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			var f uint32
			f, l = protowire.ConsumeFixed32(b)
			n = uint64(f)
		case protowire.BytesType:
			v, l = protowire.ConsumeBytes(b)
		default:
			l = protowire.ConsumeFieldValue(num, typ, b)
		}
		if l < 0 {
			return fmt.Errorf("%w: campo %d: %v", ErrMalformed, num, protowire.ParseError(l))
		}
		b = b[l:]
		if err := fn(num, typ, v, n); err != nil {
			return err
		}
	}
	return nil
}

func readFloats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes não formam fixed32", ErrMalformed, len(b))
	}
	out := make([]float32, 0, len(b)/4)
	for len(b) > 0 {
		f, l := protowire.ConsumeFixed32(b)
		if l < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(l))
		}
		out = append(out, math.Float32frombits(f))
		b = b[l:]
	}
	return out, nil
}

func readIndices(b []byte) ([]uint32, error) {
	var out []uint32
	for len(b) > 0 {
		v, l := protowire.ConsumeVarint(b)
		if l < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(l))
		}
		out = append(out, uint32(v))
		b = b[l:]
	}
	return out, nil
}
