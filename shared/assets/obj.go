package assets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"Solstice/shared/meshing"
	"Solstice/shared/palette"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoFaces indica um OBJ sem nenhuma face.
var ErrNoFaces = errors.New("obj sem faces")

// MaterialResolver abre uma biblioteca mtllib referenciada pelo OBJ.
type MaterialResolver func(name string) (io.ReadCloser, error)

// FallbackMaterial é usado por faces sem usemtl ou com material desconhecido.
func FallbackMaterial() palette.FlatMaterial {
	gray, _ := palette.Named("GRAY")
	return palette.DefaultFlatMaterial().WithBaseColor(gray)
}

type vertexKey struct {
	v, vt, vn int
}

// group acumula os triângulos de um material.
type group struct {
	material palette.FlatMaterial
	geom     meshing.GeometryData
	index    map[vertexKey]uint32
}

type objDecoder struct {
	positions []mgl32.Vec3
	texcoords []mgl32.Vec2
	normals   []mgl32.Vec3

	materials map[string]palette.FlatMaterial
	resolve   MaterialResolver

	groups  map[string]*group
	order   []string
	current string
}

// DecodeOBJ lê um Wavefront OBJ. Cada grupo usemtl vira uma primitiva com o
// material correspondente; polígonos são triangulados em leque.
func DecodeOBJ(r io.Reader, resolve MaterialResolver) (*meshing.Mesh, error) {
	d := &objDecoder{
		materials: make(map[string]palette.FlatMaterial),
		resolve:   resolve,
		groups:    make(map[string]*group),
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		if err := d.handle(fields); err != nil {
			return nil, fmt.Errorf("obj linha %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("falha ao ler obj: %w", err)
	}

	mesh := &meshing.Mesh{}
	for _, name := range d.order {
		g := d.groups[name]
		if g.geom.TriangleCount() == 0 {
			continue
		}
		mesh.Primitives = append(mesh.Primitives, meshing.Primitive{Geometry: g.geom, Material: g.material})
	}
	if len(mesh.Primitives) == 0 {
		return nil, ErrNoFaces
	}
	return mesh, nil
}

func (d *objDecoder) handle(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(pad(fields[1:], 3))
		if err != nil {
			return err
		}
		d.positions = append(d.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(pad(fields[1:], 2))
		if err != nil {
			return err
		}
		d.texcoords = append(d.texcoords, mgl32.Vec2{v[0], v[1]})
	case "vn":
		v, err := parseFloats(pad(fields[1:], 3))
		if err != nil {
			return err
		}
		d.normals = append(d.normals, mgl32.Vec3{v[0], v[1], v[2]}.Normalize())
	case "mtllib":
		for _, name := range fields[1:] {
			if err := d.loadLibrary(name); err != nil {
				return err
			}
		}
	case "usemtl":
		if len(fields) < 2 {
			return fmt.Errorf("usemtl sem nome")
		}
		d.current = fields[1]
	case "f":
		return d.face(fields[1:])
	}
	return nil
}

func (d *objDecoder) loadLibrary(name string) error {
	if d.resolve == nil {
		log.Printf("[Assets] mtllib %s ignorada: nenhum resolvedor configurado", name)
		return nil
	}
	rc, err := d.resolve(name)
	if err != nil {
		return fmt.Errorf("falha ao abrir mtllib %s: %w", name, err)
	}
	defer rc.Close()

	mats, err := DecodeMTL(rc)
	if err != nil {
		return fmt.Errorf("falha ao decodificar mtllib %s: %w", name, err)
	}
	for k, v := range mats {
		d.materials[k] = v
	}
	return nil
}

func (d *objDecoder) group() *group {
	if g, ok := d.groups[d.current]; ok {
		return g
	}
	mat, ok := d.materials[d.current]
	if !ok {
		if d.current != "" {
			log.Printf("[Assets] material %q desconhecido, usando fallback", d.current)
		}
		mat = FallbackMaterial()
	}
	g := &group{material: mat, index: make(map[vertexKey]uint32)}
	d.groups[d.current] = g
	d.order = append(d.order, d.current)
	return g
}

func (d *objDecoder) face(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("face com %d vértices", len(corners))
	}
	keys := make([]vertexKey, len(corners))
	for i, c := range corners {
		k, err := d.parseCorner(c)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	// normal da face para vértices sem vn
	p0, p1, p2 := d.positions[keys[0].v], d.positions[keys[1].v], d.positions[keys[2].v]
	flat := p1.Sub(p0).Cross(p2.Sub(p0))
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}

	g := d.group()
	idx := make([]uint32, len(keys))
	for i, k := range keys {
		idx[i] = g.vertex(d, k, flat)
	}
	for i := 1; i+1 < len(idx); i++ {
		g.geom.Indices = append(g.geom.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

func (g *group) vertex(d *objDecoder, k vertexKey, flat mgl32.Vec3) uint32 {
	// vértices sem normal própria não são compartilhados entre faces
	if k.vn >= 0 {
		if i, ok := g.index[k]; ok {
			return i
		}
	}
	i := uint32(g.geom.VertexCount())
	p := d.positions[k.v]
	g.geom.Vertices = append(g.geom.Vertices, p[0], p[1], p[2])

	n := flat
	if k.vn >= 0 {
		n = d.normals[k.vn]
	}
	g.geom.Normals = append(g.geom.Normals, n[0], n[1], n[2])

	var uv mgl32.Vec2
	if k.vt >= 0 {
		uv = d.texcoords[k.vt]
	}
	g.geom.UVs = append(g.geom.UVs, uv[0], uv[1])

	if k.vn >= 0 {
		g.index[k] = i
	}
	return i
}

// parseCorner interpreta "v", "v/vt", "v//vn" ou "v/vt/vn", com índices
// 1-based ou negativos (relativos ao fim).
func (d *objDecoder) parseCorner(s string) (vertexKey, error) {
	parts := strings.Split(s, "/")
	k := vertexKey{v: -1, vt: -1, vn: -1}
	var err error
	if k.v, err = resolveIndex(parts[0], len(d.positions)); err != nil || k.v < 0 {
		return k, fmt.Errorf("índice de posição inválido %q", s)
	}
	if len(parts) > 1 && parts[1] != "" {
		if k.vt, err = resolveIndex(parts[1], len(d.texcoords)); err != nil || k.vt < 0 {
			return k, fmt.Errorf("índice de textura inválido %q", s)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if k.vn, err = resolveIndex(parts[2], len(d.normals)); err != nil || k.vn < 0 {
			return k, fmt.Errorf("índice de normal inválido %q", s)
		}
	}
	return k, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return -1, fmt.Errorf("índice %d fora de [1,%d]", i, n)
	}
}

// pad completa fields com zeros até n elementos e descarta o excesso.
func pad(fields []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(fields) {
			out[i] = fields[i]
		} else {
			out[i] = "0"
		}
	}
	return out
}
