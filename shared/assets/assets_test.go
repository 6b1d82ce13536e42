package assets

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"Solstice/shared/palette"
)

const quadOBJ = `# quad com dois materiais
mtllib quad.mtl
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
v 0 1 0
vn 0 1 0
usemtl vermelho
f 1//1 2//1 3//1 4//1
usemtl azul
f 1 2 5
`

const quadMTL = `newmtl vermelho
Kd 1 0 0
Pm 0.5
Pr 0.25

newmtl azul
Kd 0 0 1
Ke 0 0 0.5
`

func openString(files map[string]string) MaterialResolver {
	return func(name string) (io.ReadCloser, error) {
		s, ok := files[name]
		if !ok {
			return nil, errors.New("não encontrado: " + name)
		}
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestDecodeOBJGroupsByMaterial(t *testing.T) {
	mesh, err := DecodeOBJ(strings.NewReader(quadOBJ), openString(map[string]string{"quad.mtl": quadMTL}))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(mesh.Primitives) != 2 {
		t.Fatalf("len(Primitives) = %d, want 2", len(mesh.Primitives))
	}

	red := mesh.Primitives[0]
	if red.Geometry.VertexCount() != 4 || red.Geometry.TriangleCount() != 2 {
		t.Errorf("vermelho: %d vértices %d triângulos, want 4/2", red.Geometry.VertexCount(), red.Geometry.TriangleCount())
	}
	want := palette.DefaultFlatMaterial().WithBaseColor(palette.RGB(1, 0, 0)).WithMetallic(0.5).WithRoughness(0.25)
	if red.Material != want {
		t.Errorf("material vermelho = %+v, want %+v", red.Material, want)
	}

	blue := mesh.Primitives[1]
	if blue.Material.Emissive != palette.RGB(0, 0, 0.5) {
		t.Errorf("emissivo azul = %+v", blue.Material.Emissive)
	}
	// face sem vn recebe a normal calculada: (1,0,0)x(0,1,0) = (0,0,1)
	if n := blue.Geometry.Normals[:3]; n[0] != 0 || n[1] != 0 || n[2] != 1 {
		t.Errorf("normal calculada = %v, want [0 0 1]", n)
	}
	for _, p := range mesh.Primitives {
		if err := p.Geometry.Validate(); err != nil {
			t.Errorf("Validate(): %v", err)
		}
	}
}

func TestDecodeMTLNamedColors(t *testing.T) {
	src := "newmtl pedra\nKd slate_gray\nd 0.5\n\nnewmtl brasa\nKd BLACK\nKe AMBER\n"
	mats, err := DecodeMTL(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeMTL: %v", err)
	}
	slate, _ := palette.Named("SLATE_GRAY")
	if got := mats["pedra"].BaseColor; got.R != slate.R || got.G != slate.G || got.B != slate.B || got.A != 0.5 {
		t.Errorf("pedra BaseColor = %+v, want SLATE_GRAY com alpha 0.5", got)
	}
	amber, _ := palette.Named("AMBER")
	if got := mats["brasa"]; got.BaseColor != palette.Black || got.Emissive != amber {
		t.Errorf("brasa = %+v", got)
	}

	if _, err := DecodeMTL(strings.NewReader("newmtl x\nKd ROXO\n")); err == nil {
		t.Errorf("token desconhecido deveria falhar")
	}
}

func TestDecodeOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"sem faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"índice fora", "v 0 0 0\nv 1 0 0\nf 1 2 3\n"},
		{"face curta", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"número inválido", "v 0 x 0\n"},
	}
	for _, tt := range tests {
		if _, err := DecodeOBJ(strings.NewReader(tt.src), nil); err == nil {
			t.Errorf("%s: DecodeOBJ deveria falhar", tt.name)
		}
	}
}

func TestDecodeOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 0 1\nf -3 -2 -1\n"
	mesh, err := DecodeOBJ(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if mesh.Primitives[0].Material != FallbackMaterial() {
		t.Errorf("primitiva sem usemtl deveria usar o fallback")
	}
}

func TestModelName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"models/solid.obj", "solid"},
		{"spire_hollow.obj", "spire_hollow"},
		{"a/b/well.tar.gz", "well"},
		{"semext", "semext"},
	}
	for _, tt := range tests {
		if got := ModelName(tt.in); got != tt.want {
			t.Errorf("ModelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`{"models":{"b":"b.obj","a":"a.obj"}}`), ".json")
	if err != nil {
		t.Fatalf("ParseManifest json: %v", err)
	}
	if got := m.Paths(); len(got) != 2 || got[0] != "a.obj" {
		t.Errorf("Paths() = %v", got)
	}
	if _, err := ParseManifest([]byte("models:\n  a: a.obj\n"), ".yml"); err != nil {
		t.Errorf("ParseManifest yaml: %v", err)
	}
	if _, err := ParseManifest([]byte("models: {}\n"), ".yaml"); err == nil {
		t.Errorf("manifesto vazio deveria falhar")
	}
	if _, err := ParseManifest([]byte(""), ".toml"); err == nil {
		t.Errorf("extensão desconhecida deveria falhar")
	}
}

func waitState(t *testing.T, l *FileLoader, p string) LoadState {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s := l.State(p); s != Loading {
			return s
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("%s continua Loading", p)
	return Loading
}

func TestFileLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"m/quad.obj": {Data: []byte(quadOBJ)},
		"m/quad.mtl": {Data: []byte(quadMTL)},
		"m/ruim.obj": {Data: []byte("v 0 0 0\n")},
	}
	l := NewFileLoader(fsys, 2)
	defer l.Close()

	if s := l.State("m/quad.obj"); s != NotLoaded {
		t.Errorf("State antes do pedido = %v, want NotLoaded", s)
	}
	for _, p := range []string{"m/quad.obj", "m/ruim.obj", "m/faltando.obj", "m/quad.obj"} {
		l.Request(p)
	}

	if s := waitState(t, l, "m/quad.obj"); s != Loaded {
		t.Fatalf("quad: %v (%v)", s, l.Err("m/quad.obj"))
	}
	mesh, err := l.Mesh("m/quad.obj")
	if err != nil || mesh.Name != "quad" || len(mesh.Primitives) != 2 {
		t.Errorf("Mesh(quad) = %+v, %v", mesh, err)
	}

	for _, p := range []string{"m/ruim.obj", "m/faltando.obj"} {
		if s := waitState(t, l, p); s != Failed {
			t.Errorf("%s: %v, want Failed", p, s)
		}
		if _, err := l.Mesh(p); !errors.Is(err, ErrNotLoaded) {
			t.Errorf("Mesh(%s) err = %v, want ErrNotLoaded", p, err)
		}
	}
}

func TestDefaultModelsDecode(t *testing.T) {
	fsys := DefaultFS()
	m, err := LoadManifest(fsys, DefaultManifest)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	l := NewFileLoader(fsys, 4)
	defer l.Close()
	for _, p := range m.Paths() {
		l.Request(p)
	}
	l.Wait()
	for _, p := range m.Paths() {
		if s := l.State(p); s != Loaded {
			t.Errorf("%s: %v (%v)", p, s, l.Err(p))
		}
	}
}
