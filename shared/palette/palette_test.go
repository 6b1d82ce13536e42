package palette

import (
	"errors"
	"testing"
)

func TestPushDeduplicates(t *testing.T) {
	p := New()
	red := DefaultFlatMaterial().WithBaseColor(RGB(1, 0, 0))
	shiny := DefaultFlatMaterial().WithMetallic(0.75)

	if i := p.Push(red); i != 0 {
		t.Fatalf("Push(red) = %d, want 0", i)
	}
	if i := p.Push(shiny); i != 1 {
		t.Fatalf("Push(shiny) = %d, want 1", i)
	}
	if i := p.Push(DefaultFlatMaterial().WithBaseColor(RGB(1, 0, 0))); i != 0 {
		t.Fatalf("Push(red de novo) = %d, want 0", i)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if !p.Contains(shiny) || p.Contains(DefaultFlatMaterial()) {
		t.Errorf("Contains inconsistente")
	}
}

func TestCompileShape(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		p := New()
		for i := 0; i < n; i++ {
			p.Push(DefaultFlatMaterial().WithRoughness(float32(i) / float32(n)))
		}
		atlas := p.Compile()
		images := []struct {
			name string
			w, h int
			pix  int
		}{
			{"base", atlas.BaseColor.Rect.Dx(), atlas.BaseColor.Rect.Dy(), len(atlas.BaseColor.Pix)},
			{"emissive", atlas.Emissive.Rect.Dx(), atlas.Emissive.Rect.Dy(), len(atlas.Emissive.Pix)},
			{"mr", atlas.MetallicRoughness.Rect.Dx(), atlas.MetallicRoughness.Rect.Dy(), len(atlas.MetallicRoughness.Pix)},
		}
		for _, img := range images {
			if img.w != n || img.h != 1 || img.pix != n*4 {
				t.Errorf("n=%d %s: %dx%d pix=%d, want %dx1 pix=%d", n, img.name, img.w, img.h, img.pix, n, n*4)
			}
		}

		prev := float32(0)
		for i := 0; i < n; i++ {
			uv := atlas.UVPos(i)
			if uv.X() <= 0 || uv.X() >= 1 {
				t.Errorf("n=%d UVPos(%d).X = %v fora de (0,1)", n, i, uv.X())
			}
			if i > 0 && uv.X() <= prev {
				t.Errorf("n=%d UVPos(%d).X = %v não é crescente (anterior %v)", n, i, uv.X(), prev)
			}
			if uv.Y() != 0.5 {
				t.Errorf("n=%d UVPos(%d).Y = %v, want 0.5", n, i, uv.Y())
			}
			prev = uv.X()
		}
	}
}

func TestCompileEncodesChannels(t *testing.T) {
	p := New()
	p.Push(FlatMaterial{
		BaseColor: RGB(1, 0, 0),
		Emissive:  RGB(0, 0, 1),
		Metallic:  1,
		Roughness: 0.5,
	})
	atlas := p.Compile()

	if got := atlas.BaseColor.Pix[:4]; got[0] != 255 || got[1] != 0 || got[2] != 0 || got[3] != 255 {
		t.Errorf("base color = %v", got)
	}
	if got := atlas.Emissive.Pix[:4]; got[2] != 255 {
		t.Errorf("emissive = %v", got)
	}
	mr := atlas.MetallicRoughness.Pix[:4]
	if mr[0] != 0 || mr[1] != 128 || mr[2] != 255 || mr[3] != 255 {
		t.Errorf("metallic-roughness = %v, want [0 128 255 255]", mr)
	}
}

func TestCompileWidthPadsAndRejects(t *testing.T) {
	p := New()
	p.Push(DefaultFlatMaterial().WithMetallic(0.5))
	p.Push(DefaultFlatMaterial().WithMetallic(0.6))

	atlas, err := p.CompileWidth(4)
	if err != nil {
		t.Fatalf("CompileWidth(4): %v", err)
	}
	if atlas.Width() != 4 {
		t.Fatalf("Width() = %d, want 4", atlas.Width())
	}
	pad := atlas.BaseColor.Pix[12:16]
	if pad[0] != 255 || pad[1] != 255 || pad[2] != 255 {
		t.Errorf("texel de preenchimento = %v, want branco", pad)
	}

	if _, err := p.CompileWidth(1); !errors.Is(err, ErrPaletteTooWide) {
		t.Errorf("CompileWidth(1) err = %v, want ErrPaletteTooWide", err)
	}
}

func TestUVPosPanicsOutOfRange(t *testing.T) {
	p := New()
	p.Push(DefaultFlatMaterial())
	atlas := p.Compile()

	defer func() {
		if recover() == nil {
			t.Errorf("UVPos(1) deveria entrar em panic")
		}
	}()
	atlas.UVPos(1)
}

func TestIntoRenderMaterial(t *testing.T) {
	p := New()
	p.Push(DefaultFlatMaterial())
	mat := p.Compile().IntoRenderMaterial()

	if mat.BaseColor != White || mat.Emissive != White {
		t.Errorf("fatores de cor = %v/%v, want branco", mat.BaseColor, mat.Emissive)
	}
	if mat.Metallic != 1 || mat.Roughness != 1 {
		t.Errorf("metallic/roughness = %v/%v, want 1/1", mat.Metallic, mat.Roughness)
	}
	if mat.BaseColorTexture == nil || mat.EmissiveTexture == nil || mat.MetallicRoughnessTexture == nil {
		t.Errorf("texturas ausentes")
	}
}

func TestNamed(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"AMBER", true},
		{"GRAY", true},
		{"NOPE", false},
	}
	for _, tt := range tests {
		if _, ok := Named(tt.token); ok != tt.want {
			t.Errorf("Named(%q) ok = %v, want %v", tt.token, ok, tt.want)
		}
	}
}
