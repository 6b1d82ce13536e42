package palette

import (
	"image/color"
	"math"
)

// Color é uma cor RGBA linear com componentes em [0,1].
type Color struct {
	R, G, B, A float32
}

// RGB cria uma cor opaca.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA cria uma cor com alpha.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromRGB8 converte componentes 0-255 em uma cor opaca.
func FromRGB8(r, g, b uint8) Color {
	return RGB(float32(r)/255, float32(g)/255, float32(b)/255)
}

var (
	White = RGB(1, 1, 1)
	Black = RGB(0, 0, 0)
)

// NRGBA converte a cor para 8 bits por canal, arredondando e saturando.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: toByte(c.A)}
}

func toByte(v float32) uint8 {
	f := math.Round(float64(v) * 255)
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

// NamedColor associa um token a uma cor RGB.
type NamedColor struct {
	Token   string
	R, G, B uint8
}

// NamedColors são os tokens aceitos por Kd/Ke nos arquivos .mtl. GRAY também
// colore primitivas sem material.
var NamedColors = []NamedColor{
	{"AMBER", 255, 191, 0},
	{"ASH_GRAY", 178, 190, 181},
	{"BEIGE", 245, 245, 220},
	{"BLACK", 0, 0, 0},
	{"BRASS", 181, 166, 66},
	{"BROWN", 150, 75, 0},
	{"BURNT_UMBER", 138, 51, 36},
	{"CHARCOAL", 54, 69, 79},
	{"COPPER", 184, 115, 51},
	{"DARK_TAN", 145, 129, 81},
	{"GRAY", 128, 128, 128},
	{"GREEN", 0, 255, 0},
	{"IRON", 203, 205, 205},
	{"MOSS_GREEN", 173, 223, 173},
	{"PALE_BLUE", 175, 238, 238},
	{"RED", 255, 0, 0},
	{"SAND", 194, 178, 128},
	{"SILVER", 192, 192, 192},
	{"SLATE_GRAY", 112, 128, 144},
	{"WHITE", 255, 255, 255},
}

var namedColorMap map[string]NamedColor

func init() {
	namedColorMap = make(map[string]NamedColor, len(NamedColors))
	for _, c := range NamedColors {
		namedColorMap[c.Token] = c
	}
}

// Named retorna a cor de um token da tabela.
// Tokens desconhecidos retornam GRAY e false.
func Named(token string) (Color, bool) {
	if c, ok := namedColorMap[token]; ok {
		return FromRGB8(c.R, c.G, c.B), true
	}
	return FromRGB8(128, 128, 128), false
}
