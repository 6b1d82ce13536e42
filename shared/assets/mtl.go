package assets

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Solstice/shared/palette"
)

// DecodeMTL lê uma biblioteca de materiais Wavefront. Apenas os campos que
// um FlatMaterial representa são usados: Kd, Ke, Pm, Pr e d. Kd e Ke aceitam
// três componentes ou um token de palette.NamedColors ("Kd AMBER").
func DecodeMTL(r io.Reader) (map[string]palette.FlatMaterial, error) {
	out := make(map[string]palette.FlatMaterial)
	var (
		name    string
		current palette.FlatMaterial
	)
	flush := func() {
		if name != "" {
			out[name] = current
		}
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "newmtl":
			flush()
			if len(fields) < 2 {
				return nil, fmt.Errorf("mtl linha %d: newmtl sem nome", line)
			}
			name = fields[1]
			current = palette.DefaultFlatMaterial()
		case "Kd":
			current.BaseColor, err = parseColor(fields[1:], current.BaseColor.A)
		case "Ke":
			current.Emissive, err = parseColor(fields[1:], 1)
		case "Pm":
			current.Metallic, err = parseScalar(fields[1:])
		case "Pr":
			current.Roughness, err = parseScalar(fields[1:])
		case "d":
			current.BaseColor.A, err = parseScalar(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("mtl linha %d (%s): %w", line, fields[0], err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("falha ao ler mtl: %w", err)
	}
	flush()
	return out, nil
}

func parseColor(fields []string, alpha float32) (palette.Color, error) {
	if len(fields) == 1 {
		c, ok := palette.Named(strings.ToUpper(fields[0]))
		if !ok {
			return palette.Color{}, fmt.Errorf("cor desconhecida %q", fields[0])
		}
		c.A = alpha
		return c, nil
	}
	if len(fields) < 3 {
		return palette.Color{}, fmt.Errorf("esperava 3 componentes, recebeu %d", len(fields))
	}
	v, err := parseFloats(fields[:3])
	if err != nil {
		return palette.Color{}, err
	}
	return palette.RGBA(v[0], v[1], v[2], alpha), nil
}

func parseScalar(fields []string) (float32, error) {
	if len(fields) < 1 {
		return 0, fmt.Errorf("valor ausente")
	}
	v, err := parseFloats(fields[:1])
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func parseFloats(fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("número inválido %q", f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}
