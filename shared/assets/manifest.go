package assets

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest associa nomes de tipos de bloco aos arquivos de modelo.
type Manifest struct {
	Models map[string]string `json:"models" yaml:"models"`
}

// Paths retorna os caminhos do manifesto em ordem estável.
func (m *Manifest) Paths() []string {
	names := make([]string, 0, len(m.Models))
	for name := range m.Models {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, m.Models[name])
	}
	return out
}

// LoadManifest lê um manifesto JSON ou YAML conforme a extensão.
func LoadManifest(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler manifesto %s: %w", name, err)
	}
	return ParseManifest(data, path.Ext(name))
}

// ParseManifest decodifica um manifesto; ext escolhe o formato (".json", ".yaml", ".yml").
func ParseManifest(data []byte, ext string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("falha ao parsear manifesto json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("falha ao parsear manifesto yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("formato de manifesto não suportado: %q", ext)
	}
	if len(m.Models) == 0 {
		return nil, fmt.Errorf("manifesto sem modelos")
	}
	for name, p := range m.Models {
		if p == "" {
			return nil, fmt.Errorf("modelo %q sem caminho", name)
		}
	}
	return &m, nil
}
