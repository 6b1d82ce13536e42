package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"Solstice/shared/util"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"raio zero", func(c *Config) { c.Generator.Radius = 0 }},
		{"célula zero", func(c *Config) { c.Generator.CellSize = 0 }},
		{"eixo inválido", func(c *Config) { c.Generator.SlabAxis = "w" }},
		{"raio maior que a grade", func(c *Config) { c.Generator.Radius = 40 }},
		{"base sem espaço abaixo", func(c *Config) { c.Generator.BaseLayer = 2 }},
		{"base sem espaço acima", func(c *Config) { c.Generator.BaseLayer = 60 }},
		{"poço fora", func(c *Config) { c.Generator.WellMax = 64 }},
		{"poço invertido", func(c *Config) { c.Generator.WellMin = 51 }},
		{"workers zero", func(c *Config) { c.Assets.Workers = 0 }},
		{"source sem dir", func(c *Config) { c.Assets.Source = "git::https://example.com/models.git" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.edit(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidConfig", tt.name, err)
		}
	}
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solstice.yaml")
	data := []byte(`generator:
  radius: 10
  bounds: {x: 24, y: 64, z: 24}
  seed: 42
  slab_axis: z
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Generator.Radius != 10 || cfg.Generator.Bounds != (util.Bounds{X: 24, Y: 64, Z: 24}) {
		t.Errorf("gerador = %+v", cfg.Generator)
	}
	if cfg.Generator.Seed == nil || *cfg.Generator.Seed != 42 {
		t.Errorf("seed = %v, want 42", cfg.Generator.Seed)
	}
	if cfg.Generator.Axis() != util.AxisZ {
		t.Errorf("Axis() = %v, want z", cfg.Generator.Axis())
	}
	// campos ausentes mantêm o padrão
	if cfg.Generator.CellSize != 6 || cfg.Window.Width != 1280 {
		t.Errorf("padrões perdidos: cell=%v width=%v", cfg.Generator.CellSize, cfg.Window.Width)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.json", "c.yml"} {
		cfg := DefaultConfig()
		seed := uint32(7)
		cfg.Generator.Seed = &seed
		cfg.Persistence.Enabled = true

		path := filepath.Join(dir, name)
		if err := cfg.SaveFile(path); err != nil {
			t.Fatalf("%s: SaveFile: %v", name, err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("%s: LoadFile: %v", name, err)
		}
		if got.Generator.Seed == nil || *got.Generator.Seed != 7 || !got.Persistence.Enabled {
			t.Errorf("%s: configuração relida = %+v", name, got)
		}
	}
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.json")
	if err := os.WriteFile(path, []byte(`{"generator":{"radius":-1}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadFile err = %v, want ErrInvalidConfig", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "nao_existe.json")); err == nil {
		t.Errorf("LoadFile de arquivo inexistente deveria falhar")
	}
}

func TestResolveSeed(t *testing.T) {
	g := DefaultConfig().Generator
	first := g.ResolveSeed()
	if g.Seed == nil || g.ResolveSeed() != first {
		t.Errorf("ResolveSeed não fixou a seed")
	}
	seed := uint32(99)
	g.Seed = &seed
	if g.ResolveSeed() != 99 {
		t.Errorf("ResolveSeed ignorou a seed configurada")
	}
}
