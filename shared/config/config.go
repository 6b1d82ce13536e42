package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"Solstice/shared/util"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indica uma configuração rejeitada por Validate.
var ErrInvalidConfig = errors.New("configuração inválida")

// Config armazena as configurações do Solstice.
type Config struct {
	Window      WindowConfig      `json:"window" yaml:"window"`
	Generator   GeneratorConfig   `json:"generator" yaml:"generator"`
	Assets      AssetsConfig      `json:"assets" yaml:"assets"`
	Persistence PersistenceConfig `json:"persistence" yaml:"persistence"`
}

// WindowConfig configura o visualizador.
type WindowConfig struct {
	Width      int32  `json:"width" yaml:"width"`
	Height     int32  `json:"height" yaml:"height"`
	Title      string `json:"title" yaml:"title"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	TargetFPS  int32  `json:"target_fps" yaml:"target_fps"`

	// Câmera
	FOV               float32 `json:"fov" yaml:"fov"`
	CameraSpeed       float32 `json:"camera_speed" yaml:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity" yaml:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed" yaml:"zoom_speed"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info" yaml:"show_debug_info"`
	ShowColliders bool `json:"show_colliders" yaml:"show_colliders"`
	WireframeMode bool `json:"wireframe_mode" yaml:"wireframe_mode"`
}

// GeneratorConfig são os parâmetros da geração do terreno.
type GeneratorConfig struct {
	Radius     int         `json:"radius" yaml:"radius"`
	Bounds     util.Bounds `json:"bounds" yaml:"bounds"`
	BaseLayer  int         `json:"base_layer" yaml:"base_layer"`
	CellSize   float32     `json:"cell_size" yaml:"cell_size"`
	Seed       *uint32     `json:"seed,omitempty" yaml:"seed,omitempty"`
	SlabAxis   string      `json:"slab_axis" yaml:"slab_axis"`
	NoiseScale float64     `json:"noise_scale" yaml:"noise_scale"`
	WellMin    int         `json:"well_min" yaml:"well_min"`
	WellMax    int         `json:"well_max" yaml:"well_max"`
}

// AssetsConfig aponta os modelos dos blocos. Dir vazio usa os modelos embutidos.
// Source, quando presente, é baixado para Dir antes do carregamento.
type AssetsConfig struct {
	Dir      string `json:"dir" yaml:"dir"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Manifest string `json:"manifest" yaml:"manifest"`
	Workers  int    `json:"workers" yaml:"workers"`
}

// PersistenceConfig controla o registro das gerações em SQLite.
type PersistenceConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Solstice",
			TargetFPS: 60,

			FOV:               60.0,
			CameraSpeed:       40.0,
			CameraSensitivity: 0.3,
			ZoomSpeed:         5.0,

			ShowDebugInfo: true,
		},
		Generator: GeneratorConfig{
			Radius:     30,
			Bounds:     util.Bounds{X: 64, Y: 64, Z: 64},
			BaseLayer:  32,
			CellSize:   6.0,
			SlabAxis:   "x",
			NoiseScale: 0.15,
			WellMin:    25,
			WellMax:    50,
		},
		Assets: AssetsConfig{
			Manifest: "manifest.yaml",
			Workers:  4,
		},
		Persistence: PersistenceConfig{
			Path: "solstice.db",
		},
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega config.json ao lado do executável.
// Se o arquivo não existir ou for inválido, retorna as configurações padrão.
func Load() *Config {
	cfg, err := LoadFile(configPath())
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LoadFile carrega um arquivo JSON ou YAML sobre os valores padrão e valida o resultado.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler %s: %w", path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("falha ao parsear %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("falha ao parsear %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save salva as configurações em config.json ao lado do executável.
func (c *Config) Save() error {
	return c.SaveFile(configPath())
}

// SaveFile salva as configurações; a extensão escolhe JSON ou YAML.
func (c *Config) SaveFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("falha ao serializar configuração: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveSeed fixa a seed da execução: se ausente, sorteia uma vez.
func (g *GeneratorConfig) ResolveSeed() uint32 {
	if g.Seed == nil {
		s := rand.Uint32()
		g.Seed = &s
	}
	return *g.Seed
}

// Axis retorna o eixo das fatias de colisão.
func (g *GeneratorConfig) Axis() util.Axis {
	a, err := util.ParseAxis(g.SlabAxis)
	if err != nil {
		return util.AxisX
	}
	return a
}
