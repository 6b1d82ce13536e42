package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"Solstice/shared/terrain"
	"Solstice/shared/util"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "solstice://config.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Validate confere a configuração contra o schema embutido e depois
// verifica se a grade comporta o terreno.
func (c *Config) Validate() error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("falha ao compilar schema de configuração: %w", err)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("falha ao serializar configuração: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("falha ao serializar configuração: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Assets.Source != "" && c.Assets.Dir == "" {
		return fmt.Errorf("%w: assets.source exige assets.dir como destino", ErrInvalidConfig)
	}

	return c.Generator.check()
}

func (g *GeneratorConfig) check() error {
	if _, err := util.ParseAxis(g.SlabAxis); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	b := g.Bounds
	if b.X < 2*g.Radius+1 || b.Z < 2*g.Radius+1 {
		return fmt.Errorf("%w: raio %d não cabe na grade %dx%d", ErrInvalidConfig, g.Radius, b.X, b.Z)
	}
	if g.BaseLayer-3 < 0 || g.BaseLayer+terrain.MaxSpireHeight >= b.Y {
		return fmt.Errorf("%w: camada base %d precisa de 3 camadas abaixo e %d acima (altura %d)",
			ErrInvalidConfig, g.BaseLayer, terrain.MaxSpireHeight, b.Y)
	}
	if g.WellMin > g.WellMax || g.WellMax >= b.Y {
		return fmt.Errorf("%w: faixa de poço [%d,%d] fora da grade (altura %d)", ErrInvalidConfig, g.WellMin, g.WellMax, b.Y)
	}
	if b.Volume() > 1<<28 {
		return fmt.Errorf("%w: grade com %d células", ErrInvalidConfig, b.Volume())
	}
	return nil
}

// TerrainParams converte a seção do gerador nos parâmetros do terreno.
// A seed é resolvida se ainda estiver ausente.
func (g *GeneratorConfig) TerrainParams() terrain.Params {
	return terrain.Params{
		Radius:     g.Radius,
		Bounds:     g.Bounds,
		BaseLayer:  g.BaseLayer,
		WellMin:    g.WellMin,
		WellMax:    g.WellMax,
		Seed:       g.ResolveSeed(),
		NoiseScale: g.NoiseScale,
	}
}
