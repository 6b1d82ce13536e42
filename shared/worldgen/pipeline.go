package worldgen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"Solstice/shared/assets"
	"Solstice/shared/blocks"
	"Solstice/shared/config"
)

// ErrAssetFailed indica que um modelo de bloco falhou ao carregar.
var ErrAssetFailed = errors.New("falha ao carregar modelo de bloco")

// Status é o estado do pipeline de geração.
type Status uint8

const (
	NotStarted Status = iota
	Waiting
	Generating
	Done
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Waiting:
		return "Waiting"
	case Generating:
		return "Generating"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Pipeline conduz a geração a partir de um loop de ticks: pede os modelos,
// espera o carregamento, gera o mundo uma única vez.
type Pipeline struct {
	cfg    *config.GeneratorConfig
	loader assets.Loader
	paths  [blocks.Count]string

	status  Status
	catalog *blocks.Catalog
	output  *Output
}

// NewPipeline cria um pipeline para os modelos do manifesto.
func NewPipeline(cfg *config.GeneratorConfig, loader assets.Loader, manifest *assets.Manifest) (*Pipeline, error) {
	paths, err := blocks.Paths(manifest)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, loader: loader, paths: paths}, nil
}

// Status retorna o estado atual.
func (p *Pipeline) Status() Status {
	return p.status
}

// Output retorna o resultado; nil antes de Done.
func (p *Pipeline) Output() *Output {
	return p.output
}

// Catalog retorna o catálogo de blocos; nil antes de Generating.
func (p *Pipeline) Catalog() *blocks.Catalog {
	return p.catalog
}

// Tick avança o pipeline no máximo um estado. Um modelo Failed é fatal.
func (p *Pipeline) Tick() error {
	switch p.status {
	case NotStarted:
		for _, path := range p.paths {
			p.loader.Request(path)
		}
		log.Printf("[Pipeline] %d modelos solicitados", len(p.paths))
		p.status = Waiting

	case Waiting:
		pending := 0
		for _, path := range p.paths {
			switch p.loader.State(path) {
			case assets.Failed:
				return p.failure(path)
			case assets.Loaded:
			default:
				pending++
			}
		}
		if pending > 0 {
			return nil
		}
		catalog, err := blocks.FromLoader(p.loader, p.paths, p.cfg.CellSize)
		if err != nil {
			return fmt.Errorf("falha ao montar catálogo: %w", err)
		}
		p.catalog = catalog
		p.status = Generating
		log.Printf("[Pipeline] Modelos carregados, gerando terreno")

	case Generating:
		out, err := Generate(p.cfg, p.catalog)
		if err != nil {
			return fmt.Errorf("falha ao gerar terreno: %w", err)
		}
		p.output = out
		p.status = Done

	case Done:
	}
	return nil
}

func (p *Pipeline) failure(path string) error {
	type errorer interface{ Err(string) error }
	if e, ok := p.loader.(errorer); ok {
		if cause := e.Err(path); cause != nil {
			return fmt.Errorf("%w: %s: %v", ErrAssetFailed, path, cause)
		}
	}
	return fmt.Errorf("%w: %s", ErrAssetFailed, path)
}

// Run chama Tick a cada interval até Done, erro ou cancelamento do contexto.
// O cancelamento só é observado entre ticks.
func Run(ctx context.Context, p *Pipeline, interval time.Duration) (*Output, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := p.Tick(); err != nil {
			return nil, err
		}
		if p.Status() == Done {
			return p.Output(), nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
