package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"Solstice/shared/assets"
	"Solstice/shared/config"
	"Solstice/shared/persistence"
	"Solstice/shared/physics"
	"Solstice/shared/pkg/artifact"
	"Solstice/shared/worldgen"
)

func main() {
	configPath := flag.String("config", "", "Arquivo de configuração (JSON ou YAML)")
	seed := flag.Int64("seed", -1, "Seed do terreno (padrão: aleatória)")
	radius := flag.Int("radius", 0, "Raio da ilha em células")
	assetsDir := flag.String("assets", "", "Diretório com os modelos dos blocos (padrão: embutidos)")
	assetsSrc := flag.String("assets-src", "", "Origem remota dos modelos, baixada para -assets (ex.: git::https://...)")
	out := flag.String("out", "", "Arquivo de saída do artefato (.sol)")
	persist := flag.Bool("persist", false, "Registrar a geração no banco SQLite")
	dbPath := flag.String("db", "", "Caminho do banco SQLite")
	tick := flag.Duration("tick", 10*time.Millisecond, "Intervalo entre ticks do pipeline")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("[Gerador] Solstice, gerador headless")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[Gerador] %v", err)
	}
	if *seed >= 0 {
		s := uint32(*seed)
		cfg.Generator.Seed = &s
	}
	if *radius > 0 {
		cfg.Generator.Radius = *radius
	}
	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
	}
	if *assetsSrc != "" {
		cfg.Assets.Source = *assetsSrc
	}
	if *persist {
		cfg.Persistence.Enabled = true
	}
	if *dbPath != "" {
		cfg.Persistence.Path = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Gerador] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	output, err := generate(ctx, cfg, *tick)
	if err != nil {
		log.Fatalf("[Gerador] %v", err)
	}
	log.Printf("[Gerador] %s", output.Stats)

	world := physics.NewStaticWorld()
	if err := output.Register(world); err != nil {
		log.Fatalf("[Gerador] falha ao registrar colisores: %v", err)
	}
	world.LogSummary()

	data := artifact.Encode(output)
	if *out != "" {
		if err := os.WriteFile(*out, data, 0644); err != nil {
			log.Fatalf("[Gerador] falha ao gravar artefato: %v", err)
		}
		log.Printf("[Gerador] Artefato gravado em %s (%d bytes)", *out, len(data))
	}

	if cfg.Persistence.Enabled {
		if err := save(cfg, output, data); err != nil {
			log.Fatalf("[Gerador] %v", err)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

// generate carrega os modelos e conduz o pipeline até Done.
func generate(ctx context.Context, cfg *config.Config, tick time.Duration) (*worldgen.Output, error) {
	if cfg.Assets.Source != "" {
		if err := assets.Fetch(ctx, cfg.Assets.Source, cfg.Assets.Dir); err != nil {
			return nil, err
		}
	}

	var fsys fs.FS
	if cfg.Assets.Dir == "" {
		fsys = assets.DefaultFS()
	} else {
		fsys = os.DirFS(cfg.Assets.Dir)
	}

	manifest, err := assets.LoadManifest(fsys, cfg.Assets.Manifest)
	if err != nil {
		return nil, err
	}

	loader := assets.NewFileLoader(fsys, cfg.Assets.Workers)
	defer loader.Close()

	log.Printf("[Gerador] Seed: %d", cfg.Generator.ResolveSeed())
	pipeline, err := worldgen.NewPipeline(&cfg.Generator, loader, manifest)
	if err != nil {
		return nil, err
	}
	return worldgen.Run(ctx, pipeline, tick)
}

func save(cfg *config.Config, output *worldgen.Output, data []byte) error {
	store, err := persistence.Open(cfg.Persistence.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.SaveRun(&cfg.Generator, output, data)
	if err != nil {
		return err
	}

	if prev, err := store.RunsByDigest(output.Stats.GridDigest); err == nil && len(prev) > 1 {
		log.Printf("[Gerador] Grade idêntica a %d geração(ões) anterior(es)", len(prev)-1)
	}
	log.Printf("[Gerador] Geração salva como run #%d em %s", run.ID, cfg.Persistence.Path)
	return nil
}
