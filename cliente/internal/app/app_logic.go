package app

import (
	"context"
	"io/fs"
	"log"
	"os"

	"Solstice/cliente/internal/render"
	"Solstice/shared/assets"
	"Solstice/shared/persistence"
	"Solstice/shared/pkg/artifact"
	"Solstice/shared/worldgen"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// modelsPerFrame limita quantos modelos o RaylibLoader importa por frame.
const modelsPerFrame = 2

// setupPipeline escolhe o loader e cria o pipeline de geração.
// Sem diretório configurado, os modelos embutidos são decodificados em segundo plano.
func (a *App) setupPipeline() error {
	cfg := a.Config.Assets
	if cfg.Source != "" {
		if err := assets.Fetch(context.Background(), cfg.Source, cfg.Dir); err != nil {
			return err
		}
	}

	var fsys fs.FS
	if cfg.Dir == "" {
		fsys = assets.DefaultFS()
		a.fileLoader = assets.NewFileLoader(fsys, cfg.Workers)
		a.loader = a.fileLoader
	} else {
		fsys = os.DirFS(cfg.Dir)
		a.rlLoader = render.NewRaylibLoader(cfg.Dir)
		a.loader = a.rlLoader
	}

	manifest, err := assets.LoadManifest(fsys, cfg.Manifest)
	if err != nil {
		return err
	}
	a.modelPaths = manifest.Paths()

	seed := a.Config.Generator.ResolveSeed()
	log.Printf("[App] Seed: %d", seed)

	a.pipeline, err = worldgen.NewPipeline(&a.Config.Generator, a.loader, manifest)
	return err
}

// tickPipeline avança o pipeline um estado por frame.
func (a *App) tickPipeline() {
	if a.rlLoader != nil {
		a.rlLoader.Process(modelsPerFrame)
	}

	if err := a.pipeline.Tick(); err != nil {
		log.Fatalf("[App] %v", err)
	}

	switch a.pipeline.Status() {
	case worldgen.Waiting:
		a.LoadingStatus = "Carregando modelos..."
		a.LoadingProgress = 0.1 + 0.4*a.loadedFraction()
	case worldgen.Generating:
		a.LoadingStatus = "Gerando terreno..."
		a.LoadingProgress = 0.6
	case worldgen.Done:
		a.onGenerated(a.pipeline.Output())
	}
}

func (a *App) loadedFraction() float32 {
	if len(a.modelPaths) == 0 {
		return 0
	}
	loaded := 0
	for _, p := range a.modelPaths {
		if a.loader.State(p) == assets.Loaded {
			loaded++
		}
	}
	return float32(loaded) / float32(len(a.modelPaths))
}

// onGenerated registra os colisores, envia a malha para a GPU e enquadra a câmera.
func (a *App) onGenerated(out *worldgen.Output) {
	a.output = out
	log.Printf("[App] %s", out.Stats)

	if err := out.Register(a.world); err != nil {
		log.Fatalf("[App] falha ao registrar colisores: %v", err)
	}
	a.world.LogSummary()

	a.renderer.Upload(out)
	a.Cam.Focus(a.world.Bounds())

	if a.Config.Persistence.Enabled {
		a.persist(out)
	}

	log.Printf("[App] Terreno pronto em %.2fs", rl.GetTime()-a.LoadingStartTime)
	a.LoadingProgress = 1
	a.State = StateViewing
}

func (a *App) persist(out *worldgen.Output) {
	store, err := persistence.Open(a.Config.Persistence.Path)
	if err != nil {
		log.Printf("[App] Persistência desativada: %v", err)
		return
	}
	a.store = store

	run, err := store.SaveRun(&a.Config.Generator, out, artifact.Encode(out))
	if err != nil {
		log.Printf("[App] Falha ao salvar geração: %v", err)
		return
	}
	log.Printf("[App] Geração salva como run #%d", run.ID)
}
