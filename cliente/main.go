package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"Solstice/cliente/internal/app"
	"Solstice/shared/config"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	configPath := flag.String("config", "", "Arquivo de configuração (JSON ou YAML)")
	seed := flag.Int64("seed", -1, "Seed do terreno (padrão: aleatória)")
	radius := flag.Int("radius", 0, "Raio da ilha em células")
	assetsDir := flag.String("assets", "", "Diretório com os modelos dos blocos (padrão: embutidos)")
	persist := flag.Bool("persist", false, "Registrar a geração no banco SQLite")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	colliders := flag.Bool("colliders", false, "Mostrar colisores")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	f, err := os.OpenFile("debug_solstice.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO SOLSTICE ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║          Solstice v0.1.0             ║")
	log.Println("║   Gerador de terreno procedural      ║")
	log.Println("╚══════════════════════════════════════╝")

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("[Solstice] %v", err)
		}
	} else {
		cfg = config.Load()
	}

	// Flags sobrescrevem o arquivo de configuração
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
	if *persist {
		cfg.Persistence.Enabled = true
	}
	if *fullscreen {
		cfg.Window.Fullscreen = true
	}
	if *debug {
		cfg.Window.ShowDebugInfo = true
	}
	if *colliders {
		cfg.Window.ShowColliders = true
	}
	if *width > 0 {
		cfg.Window.Width = int32(*width)
	}
	if *height > 0 {
		cfg.Window.Height = int32(*height)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Solstice] %v", err)
	}

	application := app.New(cfg)
	application.Run()
}
