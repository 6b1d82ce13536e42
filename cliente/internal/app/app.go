package app

import (
	"log"

	"Solstice/cliente/internal/camera"
	"Solstice/cliente/internal/render"
	"Solstice/shared/assets"
	"Solstice/shared/config"
	"Solstice/shared/persistence"
	"Solstice/shared/physics"
	"Solstice/shared/worldgen"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateLoading AppState = iota // Carregando modelos e gerando o terreno
	StateViewing                 // Visualizando o terreno
	StatePaused                  // Pausado
)

// App é a aplicação principal do Solstice.
type App struct {
	Config *config.Config
	State  AppState

	Cam *camera.CameraController

	loader     assets.Loader
	fileLoader *assets.FileLoader
	rlLoader   *render.RaylibLoader
	pipeline   *worldgen.Pipeline
	renderer   *render.Renderer
	world      *physics.StaticWorld
	output     *worldgen.Output
	store      *persistence.Store
	modelPaths []string

	frameCount int
	quit       bool

	LoadingStatus    string
	LoadingProgress  float32
	LoadingStartTime float64
}

// New cria uma nova instância da aplicação.
func New(cfg *config.Config) *App {
	return &App{
		Config:          cfg,
		State:           StateLoading,
		LoadingStatus:   "Carregando modelos...",
		LoadingProgress: 0.05,
		world:           physics.NewStaticWorld(),
	}
}

// Run inicia o loop principal da aplicação.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	win := a.Config.Window
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(win.Width, win.Height, win.Title)
	rl.SetTraceLogLevel(rl.LogWarning)

	if win.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(win.TargetFPS)
	rl.SetExitKey(0)

	a.Cam = camera.New(win)
	a.renderer = render.NewRenderer()
	a.LoadingStartTime = rl.GetTime()

	log.Println("[Solstice] Janela inicializada com sucesso")
	log.Printf("[Solstice] Resolução: %dx%d", win.Width, win.Height)

	if err := a.setupPipeline(); err != nil {
		log.Fatalf("[App] %v", err)
	}

	for !rl.WindowShouldClose() && !a.quit {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++

	switch a.State {
	case StateLoading:
		a.tickPipeline()
	case StateViewing:
		a.updateCamera()
		a.updateInput()
	case StatePaused:
		a.updateInput()
	}
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando aplicação...")

	a.renderer.Unload()
	if a.fileLoader != nil {
		a.fileLoader.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("[App] Erro ao fechar banco: %v", err)
		}
	}
}
