package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)

	if rl.IsKeyPressed(rl.KeyHome) {
		a.Cam.Focus(a.world.Bounds())
	}
}

// updateInput processa entradas de teclado gerais.
func (a *App) updateInput() {
	win := &a.Config.Window

	if rl.IsKeyPressed(rl.KeyF3) {
		win.ShowDebugInfo = !win.ShowDebugInfo
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		win.ShowColliders = !win.ShowColliders
		log.Printf("[App] Colisores visíveis: %v", win.ShowColliders)
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		win.WireframeMode = !win.WireframeMode
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		if a.State == StateViewing {
			a.State = StatePaused
			log.Println("[App] Pausado")
		} else if a.State == StatePaused {
			a.State = StateViewing
			log.Println("[App] Retomando")
		}
	}
}

// saveConfig grava a configuração atual, incluindo a seed sorteada.
func (a *App) saveConfig() {
	if err := a.Config.Save(); err != nil {
		log.Printf("[App] Erro ao salvar configurações: %v", err)
		return
	}
	log.Println("[App] Configurações salvas")
}
