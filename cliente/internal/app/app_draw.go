package app

import (
	"fmt"
	"log"

	"Solstice/shared/blocks"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

	if a.State == StateLoading {
		a.drawLoadingScreen()
	} else {
		a.drawScene()
		a.drawHUD()

		if a.State == StatePaused {
			a.drawPauseMenu()
		}
	}

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	if a.output != nil {
		rl.DrawGrid(64, a.output.CellSize)
	}

	a.renderer.Draw(a.Cam.RLCamera)
	if a.Config.Window.WireframeMode {
		a.renderer.DrawWires()
	}
	if a.Config.Window.ShowColliders {
		a.renderer.DrawColliders(a.world)
	}

	rl.EndMode3D()
}

// drawHUD desenha a interface sobreposta.
func (a *App) drawHUD() {
	if !a.Config.Window.ShowDebugInfo || a.output == nil {
		return
	}
	stats := a.output.Stats

	width := int32(340)
	height := int32(260)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)
	rl.DrawText(fmt.Sprintf("Seed: %d", stats.Seed), x+160, y+12, 16, rl.Gold)

	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	rl.DrawText("TERRENO", x+10, y+45, 12, rl.Gray)
	line := y + 60
	for _, bt := range blocks.All() {
		rl.DrawText(fmt.Sprintf("%-13s %d", bt.String(), stats.Blocks[bt]), x+10, line, 14, rl.White)
		line += 16
	}
	rl.DrawText(fmt.Sprintf("Vértices: %d  Triângulos: %d", stats.Vertices, stats.Triangles), x+10, line+4, 14, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Fatias: %d/%d  Formas: %d", stats.NonEmptySlabs, stats.Slabs, stats.ColliderShapes), x+10, line+20, 14, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Materiais: %d  Gerado em %s", stats.PaletteSize, stats.Elapsed), x+10, line+36, 14, rl.LightGray)

	rl.DrawLine(x+10, line+58, x+width-10, line+58, rl.NewColor(100, 100, 100, 100))
	rl.DrawText("CONTROLES", x+10, line+66, 12, rl.Gray)
	rl.DrawText("WASD/QE: Mover | Scroll: Zoom | Dir: Girar", x+10, line+80, 14, rl.LightGray)

	flags := ""
	if a.Config.Window.ShowColliders {
		flags += " [COLISORES]"
	}
	if a.Config.Window.WireframeMode {
		flags += " [WIREFRAME]"
	}
	rl.DrawText("F3: HUD | F4: Colisores | F5: Wire"+flags, x+10, line+98, 14, rl.SkyBlue)

	title := "Solstice"
	titleWidth := rl.MeasureText(title, 18)
	rl.DrawText(title,
		int32(rl.GetScreenWidth())-titleWidth-20, int32(rl.GetScreenHeight())-30,
		18, rl.NewColor(200, 200, 200, 150))
}

// drawPauseMenu desenha o menu de pausa.
func (a *App) drawPauseMenu() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(0, 0, 0, 150))

	panelWidth := int32(400)
	panelHeight := int32(260)
	panelX := (screenWidth - panelWidth) / 2
	panelY := (screenHeight - panelHeight) / 2

	rl.DrawRectangle(panelX, panelY, panelWidth, panelHeight, rl.NewColor(30, 30, 35, 240))
	rl.DrawRectangleLines(panelX, panelY, panelWidth, panelHeight, rl.Gold)

	title := "PAUSADO"
	titleWidth := rl.MeasureText(title, 30)
	rl.DrawText(title, panelX+(panelWidth-titleWidth)/2, panelY+25, 30, rl.Gold)

	buttonX := panelX + 50
	buttonWidth := panelWidth - 100
	buttonHeight := int32(40)

	if a.drawButton(buttonX, panelY+90, buttonWidth, buttonHeight, "RETOMAR (ESC)", rl.Green) {
		a.State = StateViewing
	}
	if a.drawButton(buttonX, panelY+145, buttonWidth, buttonHeight, "SALVAR CONFIGURAÇÃO", rl.Gray) {
		a.saveConfig()
	}
	if a.drawButton(buttonX, panelY+200, buttonWidth, buttonHeight, "SAIR", rl.Red) {
		log.Println("[App] Encerrando aplicação pelo menu.")
		a.quit = true
	}
}

// drawButton desenha um botão genérico com hover e retorna true se clicado.
func (a *App) drawButton(x, y, w, h int32, text string, color rl.Color) bool {
	mousePos := rl.GetMousePosition()
	isHover := mousePos.X >= float32(x) && mousePos.X <= float32(x+w) &&
		mousePos.Y >= float32(y) && mousePos.Y <= float32(y+h)

	drawColor := color
	if isHover {
		drawColor.R += 30
		drawColor.G += 30
		drawColor.B += 30
	}

	rl.DrawRectangle(x, y, w, h, rl.NewColor(50, 50, 50, 255))
	rl.DrawRectangleLines(x, y, w, h, drawColor)

	textWidth := rl.MeasureText(text, 18)
	rl.DrawText(text, x+(w-textWidth)/2, y+(h-18)/2, 18, rl.White)

	return isHover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

func (a *App) drawLoadingScreen() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(20, 20, 25, 255))

	title := "SOLSTICE"
	titleWidth := rl.MeasureText(title, 40)
	rl.DrawText(title, (screenWidth-titleWidth)/2, screenHeight/2-60, 40, rl.Gold)

	barWidth := int32(400)
	barHeight := int32(30)
	barX := (screenWidth - barWidth) / 2
	barY := screenHeight/2 + 20

	rl.DrawRectangle(barX, barY, barWidth, barHeight, rl.DarkGray)
	rl.DrawRectangle(barX, barY, int32(float32(barWidth)*a.LoadingProgress), barHeight, rl.Orange)
	rl.DrawRectangleLines(barX, barY, barWidth, barHeight, rl.White)

	statusWidth := rl.MeasureText(a.LoadingStatus, 18)
	rl.DrawText(a.LoadingStatus, (screenWidth-statusWidth)/2, barY+45, 18, rl.LightGray)

	if seed := a.Config.Generator.Seed; seed != nil {
		tip := fmt.Sprintf("Seed %d, raio %d", *seed, a.Config.Generator.Radius)
		tipWidth := rl.MeasureText(tip, 16)
		rl.DrawText(tip, (screenWidth-tipWidth)/2, screenHeight-50, 16, rl.Gray)
	}
}
