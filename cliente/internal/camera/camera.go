package camera

import (
	"math"

	"Solstice/shared/config"
	"Solstice/shared/physics"
	"Solstice/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController é uma câmera orbital com alvo suavizado.
type CameraController struct {
	RLCamera rl.Camera3D

	MinZoom      float32
	MaxZoom      float32
	MoveSpeed    float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0

	TargetLookAt mgl32.Vec3
	TargetZoom   float32
	AngleY       float32 // azimute (radianos)
	AngleX       float32 // elevação (radianos)

	CurrentLookAt mgl32.Vec3
	CurrentZoom   float32
}

// New cria uma câmera com as velocidades da configuração.
func New(cfg config.WindowConfig) *CameraController {
	c := &CameraController{
		MinZoom:      5.0,
		MaxZoom:      2000.0,
		MoveSpeed:    cfg.CameraSpeed,
		RotateSpeed:  cfg.CameraSensitivity,
		ZoomSpeed:    cfg.ZoomSpeed,
		SmoothFactor: 0.15,

		TargetZoom: 100.0,
		AngleY:     45.0 * rl.Deg2rad,
		AngleX:     -35.0 * rl.Deg2rad,
	}
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       cfg.FOV,
		Projection: rl.CameraPerspective,
	}
	c.apply()
	return c
}

// Focus enquadra a caixa inteira sem suavização.
func (c *CameraController) Focus(box physics.AABB) {
	if box.IsEmpty() {
		return
	}
	size := box.Size()
	radius := size.Len() * 0.5
	c.TargetLookAt = box.Center()
	c.CurrentLookAt = c.TargetLookAt
	c.TargetZoom = clamp(radius*2.2, c.MinZoom, c.MaxZoom)
	c.CurrentZoom = c.TargetZoom
	c.apply()
}

// Update interpola alvo e zoom. Deve ser chamado a cada frame.
func (c *CameraController) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt
	if factor > 1.0 {
		factor = 1.0
	}
	c.CurrentLookAt = c.CurrentLookAt.Add(c.TargetLookAt.Sub(c.CurrentLookAt).Mul(factor))
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)
	c.apply()
}

// apply recalcula a posição a partir dos ângulos e do zoom atuais.
func (c *CameraController) apply() {
	cosX := float32(math.Cos(float64(c.AngleX)))
	sinX := float32(math.Sin(float64(c.AngleX)))
	cosY := float32(math.Cos(float64(c.AngleY)))
	sinY := float32(math.Sin(float64(c.AngleY)))

	offset := mgl32.Vec3{cosX * sinY, -sinX, cosX * cosY}.Mul(c.CurrentZoom)
	pos := c.CurrentLookAt.Add(offset)

	c.RLCamera.Position = rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
	c.RLCamera.Target = rl.Vector3{X: c.CurrentLookAt.X(), Y: c.CurrentLookAt.Y(), Z: c.CurrentLookAt.Z()}
}

// Position retorna a posição atual da câmera.
func (c *CameraController) Position() mgl32.Vec3 {
	p := c.RLCamera.Position
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

// HandleInput processa roda do mouse, botão direito (órbita), WASD no plano e Q/E na vertical.
func (c *CameraController) HandleInput(dt float32) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.TargetZoom = clamp(c.TargetZoom*(1-wheel*c.ZoomSpeed*0.02), c.MinZoom, c.MaxZoom)
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		c.AngleY -= delta.X * c.RotateSpeed * 0.01
		c.AngleX = clamp(c.AngleX-delta.Y*c.RotateSpeed*0.01, -89.0*rl.Deg2rad, -5.0*rl.Deg2rad)
	}

	forward := c.TargetLookAt.Sub(c.Position())
	forward[1] = 0
	if forward.Len() == 0 {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up := mgl32.Vec3{0, 1, 0}

	var move mgl32.Vec3
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}
	if rl.IsKeyDown(rl.KeyE) {
		move = move.Add(up)
	}
	if rl.IsKeyDown(rl.KeyQ) {
		move = move.Sub(up)
	}
	if move.Len() == 0 {
		return
	}

	speed := c.MoveSpeed * (c.CurrentZoom / 100.0) * dt
	if rl.IsKeyDown(rl.KeyLeftShift) {
		speed *= 3
	}
	c.TargetLookAt = c.TargetLookAt.Add(move.Normalize().Mul(speed))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
