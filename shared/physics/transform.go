package physics

import "github.com/go-gl/mathgl/mgl32"

// Transform é uma rotação seguida de uma translação.
type Transform struct {
	Rotation    mgl32.Quat
	Translation mgl32.Vec3
}

// Identity retorna a transformação neutra.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// FromTranslation cria uma transformação apenas de translação.
func FromTranslation(v mgl32.Vec3) Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Translation: v}
}

// FromRotation cria uma transformação apenas de rotação.
func FromRotation(q mgl32.Quat) Transform {
	return Transform{Rotation: q.Normalize()}
}

// Apply leva um ponto do espaço local para o espaço da transformação.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// Compose aplica delta sobre t: rotações multiplicadas e normalizadas,
// translações somadas sem rotacionar o deslocamento de t.
func (t Transform) Compose(delta Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(delta.Rotation).Normalize(),
		Translation: t.Translation.Add(delta.Translation),
	}
}

// Matrix retorna a matriz 4x4 equivalente.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).Mul4(t.Rotation.Mat4())
}

// Mul retorna a composição rígida t * local: local é expresso no espaço de t.
func (t Transform) Mul(local Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(local.Rotation).Normalize(),
		Translation: t.Rotation.Rotate(local.Translation).Add(t.Translation),
	}
}
