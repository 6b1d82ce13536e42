package terrain

import "github.com/ojrac/opensimplex-go"

// Field identifica um dos campos de ruído do gerador.
type Field uint8

const (
	Elevation Field = iota
	SpireDensity
)

// DefaultNoiseScale é a frequência de amostragem dos campos.
const DefaultNoiseScale = 0.15

// Sampler amostra os campos de ruído. É puro em (seed, x, z).
type Sampler struct {
	elevation opensimplex.Noise
	spire     opensimplex.Noise
	scale     float64
}

// NewSampler cria os dois campos: elevação com seed e densidade de agulhas
// com seed/2.
func NewSampler(seed uint32, scale float64) *Sampler {
	if scale <= 0 {
		scale = DefaultNoiseScale
	}
	return &Sampler{
		elevation: opensimplex.New(int64(seed)),
		spire:     opensimplex.New(int64(seed / 2)),
		scale:     scale,
	}
}

// Sample retorna o valor do campo em (x, z), aproximadamente em [-1, 1].
func (s *Sampler) Sample(f Field, x, z int) float64 {
	fx, fz := float64(x)*s.scale, float64(z)*s.scale
	if f == SpireDensity {
		return s.spire.Eval2(fx, fz)
	}
	return s.elevation.Eval2(fx, fz)
}
