package physics

import (
	"fmt"
	"log"
	"sync"
)

// Registration é um colisor estático registrado no mundo.
type Registration struct {
	ID        int
	Transform Transform
	Collider  *Compound
	Groups    Groups
	Bounds    AABB
}

// StaticWorld guarda colisores estáticos e responde consultas de broad-phase.
type StaticWorld struct {
	mu   sync.RWMutex
	regs []Registration
}

// NewStaticWorld cria um mundo vazio.
func NewStaticWorld() *StaticWorld {
	return &StaticWorld{}
}

// Register adiciona um colisor estático e retorna seu ID.
func (w *StaticWorld) Register(t Transform, c *Compound, g Groups) (int, error) {
	if c == nil {
		return -1, fmt.Errorf("falha ao registrar colisor: %w", ErrEmptyCompound)
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	id := len(w.regs)
	w.regs = append(w.regs, Registration{
		ID:        id,
		Transform: t,
		Collider:  c,
		Groups:    g,
		Bounds:    c.AABB(t),
	})
	return id, nil
}

// Len retorna o número de colisores registrados.
func (w *StaticWorld) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.regs)
}

// ShapeCount soma as formas de todos os compostos.
func (w *StaticWorld) ShapeCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, r := range w.regs {
		n += r.Collider.Len()
	}
	return n
}

// Registrations retorna uma cópia dos registros.
func (w *StaticWorld) Registrations() []Registration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Registration, len(w.regs))
	copy(out, w.regs)
	return out
}

// Bounds retorna a caixa envolvente de todos os colisores.
func (w *StaticWorld) Bounds() AABB {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := EmptyAABB()
	for _, r := range w.regs {
		out = out.Union(r.Bounds)
	}
	return out
}

// Query retorna os IDs dos colisores cuja caixa cruza box e cujos grupos
// interagem com g.
func (w *StaticWorld) Query(box AABB, g Groups) []int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var hits []int
	for _, r := range w.regs {
		if r.Groups.Interacts(g) && r.Bounds.Intersects(box) {
			hits = append(hits, r.ID)
		}
	}
	return hits
}

// LogSummary registra um resumo do mundo no log.
func (w *StaticWorld) LogSummary() {
	b := w.Bounds()
	log.Printf("[Fisica] %d colisores estáticos, %d formas, limites %v -> %v", w.Len(), w.ShapeCount(), b.Min, b.Max)
}
