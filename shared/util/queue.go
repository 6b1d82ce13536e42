package util

import "sync"

// UniqueQueue é uma fila FIFO protegida por mutex em que cada chave aparece
// no máximo uma vez enquanto pendente. Uma chave retirada pode voltar a ser
// enfileirada.
type UniqueQueue[K comparable] struct {
	mu      sync.Mutex
	keys    []K
	pending map[K]struct{}
}

func NewUniqueQueue[K comparable]() *UniqueQueue[K] {
	return &UniqueQueue[K]{pending: make(map[K]struct{})}
}

// Push enfileira k e informa se ela ainda não estava pendente.
func (q *UniqueQueue[K]) Push(k K) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, dup := q.pending[k]; dup {
		return false
	}
	q.pending[k] = struct{}{}
	q.keys = append(q.keys, k)
	return true
}

// Pop retira a chave mais antiga; ok é false com a fila vazia.
func (q *UniqueQueue[K]) Pop() (k K, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.keys) == 0 {
		return k, false
	}
	k = q.keys[0]
	q.keys = q.keys[1:]
	delete(q.pending, k)
	return k, true
}
