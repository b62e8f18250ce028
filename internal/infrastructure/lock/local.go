// Package lock implementa matriz.Locker: en proceso (una instancia) y en Redis (varias instancias).
package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
)

// Local candados por clave dentro del proceso.
type Local struct {
	mu     sync.Mutex
	tomado map[string]bool
}

// NewLocal crea un Local vacío.
func NewLocal() *Local {
	return &Local{tomado: make(map[string]bool)}
}

// TryLock toma la clave sin esperar. Si ya está tomada devuelve domain.ErrConflict.
func (l *Local) TryLock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tomado[key] {
		return nil, fmt.Errorf("candado %s: %w", key, domain.ErrConflict)
	}
	l.tomado[key] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.tomado, key)
			l.mu.Unlock()
		})
	}, nil
}
