package memory

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.ImportacionRepository = (*ImportacionRepo)(nil)

// ImportacionRepo bitácora de importaciones en memoria.
type ImportacionRepo struct{ s *Store }

func (r *ImportacionRepo) Create(_ context.Context, imp *entity.Importacion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *imp
	r.s.importaciones = append(r.s.importaciones, &cp)
	return nil
}

// List más recientes primero.
func (r *ImportacionRepo) List(_ context.Context, limit, offset int) ([]*entity.Importacion, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := len(r.s.importaciones)
	out := []*entity.Importacion{}
	for i := total - 1 - max(offset, 0); i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		cp := *r.s.importaciones[i]
		out = append(out, &cp)
	}
	return out, total, nil
}
