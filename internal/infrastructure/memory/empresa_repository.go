package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo empresas en memoria.
type EmpresaRepo struct{ s *Store }

func (r *EmpresaRepo) Create(_ context.Context, e *entity.Empresa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.empresas[e.ID]; ok {
		return domain.ErrConflict
	}
	if e.NIT != nil {
		for _, o := range r.s.empresas {
			if o.NIT != nil && *o.NIT == *e.NIT {
				return domain.ErrConflict
			}
		}
	}
	cp := *e
	r.s.empresas[e.ID] = &cp
	return nil
}

func (r *EmpresaRepo) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.empresas[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *EmpresaRepo) GetByNIT(_ context.Context, nit string) (*entity.Empresa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.empresas {
		if e.NIT != nil && *e.NIT == nit {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *EmpresaRepo) Update(_ context.Context, e *entity.Empresa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.empresas[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if e.NIT != nil {
		for id, o := range r.s.empresas {
			if id != e.ID && o.NIT != nil && *o.NIT == *e.NIT {
				return domain.ErrConflict
			}
		}
	}
	cp := *e
	r.s.empresas[e.ID] = &cp
	return nil
}

func (r *EmpresaRepo) List(_ context.Context, f repository.EmpresaFilter) ([]*entity.Empresa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := entity.NormalizarTexto(f.Q)
	out := make([]*entity.Empresa, 0, len(r.s.empresas))
	for _, e := range r.s.empresas {
		if f.Activo != nil && e.Activo != *f.Activo {
			continue
		}
		if q != "" && !strings.Contains(entity.NormalizarTexto(e.Nombre), q) &&
			(e.NIT == nil || !strings.Contains(*e.NIT, f.Q)) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}
