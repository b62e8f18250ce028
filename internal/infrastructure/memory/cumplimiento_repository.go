package memory

import (
	"context"
	"sort"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.CumplimientoRepository = (*CumplimientoRepo)(nil)

// CumplimientoRepo registros de cumplimiento en memoria, únicos por (empresa, norma).
type CumplimientoRepo struct{ s *Store }

func (r *CumplimientoRepo) Create(_ context.Context, c *entity.Cumplimiento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := par(c.EmpresaID, c.NormaID)
	if _, ok := r.s.porPar[k]; ok {
		return domain.ErrConflict
	}
	if _, ok := r.s.cumplimientos[c.ID]; ok {
		return domain.ErrConflict
	}
	cp := *c
	r.s.cumplimientos[c.ID] = &cp
	r.s.porPar[k] = c.ID
	return nil
}

func (r *CumplimientoRepo) Update(_ context.Context, c *entity.Cumplimiento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.cumplimientos[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *c
	cp.EmpresaID, cp.NormaID, cp.CreatedAt = prev.EmpresaID, prev.NormaID, prev.CreatedAt
	r.s.cumplimientos[c.ID] = &cp
	return nil
}

func (r *CumplimientoRepo) GetByID(_ context.Context, id string) (*entity.Cumplimiento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.cumplimientos[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CumplimientoRepo) GetByEmpresaNorma(_ context.Context, empresaID, normaID string) (*entity.Cumplimiento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.porPar[par(empresaID, normaID)]
	if !ok {
		return nil, nil
	}
	cp := *r.s.cumplimientos[id]
	return &cp, nil
}

func (r *CumplimientoRepo) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.Cumplimiento, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Cumplimiento{}
	for _, c := range r.s.cumplimientos {
		if c.EmpresaID == empresaID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CumplimientoRepo) AddHistorial(_ context.Context, h *entity.CumplimientoHistorial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cumplimientos[h.CumplimientoID]; !ok {
		return domain.ErrNotFound
	}
	cp := *h
	r.s.historial[h.CumplimientoID] = append(r.s.historial[h.CumplimientoID], &cp)
	return nil
}

// ListHistorial más reciente primero.
func (r *CumplimientoRepo) ListHistorial(_ context.Context, cumplimientoID string) ([]*entity.CumplimientoHistorial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	hs := r.s.historial[cumplimientoID]
	out := make([]*entity.CumplimientoHistorial, 0, len(hs))
	for i := len(hs) - 1; i >= 0; i-- {
		cp := *hs[i]
		out = append(out, &cp)
	}
	return out, nil
}
