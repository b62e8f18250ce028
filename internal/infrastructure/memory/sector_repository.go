package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo sectores económicos en memoria. Rechaza un segundo centinela con domain.ErrConflict,
// igual que el índice único parcial de PostgreSQL.
type SectorRepo struct{ s *Store }

func (r *SectorRepo) centinelaOcupado(exceptoID string) bool {
	for id, o := range r.s.sectores {
		if id != exceptoID && o.EsTodosLosSectores {
			return true
		}
	}
	return false
}

func (r *SectorRepo) Create(_ context.Context, sec *entity.SectorEconomico) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sectores[sec.ID]; ok {
		return domain.ErrConflict
	}
	if sec.EsTodosLosSectores && r.centinelaOcupado(sec.ID) {
		return domain.ErrConflict
	}
	cp := *sec
	r.s.sectores[sec.ID] = &cp
	return nil
}

func (r *SectorRepo) GetByID(_ context.Context, id string) (*entity.SectorEconomico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sec, ok := r.s.sectores[id]
	if !ok {
		return nil, nil
	}
	cp := *sec
	return &cp, nil
}

func (r *SectorRepo) GetTodosLosSectores(_ context.Context) (*entity.SectorEconomico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sec := range r.s.sectores {
		if sec.EsTodosLosSectores {
			cp := *sec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SectorRepo) Update(_ context.Context, sec *entity.SectorEconomico) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sectores[sec.ID]; !ok {
		return domain.ErrNotFound
	}
	if sec.EsTodosLosSectores && r.centinelaOcupado(sec.ID) {
		return domain.ErrConflict
	}
	cp := *sec
	r.s.sectores[sec.ID] = &cp
	return nil
}

func (r *SectorRepo) List(_ context.Context, f repository.SectorFilter) ([]*entity.SectorEconomico, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := entity.NormalizarTexto(f.Q)
	out := make([]*entity.SectorEconomico, 0, len(r.s.sectores))
	for _, sec := range r.s.sectores {
		if f.Activo != nil && sec.Activo != *f.Activo {
			continue
		}
		if q != "" && !strings.Contains(entity.NormalizarTexto(sec.Nombre), q) {
			continue
		}
		cp := *sec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}
