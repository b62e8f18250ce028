package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.NormaRepository = (*NormaRepo)(nil)

// NormaRepo catálogo de normas en memoria con índice único por clave natural.
type NormaRepo struct{ s *Store }

func (r *NormaRepo) Create(_ context.Context, n *entity.Norma) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := n.Clave().String()
	if _, ok := r.s.claves[k]; ok {
		return domain.ErrConflict
	}
	if _, ok := r.s.normas[n.ID]; ok {
		return domain.ErrConflict
	}
	cp := *n
	r.s.normas[n.ID] = &cp
	r.s.claves[k] = n.ID
	return nil
}

func (r *NormaRepo) Update(_ context.Context, n *entity.Norma) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.normas[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if prev.Clave() != n.Clave() {
		return domain.NewValidationError("clave_natural", "la identidad legal de la norma no se puede modificar")
	}
	cp := *n
	r.s.normas[n.ID] = &cp
	return nil
}

func (r *NormaRepo) GetByID(_ context.Context, id string) (*entity.Norma, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.normas[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *NormaRepo) GetByClave(_ context.Context, k entity.ClaveNatural) (*entity.Norma, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.claves[k.String()]
	if !ok {
		return nil, nil
	}
	cp := *r.s.normas[id]
	return &cp, nil
}

func (r *NormaRepo) Claves(_ context.Context) (map[string]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]string, len(r.s.claves))
	for k, id := range r.s.claves {
		out[k] = id
	}
	return out, nil
}

func (r *NormaRepo) List(ctx context.Context, f repository.NormaFilter, limit, offset int) ([]*entity.Norma, int, error) {
	all, err := r.ListAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	desde := min(max(offset, 0), total)
	hasta := total
	if limit > 0 {
		hasta = min(desde+limit, total)
	}
	return all[desde:hasta], total, nil
}

func (r *NormaRepo) ListAll(_ context.Context, f repository.NormaFilter) ([]*entity.Norma, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := entity.NormalizarTexto(f.Q)
	out := make([]*entity.Norma, 0, len(r.s.normas))
	for _, n := range r.s.normas {
		if !coincide(n, f, q) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	ordenar(out)
	return out, nil
}

func coincide(n *entity.Norma, f repository.NormaFilter, q string) bool {
	switch {
	case f.Activo != nil && n.Activo != *f.Activo:
		return false
	case f.Clasificacion != "" && n.ClasificacionNorma != f.Clasificacion:
		return false
	case f.TemaGeneral != "" && n.TemaGeneral != f.TemaGeneral:
		return false
	case f.Anio != nil && n.Anio != *f.Anio:
		return false
	case f.Estado != "" && n.Estado != f.Estado:
		return false
	case f.SectorEconomicoID != "" && (n.SectorEconomicoID == nil || *n.SectorEconomicoID != f.SectorEconomicoID):
		return false
	}
	if q == "" {
		return true
	}
	return strings.Contains(n.TextoBusqueda(), q)
}

// ordenar clasificación, tema, año descendente, tipo, número, artículo (mismo orden que PostgreSQL).
func ordenar(ns []*entity.Norma) {
	sort.SliceStable(ns, func(i, j int) bool {
		a, b := ns[i], ns[j]
		if a.ClasificacionNorma != b.ClasificacionNorma {
			return a.ClasificacionNorma < b.ClasificacionNorma
		}
		if a.TemaGeneral != b.TemaGeneral {
			return a.TemaGeneral < b.TemaGeneral
		}
		if a.Anio != b.Anio {
			return a.Anio > b.Anio
		}
		if a.TipoNorma != b.TipoNorma {
			return a.TipoNorma < b.TipoNorma
		}
		if a.NumeroNorma != b.NumeroNorma {
			return a.NumeroNorma < b.NumeroNorma
		}
		return a.Clave().Articulo < b.Clave().Articulo
	})
}

func (r *NormaRepo) Clasificaciones(_ context.Context) ([]string, error) {
	return r.distintos(func(n *entity.Norma) string { return n.ClasificacionNorma }), nil
}

func (r *NormaRepo) Temas(_ context.Context, clasificacion string) ([]string, error) {
	return r.distintos(func(n *entity.Norma) string {
		if clasificacion != "" && n.ClasificacionNorma != clasificacion {
			return ""
		}
		return n.TemaGeneral
	}), nil
}

func (r *NormaRepo) Anios(_ context.Context) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	vistos := map[int]bool{}
	out := []int{}
	for _, n := range r.s.normas {
		if n.Activo && !vistos[n.Anio] {
			vistos[n.Anio] = true
			out = append(out, n.Anio)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}

func (r *NormaRepo) distintos(campo func(*entity.Norma) string) []string {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	vistos := map[string]bool{}
	out := []string{}
	for _, n := range r.s.normas {
		v := campo(n)
		if n.Activo && v != "" && !vistos[v] {
			vistos[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
