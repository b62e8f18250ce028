package matriz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/aplicabilidad"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// LockKeySync clave del candado de sincronización de una empresa.
func LockKeySync(empresaID string) string {
	return "matriz:sync:" + empresaID
}

// Sync reconcilia los registros de cumplimiento de la empresa con el conjunto de normas aplicables.
// Crea registros pendientes para normas nuevas, nunca elimina ni sobrescribe evaluaciones existentes.
// Empresa inactiva → domain.ErrInvalidState; otra sincronización en curso → domain.ErrConflict.
func (s *Service) Sync(ctx context.Context, empresaID string) (*dto.SyncResponse, error) {
	start := time.Now()
	res, err := s.sync(ctx, empresaID)
	created := 0
	if res != nil {
		created = res.Created
	}
	s.metrics.ObserveSync(start, created, err)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("empresa_id", empresaID).
		Int("created", res.Created).
		Int("now_inapplicable", res.NowInapplicable).
		Int("unchanged", res.Unchanged).
		Dur("duration", time.Since(start)).
		Msg("sincronización de normas")
	return res, nil
}

func (s *Service) sync(ctx context.Context, empresaID string) (*dto.SyncResponse, error) {
	empresa, err := s.empresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if !empresa.Activo {
		return nil, fmt.Errorf("empresa %s inactiva: %w", empresaID, domain.ErrInvalidState)
	}

	unlock, err := s.locker.TryLock(ctx, LockKeySync(empresaID))
	if err != nil {
		return nil, fmt.Errorf("sincronización en curso para empresa %s: %w", empresaID, err)
	}
	defer unlock()

	catalogo, _, err := s.catalogo(ctx, repository.NormaFilter{})
	if err != nil {
		return nil, err
	}
	aplicables := aplicabilidad.ComputeApplicableSet(empresa, catalogo)
	if len(aplicables.SinPredicado) > 0 {
		s.log.Warn().
			Str("empresa_id", empresaID).
			Int("normas", len(aplicables.SinPredicado)).
			Strs("norma_ids", aplicables.SinPredicado).
			Msg("normas sin banderas de aplicabilidad: nunca aplican")
	}

	existentes, porNorma, err := s.registrosPorNorma(ctx, empresaID)
	if err != nil {
		return nil, err
	}

	res := &dto.SyncResponse{
		EmpresaID:          empresaID,
		CreatedNormaIDs:    []string{},
		InapplicableIDs:    []string{},
		NormasSinPredicado: len(aplicables.SinPredicado),
	}
	now := s.now()
	for _, n := range catalogo {
		if !aplicables.Contiene(n.ID) {
			continue
		}
		if _, ok := porNorma[n.ID]; ok {
			continue
		}
		c := &entity.Cumplimiento{
			ID:            uuid.New().String(),
			EmpresaID:     empresaID,
			NormaID:       n.ID,
			Estado:        entity.EstadoPendiente,
			AplicaEmpresa: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.cumplimientos.Create(ctx, c); err != nil {
			if domain.IsConflict(err) {
				res.Unchanged++
				continue
			}
			return nil, fmt.Errorf("crear cumplimiento norma %s: %w", n.ID, err)
		}
		res.Created++
		res.CreatedNormaIDs = append(res.CreatedNormaIDs, n.ID)
	}

	for _, c := range existentes {
		if c.AplicaEmpresa && !aplicables.Contiene(c.NormaID) {
			res.NowInapplicable++
			res.InapplicableIDs = append(res.InapplicableIDs, c.NormaID)
			continue
		}
		res.Unchanged++
	}
	sort.Strings(res.InapplicableIDs)
	res.Message = fmt.Sprintf("%d normas nuevas asignadas, %d sin cambios", res.Created, res.Unchanged)
	return res, nil
}

// SyncAll sincroniza todas las empresas activas con paralelismo acotado.
// Los errores por empresa (incluido Conflict) se reportan en el ítem, no abortan el resto.
func (s *Service) SyncAll(ctx context.Context, concurrencia int) (*dto.SyncAllResponse, error) {
	activo := true
	empresas, err := s.empresas.List(ctx, repository.EmpresaFilter{Activo: &activo})
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	if concurrencia <= 0 {
		concurrencia = 4
	}

	items := make([]dto.SyncAllItem, len(empresas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrencia)
	for i, e := range empresas {
		i, e := i, e
		g.Go(func() error {
			item := dto.SyncAllItem{EmpresaID: e.ID, Nombre: e.Nombre}
			res, err := s.Sync(gctx, e.ID)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				item.Error = err.Error()
			} else {
				item.Result = res
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.SyncAllResponse{Empresas: len(items), Items: items}
	for _, it := range items {
		if it.Error != "" {
			out.Fallidas++
			continue
		}
		out.Exitosas++
		out.TotalCreated += it.Result.Created
	}
	return out, nil
}
