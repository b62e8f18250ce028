package matriz

import (
	"context"
	"sort"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

const (
	dashboardUltimas       = 5
	dashboardCriticas      = 10
	dashboardRevisiones    = 5
	dashboardImportaciones = 5
)

// Dashboard resume la matriz de la empresa: estadísticas, últimas evaluaciones, normas críticas
// (no_cumple o vencidas), próximas revisiones e importaciones recientes del catálogo.
func (s *Service) Dashboard(ctx context.Context, empresaID string) (*dto.DashboardResponse, error) {
	empresa, err := s.empresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	_, normas, err := s.catalogo(ctx, repository.NormaFilter{})
	if err != nil {
		return nil, err
	}
	registros, err := s.cumplimientos.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	out := &dto.DashboardResponse{
		Estadisticas:           calcularEstadisticas(empresa, normas, registros, now),
		UltimasEvaluaciones:    []dto.UltimaEvaluacion{},
		NormasCriticas:         []dto.NormaConCumplimiento{},
		ProximasRevisiones:     []dto.CumplimientoResponse{},
		ImportacionesRecientes: []dto.ImportacionResponse{},
	}

	evaluados := make([]*entity.Cumplimiento, 0, len(registros))
	revisiones := make([]*entity.Cumplimiento, 0)
	for _, c := range registros {
		n := normas[c.NormaID]
		if c.FechaUltimaEvaluacion != nil {
			evaluados = append(evaluados, c)
		}
		if !aplicaHoy(empresa, n) || !c.AplicaEmpresa {
			continue
		}
		if c.FechaProximaRevision != nil && !c.FechaProximaRevision.Before(now) {
			revisiones = append(revisiones, c)
		}
		if (c.Estado == entity.EstadoNoCumple || c.Vencido(now)) && len(out.NormasCriticas) < dashboardCriticas {
			out.NormasCriticas = append(out.NormasCriticas, fusionar(empresa, n, c, true))
		}
	}

	sort.Slice(evaluados, func(i, j int) bool {
		return evaluados[i].FechaUltimaEvaluacion.After(*evaluados[j].FechaUltimaEvaluacion)
	})
	for _, c := range evaluados[:min(len(evaluados), dashboardUltimas)] {
		out.UltimasEvaluaciones = append(out.UltimasEvaluaciones, dto.UltimaEvaluacion{
			ID: c.ID, NormaID: c.NormaID, Estado: c.Estado, Fecha: *c.FechaUltimaEvaluacion,
		})
	}

	sort.Slice(revisiones, func(i, j int) bool {
		return revisiones[i].FechaProximaRevision.Before(*revisiones[j].FechaProximaRevision)
	})
	for _, c := range revisiones[:min(len(revisiones), dashboardRevisiones)] {
		out.ProximasRevisiones = append(out.ProximasRevisiones, CumplimientoToResponse(c))
	}

	if s.importaciones != nil {
		imps, _, err := s.importaciones.List(ctx, dashboardImportaciones, 0)
		if err != nil {
			return nil, err
		}
		for _, i := range imps {
			out.ImportacionesRecientes = append(out.ImportacionesRecientes, ImportacionToResponse(i))
		}
	}
	return out, nil
}
