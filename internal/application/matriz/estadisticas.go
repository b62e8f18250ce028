package matriz

import (
	"context"
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/aplicabilidad"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/cumplimiento"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// Estadisticas calcula las métricas de cumplimiento de la empresa a partir de los registros persistidos.
// No hay contadores en caché: cada llamada recalcula.
func (s *Service) Estadisticas(ctx context.Context, empresaID string) (*dto.EstadisticasResponse, error) {
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
	out := calcularEstadisticas(empresa, normas, registros, s.now())
	return &out, nil
}

// aplicaHoy informa si el registro sigue vigente para la empresa: la norma existe, no está derogada
// y el motor todavía la considera aplicable.
func aplicaHoy(empresa *entity.Empresa, n *entity.Norma) bool {
	return n != nil && n.Estado != entity.EstadoNormaDerogada && aplicabilidad.Evaluate(empresa, n)
}

func calcularEstadisticas(empresa *entity.Empresa, normas map[string]*entity.Norma, registros []*entity.Cumplimiento, now time.Time) dto.EstadisticasResponse {
	out := dto.EstadisticasResponse{EmpresaID: empresa.ID, EmpresaNombre: empresa.Nombre}
	for _, c := range registros {
		if !aplicaHoy(empresa, normas[c.NormaID]) {
			out.NormasNoAplicablesPorPerfil++
			continue
		}
		if !c.AplicaEmpresa || c.Estado == entity.EstadoNoAplica {
			out.PorEstado.NoAplica++
			continue
		}
		out.TotalNormasAplicables++
		switch c.Estado {
		case entity.EstadoCumple:
			out.PorEstado.Cumple++
		case entity.EstadoNoCumple:
			out.PorEstado.NoCumple++
		case entity.EstadoEnProceso:
			out.PorEstado.EnProceso++
		default:
			out.PorEstado.Pendiente++
		}
		if c.TienePlanAccion() {
			out.NormasConPlanAccion++
		}
		if c.Vencido(now) {
			out.NormasVencidas++
		}
	}
	out.PorcentajeCumplimiento = cumplimiento.Porcentaje(out.PorEstado.Cumple, out.TotalNormasAplicables).InexactFloat64()
	return out
}
