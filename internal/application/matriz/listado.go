package matriz

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// NormasEmpresa lista el catálogo fusionado con los registros de cumplimiento de la empresa.
// Normas sin registro aparecen con los campos de cumplimiento en null (estado efectivo pendiente).
func (s *Service) NormasEmpresa(ctx context.Context, empresaID string, f dto.NormasEmpresaFilterRequest) (*dto.PaginatedResponse[dto.NormaConCumplimiento], error) {
	if f.EstadoCumplimiento != "" && !entity.EstadoCumplimientoValido(f.EstadoCumplimiento) {
		return nil, domain.NewValidationError("estado_cumplimiento", "valor inválido %q", f.EstadoCumplimiento)
	}
	empresa, err := s.empresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	f.DefaultPage(defaultPageSize, maxPageSize)

	catalogo, _, err := s.catalogo(ctx, repository.NormaFilter{
		Q:             f.Q,
		Clasificacion: f.Clasificacion,
		TemaGeneral:   f.TemaGeneral,
	})
	if err != nil {
		return nil, err
	}
	_, porNorma, err := s.registrosPorNorma(ctx, empresaID)
	if err != nil {
		return nil, err
	}

	filas := make([]dto.NormaConCumplimiento, 0, len(catalogo))
	for _, n := range catalogo {
		c := porNorma[n.ID]
		aplicable := aplicaHoy(empresa, n)
		if f.SoloAplicables && !aplicable && (c == nil || !c.AplicaEmpresa) {
			continue
		}
		if f.EstadoCumplimiento != "" && estadoEfectivo(c) != f.EstadoCumplimiento {
			continue
		}
		filas = append(filas, fusionar(empresa, n, c, aplicable))
	}

	total := len(filas)
	desde := min(f.Offset(), total)
	hasta := min(desde+f.Size, total)
	resp := dto.NewPaginated(filas[desde:hasta], total, f.PageRequest)
	return &resp, nil
}

func estadoEfectivo(c *entity.Cumplimiento) string {
	if c == nil {
		return entity.EstadoPendiente
	}
	return c.Estado
}
