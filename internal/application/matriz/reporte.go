package matriz

import (
	"context"
	"fmt"
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// ReporteEmpresa datos del reporte PDF de cumplimiento.
type ReporteEmpresa struct {
	EmpresaNombre   string
	NIT             string
	Caracteristicas []string
	Estadisticas    dto.EstadisticasResponse
	Filas           []FilaReporte
	GeneradoEn      time.Time
}

// FilaReporte una norma aplicable con su estado de cumplimiento.
type FilaReporte struct {
	Norma           string
	Clasificacion   string
	TemaGeneral     string
	Estado          string
	Responsable     string
	FechaCompromiso string
	Vencida         bool
}

// ReportePDF genera el reporte de cumplimiento de la empresa y devuelve el documento y su nombre de archivo.
func (s *Service) ReportePDF(ctx context.Context, empresaID string) ([]byte, string, error) {
	empresa, err := s.empresa(ctx, empresaID)
	if err != nil {
		return nil, "", err
	}
	catalogo, normas, err := s.catalogo(ctx, repository.NormaFilter{})
	if err != nil {
		return nil, "", err
	}
	registros, porNorma, err := s.registrosPorNorma(ctx, empresaID)
	if err != nil {
		return nil, "", err
	}
	now := s.now()

	r := &ReporteEmpresa{
		EmpresaNombre: empresa.Nombre,
		NIT:           deref(empresa.NIT),
		Estadisticas:  calcularEstadisticas(empresa, normas, registros, now),
		GeneradoEn:    now,
	}
	for _, c := range empresa.Caracteristicas.Lista() {
		r.Caracteristicas = append(r.Caracteristicas, c.Etiqueta())
	}
	for _, n := range catalogo {
		c := porNorma[n.ID]
		if !aplicaHoy(empresa, n) || (c != nil && !c.AplicaEmpresa) {
			continue
		}
		f := FilaReporte{
			Norma:         n.Identificador(),
			Clasificacion: n.ClasificacionNorma,
			TemaGeneral:   n.TemaGeneral,
			Estado:        estadoEfectivo(c),
		}
		if c != nil {
			f.Responsable = deref(c.Responsable)
			f.FechaCompromiso = deref(formatFecha(c.FechaCompromiso))
			f.Vencida = c.Vencido(now)
		}
		r.Filas = append(r.Filas, f)
	}

	doc, err := s.reportes.RenderReporte(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte: %w", err)
	}
	return doc, nombreArchivo("reporte_cumplimiento", empresa.Nombre, "pdf", now), nil
}
