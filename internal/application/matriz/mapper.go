package matriz

import (
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/aplicabilidad"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

const fechaLayout = "2006-01-02"

func formatFecha(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaLayout)
	return &s
}

// NormaToResponse convierte una norma del catálogo a su forma de salida.
func NormaToResponse(n *entity.Norma) dto.NormaResponse {
	return dto.NormaResponse{
		ID:                            n.ID,
		AmbitoAplicacion:              n.AmbitoAplicacion,
		SectorEconomicoID:             n.SectorEconomicoID,
		SectorEconomicoTexto:          n.SectorEconomicoTexto,
		ClasificacionNorma:            n.ClasificacionNorma,
		TemaGeneral:                   n.TemaGeneral,
		SubtemaRiesgoEspecifico:       n.SubtemaRiesgoEspecifico,
		Anio:                          n.Anio,
		TipoNorma:                     n.TipoNorma,
		NumeroNorma:                   n.NumeroNorma,
		FechaExpedicion:               formatFecha(n.FechaExpedicion),
		ExpedidaPor:                   n.ExpedidaPor,
		DescripcionNorma:              n.DescripcionNorma,
		Articulo:                      n.Articulo,
		Estado:                        n.Estado,
		InfoAdicional:                 n.InfoAdicional,
		DescripcionArticuloExigencias: n.DescripcionArticuloExigencias,
		AplicabilidadNormaDTO:         dto.AplicabilidadNormaDesde(n.AplicaGeneral, n.Aplica),
		Version:                       n.Version,
		Activo:                        n.Activo,
		CreatedAt:                     n.CreatedAt,
		UpdatedAt:                     n.UpdatedAt,
		IdentificadorCompleto:         n.Identificador(),
	}
}

// CumplimientoToResponse convierte un registro de cumplimiento.
func CumplimientoToResponse(c *entity.Cumplimiento) dto.CumplimientoResponse {
	return dto.CumplimientoResponse{
		ID:                    c.ID,
		EmpresaID:             c.EmpresaID,
		NormaID:               c.NormaID,
		Estado:                c.Estado,
		EvidenciaCumplimiento: c.EvidenciaCumplimiento,
		Observaciones:         c.Observaciones,
		PlanAccion:            c.PlanAccion,
		Responsable:           c.Responsable,
		FechaCompromiso:       formatFecha(c.FechaCompromiso),
		Seguimiento:           c.Seguimiento,
		AplicaEmpresa:         c.AplicaEmpresa,
		JustificacionNoAplica: c.JustificacionNoAplica,
		FechaUltimaEvaluacion: c.FechaUltimaEvaluacion,
		FechaProximaRevision:  formatFecha(c.FechaProximaRevision),
		EvaluadoPor:           c.EvaluadoPor,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// fusionar une la norma con el registro de la empresa (campos de cumplimiento en null si no existe).
func fusionar(e *entity.Empresa, n *entity.Norma, c *entity.Cumplimiento, aplicable bool) dto.NormaConCumplimiento {
	out := dto.NormaConCumplimiento{
		NormaResponse:        NormaToResponse(n),
		AplicaEmpresa:        aplicable,
		AplicableSegunPerfil: aplicable,
		MotivosAplicacion:    []string{},
	}
	for _, m := range aplicabilidad.Motivos(e, n) {
		out.MotivosAplicacion = append(out.MotivosAplicacion, m.Codigo())
	}
	if c == nil {
		return out
	}
	estado := c.Estado
	out.CumplimientoID = &c.ID
	out.EstadoCumplimiento = &estado
	out.AplicaEmpresa = c.AplicaEmpresa
	out.EvidenciaCumplimiento = c.EvidenciaCumplimiento
	out.Observaciones = c.Observaciones
	out.PlanAccion = c.PlanAccion
	out.Responsable = c.Responsable
	out.FechaCompromiso = formatFecha(c.FechaCompromiso)
	out.JustificacionNoAplica = c.JustificacionNoAplica
	out.FechaUltimaEvaluacion = c.FechaUltimaEvaluacion
	return out
}

func historialToResponse(h *entity.CumplimientoHistorial) dto.HistorialResponse {
	return dto.HistorialResponse{
		ID:             h.ID,
		CumplimientoID: h.CumplimientoID,
		EstadoAnterior: h.EstadoAnterior,
		EstadoNuevo:    h.EstadoNuevo,
		Observaciones:  h.Observaciones,
		CreatedAt:      h.CreatedAt,
		CreadoPor:      h.CreadoPor,
	}
}

// ImportacionToResponse convierte un registro de la bitácora de importaciones.
func ImportacionToResponse(i *entity.Importacion) dto.ImportacionResponse {
	return dto.ImportacionResponse{
		ID:                 i.ID,
		NombreArchivo:      i.NombreArchivo,
		FechaImportacion:   i.FechaImportacion,
		Estado:             i.Estado,
		TotalFilas:         i.TotalFilas,
		NormasNuevas:       i.NormasNuevas,
		NormasActualizadas: i.NormasActualizadas,
		NormasSinCambios:   i.NormasSinCambios,
		Errores:            i.Errores,
		LogErrores:         i.LogErrores,
		CreadoPor:          i.CreadoPor,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
