package importacion

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// CopiarCampos copia los campos descriptivos y el predicado de src sobre dst y devuelve true si algo
// cambió. La identidad legal (tipo, número, año, artículo) no se toca.
func CopiarCampos(dst, src *entity.Norma) bool {
	cambio := false
	setStr := func(d *string, v string) {
		if *d != v {
			*d = v
			cambio = true
		}
	}
	setOpt := func(d **string, v *string) {
		if deref(*d) != deref(v) {
			*d = v
			cambio = true
		}
	}
	setStr(&dst.ClasificacionNorma, src.ClasificacionNorma)
	setStr(&dst.TemaGeneral, src.TemaGeneral)
	setStr(&dst.DescripcionNorma, src.DescripcionNorma)
	setStr(&dst.AmbitoAplicacion, src.AmbitoAplicacion)
	setStr(&dst.Estado, src.Estado)
	setOpt(&dst.SubtemaRiesgoEspecifico, src.SubtemaRiesgoEspecifico)
	setOpt(&dst.DescripcionArticuloExigencias, src.DescripcionArticuloExigencias)
	setOpt(&dst.SectorEconomicoTexto, src.SectorEconomicoTexto)
	setOpt(&dst.ExpedidaPor, src.ExpedidaPor)
	setOpt(&dst.InfoAdicional, src.InfoAdicional)
	if !mismaFecha(dst.FechaExpedicion, src.FechaExpedicion) {
		dst.FechaExpedicion = src.FechaExpedicion
		cambio = true
	}
	if dst.AplicaGeneral != src.AplicaGeneral {
		dst.AplicaGeneral = src.AplicaGeneral
		cambio = true
	}
	if dst.Aplica != src.Aplica {
		dst.Aplica = src.Aplica
		cambio = true
	}
	return cambio
}

func mismaFecha(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// ExportarCatalogo escribe el catálogo filtrado como hoja de cálculo con los encabezados de importación.
func (s *Service) ExportarCatalogo(ctx context.Context, filter repository.NormaFilter, w io.Writer) error {
	normas, err := s.normas.ListAll(ctx, filter)
	if err != nil {
		return fmt.Errorf("cargar catálogo: %w", err)
	}
	filas := make([][]string, 0, len(normas)+1)
	filas = append(filas, EncabezadosCatalogo())
	for _, n := range normas {
		filas = append(filas, FilaCatalogo(n))
	}
	return s.hojas.Write(w, "Normas", filas)
}
