package matriz

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var encabezadosCumplimiento = []string{
	"Estado cumplimiento", "Aplica a la empresa", "Aplicable según perfil", "Evidencia cumplimiento",
	"Observaciones cumplimiento", "Plan de acción", "Responsable", "Fecha compromiso", "Justificación no aplica",
}

// ExportarEmpresa escribe la matriz de la empresa: columnas del catálogo (reimportables) seguidas de las
// columnas de cumplimiento. Por defecto solo normas aplicables; incluirNoAplicables agrega las que
// tienen registro pero ya no aplican o fueron marcadas no_aplica.
func (s *Service) ExportarEmpresa(ctx context.Context, empresaID string, incluirNoAplicables bool, w io.Writer) (string, error) {
	empresa, err := s.empresa(ctx, empresaID)
	if err != nil {
		return "", err
	}
	catalogo, _, err := s.catalogo(ctx, repository.NormaFilter{})
	if err != nil {
		return "", err
	}
	_, porNorma, err := s.registrosPorNorma(ctx, empresaID)
	if err != nil {
		return "", err
	}

	filas := [][]string{append(importacion.EncabezadosCatalogo(), encabezadosCumplimiento...)}
	for _, n := range catalogo {
		c := porNorma[n.ID]
		aplicable := aplicaHoy(empresa, n)
		incluir := aplicable && (c == nil || c.AplicaEmpresa)
		if incluirNoAplicables {
			incluir = aplicable || c != nil
		}
		if !incluir {
			continue
		}
		filas = append(filas, append(importacion.FilaCatalogo(n), filaCumplimiento(c, aplicable)...))
	}
	if err := s.hojas.Write(w, "Matriz legal", filas); err != nil {
		return "", fmt.Errorf("escribir hoja: %w", err)
	}
	return nombreArchivo("matriz_legal", empresa.Nombre, "xlsx", s.now()), nil
}

func filaCumplimiento(c *entity.Cumplimiento, aplicable bool) []string {
	siNo := func(b bool) string {
		if b {
			return "SI"
		}
		return "NO"
	}
	if c == nil {
		return []string{entity.EstadoPendiente, siNo(aplicable), siNo(aplicable), "", "", "", "", "", ""}
	}
	fecha := ""
	if c.FechaCompromiso != nil {
		fecha = c.FechaCompromiso.Format(fechaLayout)
	}
	return []string{
		c.Estado, siNo(c.AplicaEmpresa), siNo(aplicable),
		deref(c.EvidenciaCumplimiento), deref(c.Observaciones), deref(c.PlanAccion),
		deref(c.Responsable), fecha, deref(c.JustificacionNoAplica),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nombreArchivo arma "prefijo_empresa_20240131.ext" con el nombre en minúsculas y sin caracteres raros.
func nombreArchivo(prefijo, empresa, ext string, now time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, entity.NormalizarTexto(empresa))
	slug = strings.Trim(slug, "_")
	return fmt.Sprintf("%s_%s_%s.%s", prefijo, slug, now.Format("20060102"), ext)
}
