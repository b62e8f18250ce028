// Package pdf genera el reporte de cumplimiento legal SST de una empresa.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT        │  Título + fecha de corte    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PERFIL: características activas                            │
//	│  RESUMEN: aplicables / cumple / no cumple / % / vencidas    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Norma | Clasificación | Tema | Estado | Resp. | Fecha│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlerta  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorFondo   = &props.Color{Red: 240, Green: 244, Blue: 250}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReporte implementa matriz.ReporteRenderer usando Maroto v2.
type MarotoReporte struct{}

// NewMarotoReporte construye el generador.
func NewMarotoReporte() *MarotoReporte { return &MarotoReporte{} }

// RenderReporte genera el PDF y devuelve sus bytes.
func (g *MarotoReporte) RenderReporte(ctx context.Context, r *matriz.ReporteEmpresa) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Matriz legal SST - "+r.EmpresaNombre, true).
		WithAuthor(r.EmpresaNombre, true).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterFooter(footerRow(r)); err != nil {
		return nil, fmt.Errorf("pdf: registrar pie: %w", err)
	}

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(perfilRow(r.Caracteristicas))
	m.AddRows(resumenRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(r.Filas)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y título + fecha de corte (der).
func headerRow(r *matriz.ReporteEmpresa) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.EmpresaNombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(r.NIT, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE CUMPLIMIENTO LEGAL SST", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+r.GeneradoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// perfilRow: características activas de la empresa.
func perfilRow(caracteristicas []string) core.Row {
	perfil := "Sin características de riesgo marcadas (solo normas generales)"
	if len(caracteristicas) > 0 {
		perfil = strings.Join(caracteristicas, ", ")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PERFIL DE LA EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(perfil, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// resumenRows: indicadores de las estadísticas de cumplimiento.
func resumenRows(r *matriz.ReporteEmpresa) []core.Row {
	st := r.Estadisticas
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorGray, Top: 1})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 5})
	}
	celda := func(l, v string, c *props.Color) core.Col {
		return col.New(2).Add(label(l), value(v, c))
	}
	vencidasColor := colorPrimary
	if st.NormasVencidas > 0 {
		vencidasColor = colorAlerta
	}
	return []core.Row{
		row.New(14).Add(
			celda("APLICABLES", fmt.Sprint(st.TotalNormasAplicables), colorPrimary),
			celda("CUMPLE", fmt.Sprint(st.PorEstado.Cumple), colorPrimary),
			celda("NO CUMPLE", fmt.Sprint(st.PorEstado.NoCumple), colorPrimary),
			celda("PENDIENTE / EN PROCESO", fmt.Sprintf("%d / %d", st.PorEstado.Pendiente, st.PorEstado.EnProceso), colorPrimary),
			celda("CUMPLIMIENTO", fmt.Sprintf("%.2f%%", st.PorcentajeCumplimiento), colorPrimary),
			celda("VENCIDAS", fmt.Sprint(st.NormasVencidas), vencidasColor),
		).WithStyle(&props.Cell{BackgroundColor: colorFondo}),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Con plan de acción: %d   |   No aplica: %d   |   Ya no aplicables por perfil: %d",
				st.NormasConPlanAccion, st.PorEstado.NoAplica, st.NormasNoAplicablesPorPerfil,
			), props.Text{Size: 7, Top: 1.5, Color: colorGray}),
		)),
	}
}

// tableHeaderRow: cabecera de la tabla de normas con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Norma", 4, align.Left),
		h("Clasificación", 2, align.Left),
		h("Tema", 2, align.Left),
		h("Estado", 1, align.Center),
		h("Responsable", 2, align.Left),
		h("Compromiso", 1, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por norma aplicable.
func tableDetailRows(filas []matriz.FilaReporte) []core.Row {
	if len(filas) == 0 {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New("La empresa no tiene normas aplicables. Ejecute la sincronización.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 3,
			}),
		))}
	}
	result := make([]core.Row, 0, len(filas))
	for _, f := range filas {
		fechaColor := colorGray
		if f.Vencida {
			fechaColor = colorAlerta
		}
		result = append(result, row.New(10).Add(
			col.New(4).Add(text.New(f.Norma, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.Clasificacion, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.TemaGeneral, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(etiquetaEstado(f.Estado), props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(nonEmpty(f.Responsable, "—"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(f.FechaCompromiso, "—"), props.Text{
				Size: 7, Align: align.Center, Top: 1, Color: fechaColor,
			})),
		))
	}
	return result
}

// footerRow: leyenda en cada página.
func footerRow(r *matriz.ReporteEmpresa) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Matriz legal del Sistema de Gestión de Seguridad y Salud en el Trabajo (Decreto 1072 de 2015, "+
				"Resolución 0312 de 2019). Generado el "+r.GeneradoEn.Format("02/01/2006")+".",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func etiquetaEstado(estado string) string {
	switch estado {
	case entity.EstadoCumple:
		return "Cumple"
	case entity.EstadoNoCumple:
		return "No cumple"
	case entity.EstadoEnProceso:
		return "En proceso"
	case entity.EstadoNoAplica:
		return "No aplica"
	case entity.EstadoPendiente:
		return "Pendiente"
	}
	return estado
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
