// Package importacion implementa la carga masiva del catálogo de normas desde hojas de cálculo:
// mapeo de encabezados por alias, validación por fila, deduplicación por clave natural y el flujo
// preview → commit.
package importacion

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// Campos canónicos de una fila de norma. Las banderas aplica_* salen del vocabulario de características.
const (
	CampoClasificacion   = "clasificacion_norma"
	CampoTemaGeneral     = "tema_general"
	CampoSubtema         = "subtema_riesgo_especifico"
	CampoAnio            = "anio"
	CampoTipoNumeroRaw   = "tipo_numero_raw"
	CampoTipoNorma       = "tipo_norma"
	CampoNumeroNorma     = "numero_norma"
	CampoArticulo        = "articulo"
	CampoDescripcion     = "descripcion_norma"
	CampoExigencias      = "descripcion_articulo_exigencias"
	CampoAmbito          = "ambito_aplicacion"
	CampoSectorTexto     = "sector_economico_texto"
	CampoExpedidaPor     = "expedida_por"
	CampoFechaExpedicion = "fecha_expedicion"
	CampoEstado          = "estado"
	CampoInfoAdicional   = "info_adicional"
	CampoAplicaGeneral   = "aplica_general"
)

// columna campo exportable con su encabezado legible. El encabezado normalizado coincide con el
// campo canónico normalizado, por eso un archivo exportado se reimporta sin alias adicionales.
type columna struct {
	campo      string
	encabezado string
}

var columnasBase = []columna{
	{CampoTipoNorma, "Tipo norma"},
	{CampoNumeroNorma, "Numero norma"},
	{CampoAnio, "Anio"},
	{CampoArticulo, "Articulo"},
	{CampoClasificacion, "Clasificación norma"},
	{CampoTemaGeneral, "Tema general"},
	{CampoSubtema, "Subtema riesgo específico"},
	{CampoDescripcion, "Descripción norma"},
	{CampoExigencias, "Descripción artículo exigencias"},
	{CampoAmbito, "Ámbito aplicación"},
	{CampoSectorTexto, "Sector económico texto"},
	{CampoExpedidaPor, "Expedida por"},
	{CampoFechaExpedicion, "Fecha expedición"},
	{CampoEstado, "Estado"},
	{CampoInfoAdicional, "Info adicional"},
	{CampoAplicaGeneral, "Aplica general"},
}

// columnasExportacion orden de columnas del archivo exportado: base + una por característica.
func columnasExportacion() []columna {
	cols := make([]columna, 0, len(columnasBase)+len(entity.TodasLasCaracteristicas()))
	cols = append(cols, columnasBase...)
	for _, c := range entity.TodasLasCaracteristicas() {
		cols = append(cols, columna{c.ColumnaNorma(), "Aplica " + strings.ToLower(c.Etiqueta())})
	}
	return cols
}

// EncabezadosCatalogo encabezados del archivo de catálogo (compatibles con la importación).
func EncabezadosCatalogo() []string {
	cols := columnasExportacion()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.encabezado
	}
	return out
}

// FilaCatalogo valores de la norma en el orden de EncabezadosCatalogo.
func FilaCatalogo(n *entity.Norma) []string {
	vals := ValoresNorma(n)
	cols := columnasExportacion()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = formatValor(vals[c.campo])
	}
	return out
}

// ValoresNorma proyección campo canónico → valor, usada en la muestra del preview y en la exportación.
func ValoresNorma(n *entity.Norma) map[string]any {
	v := map[string]any{
		CampoTipoNorma:       n.TipoNorma,
		CampoNumeroNorma:     n.NumeroNorma,
		CampoAnio:            n.Anio,
		CampoArticulo:        deref(n.Articulo),
		CampoClasificacion:   n.ClasificacionNorma,
		CampoTemaGeneral:     n.TemaGeneral,
		CampoSubtema:         deref(n.SubtemaRiesgoEspecifico),
		CampoDescripcion:     n.DescripcionNorma,
		CampoExigencias:      deref(n.DescripcionArticuloExigencias),
		CampoAmbito:          n.AmbitoAplicacion,
		CampoSectorTexto:     deref(n.SectorEconomicoTexto),
		CampoExpedidaPor:     deref(n.ExpedidaPor),
		CampoFechaExpedicion: "",
		CampoEstado:          n.Estado,
		CampoInfoAdicional:   deref(n.InfoAdicional),
		CampoAplicaGeneral:   n.AplicaGeneral,
	}
	if n.FechaExpedicion != nil {
		v[CampoFechaExpedicion] = n.FechaExpedicion.Format("2006-01-02")
	}
	for _, c := range entity.TodasLasCaracteristicas() {
		v[c.ColumnaNorma()] = n.Aplica.Tiene(c)
	}
	return v
}

func formatValor(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "SI"
		}
		return "NO"
	default:
		return ""
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizarEncabezado minúsculas, sin tildes, puntuación convertida en espacio, espacios colapsados.
// "Clasificación_Norma" y "clasificacion norma" producen la misma clave.
func NormalizarEncabezado(s string) string {
	s = strings.ToLower(entity.QuitarTildes(strings.TrimSpace(s)))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
