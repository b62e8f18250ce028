package importacion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// Mapeo resultado de resolver los encabezados de un archivo.
type Mapeo struct {
	Encabezados []string
	// indice campo canónico → posición de la columna (la primera que lo reclama).
	indice map[string]int
	// Columnas encabezado original → campo canónico (nil si no se reconoce o está repetido).
	Columnas map[string]*string
}

// NuevoMapeo resuelve cada encabezado con la tabla de alias. Encabezados no reconocidos no son fatales.
func NuevoMapeo(encabezados []string, alias Alias) *Mapeo {
	m := &Mapeo{
		Encabezados: make([]string, 0, len(encabezados)),
		indice:      make(map[string]int),
		Columnas:    make(map[string]*string, len(encabezados)),
	}
	for i, h := range encabezados {
		h = strings.TrimSpace(h)
		m.Encabezados = append(m.Encabezados, h)
		if h == "" {
			continue
		}
		campo := alias.Resolver(h)
		if _, repetido := m.indice[campo]; campo == "" || repetido {
			if _, ok := m.Columnas[h]; !ok {
				m.Columnas[h] = nil
			}
			continue
		}
		m.indice[campo] = i
		c := campo
		m.Columnas[h] = &c
	}
	return m
}

// Tiene informa si algún encabezado se mapeó al campo.
func (m *Mapeo) Tiene(campo string) bool {
	_, ok := m.indice[campo]
	return ok
}

func (m *Mapeo) valor(fila []string, campo string) string {
	i, ok := m.indice[campo]
	if !ok || i >= len(fila) {
		return ""
	}
	return strings.TrimSpace(fila[i])
}

// FilaVacia informa si todas las celdas están vacías.
func FilaVacia(fila []string) bool {
	for _, v := range fila {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// erroresFila acumula los problemas de una fila; el mensaje final los une con "; ".
type erroresFila []string

func (e *erroresFila) add(msg string) { *e = append(*e, msg) }

func (e erroresFila) Error() string { return strings.Join(e, "; ") }

// reTipoNumero reconoce "Resolución 0312 de 2019", "Decreto 1072/2015", "Ley No. 1562 de 2012".
var reTipoNumero = regexp.MustCompile(`(?i)^\s*(.+?)\s+(?:n[o°º]\.?\s*|nro\.?\s*|n[uú]mero\s+)?([0-9][0-9.]*[a-z]?)(?:\s*(?:de|del|/|-)\s*(\d{4}))?\s*$`)

// ParseTipoNumero separa un texto combinado en tipo, número y año (0 si no trae año).
func ParseTipoNumero(raw string) (tipo, numero string, anio int, ok bool) {
	m := reTipoNumero.FindStringSubmatch(raw)
	if m == nil {
		return "", "", 0, false
	}
	tipo = strings.TrimSpace(m[1])
	numero = strings.TrimSpace(m[2])
	if m[3] != "" {
		anio, _ = strconv.Atoi(m[3])
	}
	return tipo, numero, anio, tipo != "" && numero != ""
}

// ParseFila valida y normaliza una fila de datos a una norma. La norma devuelta no tiene ID.
// advertencias son condiciones no fatales (norma sin ninguna bandera de aplicabilidad).
func (m *Mapeo) ParseFila(fila []string) (n *entity.Norma, advertencias []string, err error) {
	var errs erroresFila
	n = &entity.Norma{Activo: true, Version: 1}

	n.ClasificacionNorma = m.valor(fila, CampoClasificacion)
	if n.ClasificacionNorma == "" {
		errs.add("clasificacion_norma requerida")
	}
	n.TemaGeneral = m.valor(fila, CampoTemaGeneral)
	if n.TemaGeneral == "" {
		errs.add("tema_general requerido")
	}

	if raw := m.valor(fila, CampoAnio); raw == "" {
		errs.add("anio requerido")
	} else if anio, ok := parseAnio(raw); !ok {
		errs.add("anio inválido: " + raw)
	} else {
		n.Anio = anio
	}

	n.TipoNorma = m.valor(fila, CampoTipoNorma)
	n.NumeroNorma = m.valor(fila, CampoNumeroNorma)
	raw := m.valor(fila, CampoTipoNumeroRaw)
	tipo, numero, anioRaw, rawOK := ParseTipoNumero(raw)
	if n.TipoNorma == "" || n.NumeroNorma == "" {
		switch {
		case raw == "":
			errs.add("tipo_norma y numero_norma requeridos (o tipo_numero_raw)")
		case !rawOK:
			errs.add("tipo_numero_raw no reconocido: " + raw)
		default:
			n.TipoNorma, n.NumeroNorma = tipo, numero
		}
	}

	n.Articulo = opcional(m.valor(fila, CampoArticulo))
	n.SubtemaRiesgoEspecifico = opcional(m.valor(fila, CampoSubtema))
	n.DescripcionNorma = m.valor(fila, CampoDescripcion)
	n.DescripcionArticuloExigencias = opcional(m.valor(fila, CampoExigencias))
	n.SectorEconomicoTexto = opcional(m.valor(fila, CampoSectorTexto))
	n.ExpedidaPor = opcional(m.valor(fila, CampoExpedidaPor))
	n.InfoAdicional = opcional(m.valor(fila, CampoInfoAdicional))

	if raw := m.valor(fila, CampoFechaExpedicion); raw != "" {
		if t, ok := ParseFecha(raw); ok {
			n.FechaExpedicion = &t
		} else {
			errs.add("fecha_expedicion inválida: " + raw)
		}
	}

	n.Estado = entity.EstadoNormaVigente
	if raw := m.valor(fila, CampoEstado); raw != "" {
		if estado, ok := parseEstadoNorma(raw); ok {
			n.Estado = estado
		} else {
			errs.add("estado inválido: " + raw)
		}
	}
	n.AmbitoAplicacion = entity.AmbitoNacional
	if raw := m.valor(fila, CampoAmbito); raw != "" {
		ambito := entity.NormalizarTexto(raw)
		if !entity.AmbitoValido(ambito) {
			errs.add("ambito_aplicacion inválido: " + raw)
		} else {
			n.AmbitoAplicacion = ambito
		}
	}

	if v, err := ParseBool(m.valor(fila, CampoAplicaGeneral)); err != nil {
		errs.add(CampoAplicaGeneral + ": " + err.Error())
	} else {
		n.AplicaGeneral = v
	}
	for _, c := range entity.TodasLasCaracteristicas() {
		v, err := ParseBool(m.valor(fila, c.ColumnaNorma()))
		if err != nil {
			errs.add(c.ColumnaNorma() + ": " + err.Error())
			continue
		}
		if v {
			n.Aplica = n.Aplica.Con(c)
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	if n.SinPredicado() {
		advertencias = append(advertencias, "la norma no tiene ninguna bandera de aplicabilidad: no aplicará a ninguna empresa")
	}
	if rawOK && anioRaw > 0 && anioRaw != n.Anio {
		advertencias = append(advertencias, fmt.Sprintf("anio %d no coincide con el año de tipo_numero_raw %q (%d)", n.Anio, raw, anioRaw))
	}
	if n.DescripcionNorma == "" {
		n.DescripcionNorma = n.Identificador()
	}
	return n, advertencias, nil
}

func opcional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseAnio(s string) (int, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".0")
	anio, err := strconv.Atoi(s)
	if err != nil || anio < 1800 || anio > 2100 {
		return 0, false
	}
	return anio, true
}

func parseEstadoNorma(s string) (string, bool) {
	switch entity.NormalizarTexto(s) {
	case "vigente", "vigencia", "activa", "activo":
		return entity.EstadoNormaVigente, true
	case "derogada", "derogado", "derogada totalmente":
		return entity.EstadoNormaDerogada, true
	case "modificada", "modificado", "derogada parcialmente", "modificada parcialmente":
		return entity.EstadoNormaModificada, true
	}
	return "", false
}

type boolError string

func (e boolError) Error() string { return "valor booleano inválido \"" + string(e) + "\"" }

// ParseBool interpreta celdas de banderas: si/sí/x/s/1/true/yes/verdadero/aplica y no/n/0/false/vacío.
func ParseBool(s string) (bool, error) {
	switch entity.NormalizarTexto(s) {
	case "si", "x", "s", "1", "true", "yes", "verdadero", "aplica", "1.0":
		return true, nil
	case "", "no", "n", "0", "false", "falso", "no aplica", "0.0", "-":
		return false, nil
	}
	return false, boolError(s)
}

var layoutsFecha = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006", "2006/01/02", "01-02-06", "2006-01-02 15:04:05", time.RFC3339}

// excelEpoch día 0 del sistema de fechas 1900 de Excel (con el bug del 29/02/1900 incluido).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseFecha acepta ISO, dd/mm/yyyy y seriales numéricos de Excel.
func ParseFecha(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range layoutsFecha {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f < 2958466 {
		return excelEpoch.AddDate(0, 0, int(f)), true
	}
	return time.Time{}, false
}
