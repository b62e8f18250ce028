package entity

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Estados de la norma en el catálogo. Las normas nunca se eliminan: pasan a derogada.
const (
	EstadoNormaVigente    = "vigente"
	EstadoNormaDerogada   = "derogada"
	EstadoNormaModificada = "modificada"
)

// Ámbitos de aplicación.
const (
	AmbitoNacional      = "nacional"
	AmbitoDepartamental = "departamental"
	AmbitoMunicipal     = "municipal"
	AmbitoInternacional = "internacional"
)

// Norma entrada del catálogo de la matriz legal SST.
// La identidad legal (TipoNorma, NumeroNorma, Anio, Articulo) es la clave natural y no cambia.
type Norma struct {
	ID                            string
	TipoNorma                     string
	NumeroNorma                   string
	Anio                          int
	Articulo                      *string
	ClasificacionNorma            string
	TemaGeneral                   string
	SubtemaRiesgoEspecifico       *string
	DescripcionNorma              string
	DescripcionArticuloExigencias *string
	AmbitoAplicacion              string
	SectorEconomicoID             *string
	SectorEconomicoTexto          *string
	ExpedidaPor                   *string
	FechaExpedicion               *time.Time
	Estado                        string
	InfoAdicional                 *string
	AplicaGeneral                 bool
	Aplica                        ConjuntoCaracteristicas
	Version                       int
	Activo                        bool
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}

// ClaveNatural identidad legal normalizada usada para deduplicar.
type ClaveNatural struct {
	Tipo     string
	Numero   string
	Anio     int
	Articulo string
}

// Clave devuelve la clave natural normalizada de la norma.
func (n *Norma) Clave() ClaveNatural {
	art := ""
	if n.Articulo != nil {
		art = *n.Articulo
	}
	return NuevaClaveNatural(n.TipoNorma, n.NumeroNorma, n.Anio, art)
}

// SinPredicado informa si la norma no tiene ninguna bandera de aplicabilidad (condición de calidad de datos).
func (n *Norma) SinPredicado() bool {
	return !n.AplicaGeneral && n.Aplica.Vacio()
}

// TextoBusqueda texto normalizado sobre el que se hace la búsqueda libre del catálogo.
func (n *Norma) TextoBusqueda() string {
	return NormalizarTexto(strings.Join([]string{
		n.TipoNorma, n.NumeroNorma, n.DescripcionNorma, n.TemaGeneral, n.ClasificacionNorma,
	}, " "))
}

// Identificador texto legible, ej. "Resolución 0312 de 2019 Art. 5".
func (n *Norma) Identificador() string {
	var b strings.Builder
	b.WriteString(n.TipoNorma)
	b.WriteString(" ")
	b.WriteString(n.NumeroNorma)
	b.WriteString(" de ")
	b.WriteString(strconv.Itoa(n.Anio))
	if n.Articulo != nil && *n.Articulo != "" {
		b.WriteString(" Art. ")
		b.WriteString(*n.Articulo)
	}
	return b.String()
}

// NuevaClaveNatural normaliza los componentes para que variaciones de escritura colisionen:
// tipo en minúsculas sin tildes, número sin puntos ni ceros a la izquierda, artículo sin prefijo "art.".
func NuevaClaveNatural(tipo, numero string, anio int, articulo string) ClaveNatural {
	return ClaveNatural{
		Tipo:     NormalizarTexto(tipo),
		Numero:   normalizarNumero(numero),
		Anio:     anio,
		Articulo: NormalizarArticulo(articulo),
	}
}

// String forma serializada estable (columna clave_natural con índice único en PostgreSQL).
func (k ClaveNatural) String() string {
	return k.Tipo + "|" + k.Numero + "|" + strconv.Itoa(k.Anio) + "|" + k.Articulo
}

// Completa informa si la clave tiene tipo, número y año.
func (k ClaveNatural) Completa() bool {
	return k.Tipo != "" && k.Numero != "" && k.Anio > 0
}

// QuitarTildes elimina marcas diacríticas (á → a, ñ → n). Un transformer por llamada: no es seguro compartirlo.
func QuitarTildes(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizarTexto minúsculas, sin tildes, espacios colapsados.
func NormalizarTexto(s string) string {
	out := QuitarTildes(s)
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

func normalizarNumero(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}

// NormalizarArticulo quita prefijos como "Art.", "Artículo" o "Arts." y espacios.
func NormalizarArticulo(s string) string {
	s = NormalizarTexto(s)
	for _, p := range []string{"articulos", "articulo", "arts.", "art.", "arts", "art"} {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	return strings.TrimSpace(s)
}

// EstadoNormaValido valida el ciclo de vida.
func EstadoNormaValido(s string) bool {
	switch s {
	case EstadoNormaVigente, EstadoNormaDerogada, EstadoNormaModificada:
		return true
	}
	return false
}

// AmbitoValido valida el ámbito de aplicación.
func AmbitoValido(s string) bool {
	switch s {
	case AmbitoNacional, AmbitoDepartamental, AmbitoMunicipal, AmbitoInternacional:
		return true
	}
	return false
}
