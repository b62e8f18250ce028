package entity

import (
	"math/bits"
	"strings"
)

// Caracteristica es una condición de riesgo/perfil reconocida. El mismo vocabulario se usa en el
// predicado de aplicabilidad de la norma (aplica_*) y en el perfil de la empresa (tiene_*).
// Para agregar una característica: nueva constante + fila en catalogoCaracteristicas + campo en
// los DTO de empresa y norma.
type Caracteristica uint8

const (
	CaracTrabajadoresIndependientes Caracteristica = iota
	CaracTeletrabajo
	CaracTrabajoAlturas
	CaracEspaciosConfinados
	CaracTrabajoCaliente
	CaracSustanciasQuimicas
	CaracRadiaciones
	CaracTrabajoNocturno
	CaracMenoresEdad
	CaracMujeresEmbarazadas
	CaracConductores
	CaracManipulacionAlimentos
	CaracMaquinariaPesada
	CaracRiesgoElectrico
	CaracRiesgoBiologico
	CaracTrabajoExcavaciones
	CaracTrabajoAdministrativo

	numCaracteristicas
)

type infoCaracteristica struct {
	codigo         string
	columnaNorma   string
	columnaEmpresa string
	etiqueta       string
}

var catalogoCaracteristicas = [numCaracteristicas]infoCaracteristica{
	CaracTrabajadoresIndependientes: {"trabajadores_independientes", "aplica_trabajadores_independientes", "tiene_trabajadores_independientes", "Trabajadores independientes"},
	CaracTeletrabajo:                {"teletrabajo", "aplica_teletrabajo", "tiene_teletrabajo", "Teletrabajo"},
	CaracTrabajoAlturas:             {"trabajo_alturas", "aplica_trabajo_alturas", "tiene_trabajo_alturas", "Trabajo en alturas"},
	CaracEspaciosConfinados:         {"espacios_confinados", "aplica_espacios_confinados", "tiene_trabajo_espacios_confinados", "Espacios confinados"},
	CaracTrabajoCaliente:            {"trabajo_caliente", "aplica_trabajo_caliente", "tiene_trabajo_caliente", "Trabajo en caliente"},
	CaracSustanciasQuimicas:         {"sustancias_quimicas", "aplica_sustancias_quimicas", "tiene_sustancias_quimicas", "Sustancias químicas"},
	CaracRadiaciones:                {"radiaciones", "aplica_radiaciones", "tiene_radiaciones", "Radiaciones"},
	CaracTrabajoNocturno:            {"trabajo_nocturno", "aplica_trabajo_nocturno", "tiene_trabajo_nocturno", "Trabajo nocturno"},
	CaracMenoresEdad:                {"menores_edad", "aplica_menores_edad", "tiene_menores_edad", "Menores de edad"},
	CaracMujeresEmbarazadas:         {"mujeres_embarazadas", "aplica_mujeres_embarazadas", "tiene_mujeres_embarazadas", "Mujeres embarazadas"},
	CaracConductores:                {"conductores", "aplica_conductores", "tiene_conductores", "Conductores"},
	CaracManipulacionAlimentos:      {"manipulacion_alimentos", "aplica_manipulacion_alimentos", "tiene_manipulacion_alimentos", "Manipulación de alimentos"},
	CaracMaquinariaPesada:           {"maquinaria_pesada", "aplica_maquinaria_pesada", "tiene_maquinaria_pesada", "Maquinaria pesada"},
	CaracRiesgoElectrico:            {"riesgo_electrico", "aplica_riesgo_electrico", "tiene_riesgo_electrico", "Riesgo eléctrico"},
	CaracRiesgoBiologico:            {"riesgo_biologico", "aplica_riesgo_biologico", "tiene_riesgo_biologico", "Riesgo biológico"},
	CaracTrabajoExcavaciones:        {"trabajo_excavaciones", "aplica_trabajo_excavaciones", "tiene_trabajo_excavaciones", "Trabajo en excavaciones"},
	CaracTrabajoAdministrativo:      {"trabajo_administrativo", "aplica_trabajo_administrativo", "tiene_trabajo_administrativo", "Trabajo administrativo"},
}

// TodasLasCaracteristicas devuelve el vocabulario completo en orden estable.
func TodasLasCaracteristicas() []Caracteristica {
	out := make([]Caracteristica, numCaracteristicas)
	for i := range out {
		out[i] = Caracteristica(i)
	}
	return out
}

// Codigo nombre canónico (snake_case) de la característica.
func (c Caracteristica) Codigo() string { return c.info().codigo }

// ColumnaNorma nombre de la columna/campo en la norma (aplica_*).
func (c Caracteristica) ColumnaNorma() string { return c.info().columnaNorma }

// ColumnaEmpresa nombre de la columna/campo en la empresa (tiene_*).
func (c Caracteristica) ColumnaEmpresa() string { return c.info().columnaEmpresa }

// Etiqueta texto legible para reportes.
func (c Caracteristica) Etiqueta() string { return c.info().etiqueta }

func (c Caracteristica) String() string { return c.Codigo() }

// Valida informa si c pertenece al vocabulario.
func (c Caracteristica) Valida() bool { return c < numCaracteristicas }

func (c Caracteristica) info() infoCaracteristica {
	if !c.Valida() {
		return infoCaracteristica{}
	}
	return catalogoCaracteristicas[c]
}

// CaracteristicaPorCodigo resuelve un código, una columna aplica_* o una columna tiene_*.
func CaracteristicaPorCodigo(s string) (Caracteristica, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range catalogoCaracteristicas {
		if s == info.codigo || s == info.columnaNorma || s == info.columnaEmpresa {
			return Caracteristica(i), true
		}
	}
	return 0, false
}

// ConjuntoCaracteristicas bitset sobre el vocabulario cerrado.
type ConjuntoCaracteristicas uint32

// NuevoConjunto construye un conjunto con las características dadas.
func NuevoConjunto(cs ...Caracteristica) ConjuntoCaracteristicas {
	var s ConjuntoCaracteristicas
	for _, c := range cs {
		s = s.Con(c)
	}
	return s
}

// Con devuelve una copia con c activada. Valores fuera del vocabulario se ignoran.
func (s ConjuntoCaracteristicas) Con(c Caracteristica) ConjuntoCaracteristicas {
	if !c.Valida() {
		return s
	}
	return s | 1<<c
}

// Sin devuelve una copia con c desactivada.
func (s ConjuntoCaracteristicas) Sin(c Caracteristica) ConjuntoCaracteristicas {
	return s &^ (1 << c)
}

// Tiene informa si c está activa.
func (s ConjuntoCaracteristicas) Tiene(c Caracteristica) bool {
	return c.Valida() && s&(1<<c) != 0
}

// Comparte informa si ambos conjuntos tienen al menos una característica en común.
func (s ConjuntoCaracteristicas) Comparte(o ConjuntoCaracteristicas) bool {
	return s&o != 0
}

// Vacio informa si no hay ninguna característica activa.
func (s ConjuntoCaracteristicas) Vacio() bool { return s == 0 }

// Len cantidad de características activas.
func (s ConjuntoCaracteristicas) Len() int { return bits.OnesCount32(uint32(s)) }

// Lista características activas en orden del vocabulario.
func (s ConjuntoCaracteristicas) Lista() []Caracteristica {
	out := make([]Caracteristica, 0, s.Len())
	for _, c := range TodasLasCaracteristicas() {
		if s.Tiene(c) {
			out = append(out, c)
		}
	}
	return out
}

// Codigos lista de códigos activos (forma persistida en PostgreSQL como TEXT[]).
func (s ConjuntoCaracteristicas) Codigos() []string {
	out := make([]string, 0, s.Len())
	for _, c := range s.Lista() {
		out = append(out, c.Codigo())
	}
	return out
}

// ConjuntoDesdeCodigos inverso de Codigos. Códigos desconocidos se ignoran.
func ConjuntoDesdeCodigos(codigos []string) ConjuntoCaracteristicas {
	var s ConjuntoCaracteristicas
	for _, cod := range codigos {
		if c, ok := CaracteristicaPorCodigo(cod); ok {
			s = s.Con(c)
		}
	}
	return s
}
