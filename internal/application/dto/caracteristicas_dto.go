package dto

import "github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"

// CaracteristicasEmpresaDTO perfil de riesgo de la empresa (un campo tiene_* por característica).
type CaracteristicasEmpresaDTO struct {
	TieneTrabajadoresIndependientes bool `json:"tiene_trabajadores_independientes"`
	TieneTeletrabajo                bool `json:"tiene_teletrabajo"`
	TieneTrabajoAlturas             bool `json:"tiene_trabajo_alturas"`
	TieneTrabajoEspaciosConfinados  bool `json:"tiene_trabajo_espacios_confinados"`
	TieneTrabajoCaliente            bool `json:"tiene_trabajo_caliente"`
	TieneSustanciasQuimicas         bool `json:"tiene_sustancias_quimicas"`
	TieneRadiaciones                bool `json:"tiene_radiaciones"`
	TieneTrabajoNocturno            bool `json:"tiene_trabajo_nocturno"`
	TieneMenoresEdad                bool `json:"tiene_menores_edad"`
	TieneMujeresEmbarazadas         bool `json:"tiene_mujeres_embarazadas"`
	TieneConductores                bool `json:"tiene_conductores"`
	TieneManipulacionAlimentos      bool `json:"tiene_manipulacion_alimentos"`
	TieneMaquinariaPesada           bool `json:"tiene_maquinaria_pesada"`
	TieneRiesgoElectrico            bool `json:"tiene_riesgo_electrico"`
	TieneRiesgoBiologico            bool `json:"tiene_riesgo_biologico"`
	TieneTrabajoExcavaciones        bool `json:"tiene_trabajo_excavaciones"`
	TieneTrabajoAdministrativo      bool `json:"tiene_trabajo_administrativo"`
}

// Campos mapea cada característica a su campo. Debe cubrir todo el vocabulario.
func (d *CaracteristicasEmpresaDTO) Campos() map[entity.Caracteristica]*bool {
	return map[entity.Caracteristica]*bool{
		entity.CaracTrabajadoresIndependientes: &d.TieneTrabajadoresIndependientes,
		entity.CaracTeletrabajo:                &d.TieneTeletrabajo,
		entity.CaracTrabajoAlturas:             &d.TieneTrabajoAlturas,
		entity.CaracEspaciosConfinados:         &d.TieneTrabajoEspaciosConfinados,
		entity.CaracTrabajoCaliente:            &d.TieneTrabajoCaliente,
		entity.CaracSustanciasQuimicas:         &d.TieneSustanciasQuimicas,
		entity.CaracRadiaciones:                &d.TieneRadiaciones,
		entity.CaracTrabajoNocturno:            &d.TieneTrabajoNocturno,
		entity.CaracMenoresEdad:                &d.TieneMenoresEdad,
		entity.CaracMujeresEmbarazadas:         &d.TieneMujeresEmbarazadas,
		entity.CaracConductores:                &d.TieneConductores,
		entity.CaracManipulacionAlimentos:      &d.TieneManipulacionAlimentos,
		entity.CaracMaquinariaPesada:           &d.TieneMaquinariaPesada,
		entity.CaracRiesgoElectrico:            &d.TieneRiesgoElectrico,
		entity.CaracRiesgoBiologico:            &d.TieneRiesgoBiologico,
		entity.CaracTrabajoExcavaciones:        &d.TieneTrabajoExcavaciones,
		entity.CaracTrabajoAdministrativo:      &d.TieneTrabajoAdministrativo,
	}
}

// Conjunto convierte el DTO al bitset de dominio.
func (d CaracteristicasEmpresaDTO) Conjunto() entity.ConjuntoCaracteristicas {
	var s entity.ConjuntoCaracteristicas
	for c, v := range d.Campos() {
		if *v {
			s = s.Con(c)
		}
	}
	return s
}

// CaracteristicasEmpresaDesde construye el DTO desde el bitset.
func CaracteristicasEmpresaDesde(s entity.ConjuntoCaracteristicas) CaracteristicasEmpresaDTO {
	var d CaracteristicasEmpresaDTO
	for c, v := range d.Campos() {
		*v = s.Tiene(c)
	}
	return d
}

// AplicabilidadNormaDTO predicado de aplicabilidad de la norma (aplica_general + un aplica_* por característica).
type AplicabilidadNormaDTO struct {
	AplicaGeneral                    bool `json:"aplica_general"`
	AplicaTrabajadoresIndependientes bool `json:"aplica_trabajadores_independientes"`
	AplicaTeletrabajo                bool `json:"aplica_teletrabajo"`
	AplicaTrabajoAlturas             bool `json:"aplica_trabajo_alturas"`
	AplicaEspaciosConfinados         bool `json:"aplica_espacios_confinados"`
	AplicaTrabajoCaliente            bool `json:"aplica_trabajo_caliente"`
	AplicaSustanciasQuimicas         bool `json:"aplica_sustancias_quimicas"`
	AplicaRadiaciones                bool `json:"aplica_radiaciones"`
	AplicaTrabajoNocturno            bool `json:"aplica_trabajo_nocturno"`
	AplicaMenoresEdad                bool `json:"aplica_menores_edad"`
	AplicaMujeresEmbarazadas         bool `json:"aplica_mujeres_embarazadas"`
	AplicaConductores                bool `json:"aplica_conductores"`
	AplicaManipulacionAlimentos      bool `json:"aplica_manipulacion_alimentos"`
	AplicaMaquinariaPesada           bool `json:"aplica_maquinaria_pesada"`
	AplicaRiesgoElectrico            bool `json:"aplica_riesgo_electrico"`
	AplicaRiesgoBiologico            bool `json:"aplica_riesgo_biologico"`
	AplicaTrabajoExcavaciones        bool `json:"aplica_trabajo_excavaciones"`
	AplicaTrabajoAdministrativo      bool `json:"aplica_trabajo_administrativo"`
}

// Campos mapea cada característica a su campo aplica_*. Debe cubrir todo el vocabulario.
func (d *AplicabilidadNormaDTO) Campos() map[entity.Caracteristica]*bool {
	return map[entity.Caracteristica]*bool{
		entity.CaracTrabajadoresIndependientes: &d.AplicaTrabajadoresIndependientes,
		entity.CaracTeletrabajo:                &d.AplicaTeletrabajo,
		entity.CaracTrabajoAlturas:             &d.AplicaTrabajoAlturas,
		entity.CaracEspaciosConfinados:         &d.AplicaEspaciosConfinados,
		entity.CaracTrabajoCaliente:            &d.AplicaTrabajoCaliente,
		entity.CaracSustanciasQuimicas:         &d.AplicaSustanciasQuimicas,
		entity.CaracRadiaciones:                &d.AplicaRadiaciones,
		entity.CaracTrabajoNocturno:            &d.AplicaTrabajoNocturno,
		entity.CaracMenoresEdad:                &d.AplicaMenoresEdad,
		entity.CaracMujeresEmbarazadas:         &d.AplicaMujeresEmbarazadas,
		entity.CaracConductores:                &d.AplicaConductores,
		entity.CaracManipulacionAlimentos:      &d.AplicaManipulacionAlimentos,
		entity.CaracMaquinariaPesada:           &d.AplicaMaquinariaPesada,
		entity.CaracRiesgoElectrico:            &d.AplicaRiesgoElectrico,
		entity.CaracRiesgoBiologico:            &d.AplicaRiesgoBiologico,
		entity.CaracTrabajoExcavaciones:        &d.AplicaTrabajoExcavaciones,
		entity.CaracTrabajoAdministrativo:      &d.AplicaTrabajoAdministrativo,
	}
}

// Conjunto convierte los aplica_* al bitset de dominio (sin aplica_general).
func (d AplicabilidadNormaDTO) Conjunto() entity.ConjuntoCaracteristicas {
	var s entity.ConjuntoCaracteristicas
	for c, v := range d.Campos() {
		if *v {
			s = s.Con(c)
		}
	}
	return s
}

// AplicabilidadNormaDesde construye el DTO desde la norma.
func AplicabilidadNormaDesde(general bool, s entity.ConjuntoCaracteristicas) AplicabilidadNormaDTO {
	d := AplicabilidadNormaDTO{AplicaGeneral: general}
	for c, v := range d.Campos() {
		*v = s.Tiene(c)
	}
	return d
}
