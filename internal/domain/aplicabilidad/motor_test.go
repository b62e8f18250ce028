package aplicabilidad_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/aplicabilidad"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

func empresaCon(cs ...entity.Caracteristica) *entity.Empresa {
	return &entity.Empresa{ID: "e1", Nombre: "ACME", Activo: true, Caracteristicas: entity.NuevoConjunto(cs...)}
}

func normaCon(id string, general bool, cs ...entity.Caracteristica) *entity.Norma {
	return &entity.Norma{
		ID: id, TipoNorma: "Ley", NumeroNorma: id, Anio: 2015,
		Estado: entity.EstadoNormaVigente, AplicaGeneral: general, Aplica: entity.NuevoConjunto(cs...),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluate
// ──────────────────────────────────────────────────────────────────────────────

// Una norma general aplica a cualquier perfil, incluido el vacío y el completo.
func TestEvaluate_GeneralAplicaSiempre(t *testing.T) {
	norma := normaCon("A", true)
	perfiles := []*entity.Empresa{
		empresaCon(),
		empresaCon(entity.CaracTeletrabajo),
		empresaCon(entity.TodasLasCaracteristicas()...),
	}
	for _, e := range perfiles {
		assert.True(t, aplicabilidad.Evaluate(e, norma), "norma general debe aplicar a %v", e.Caracteristicas.Codigos())
	}
}

// Norma solo de teletrabajo: Evaluate == empresa.tiene_teletrabajo para cada característica del vocabulario.
func TestEvaluate_SoloTeletrabajo(t *testing.T) {
	norma := normaCon("B", false, entity.CaracTeletrabajo)
	assert.False(t, aplicabilidad.Evaluate(empresaCon(), norma))
	assert.True(t, aplicabilidad.Evaluate(empresaCon(entity.CaracTeletrabajo), norma))

	for _, c := range entity.TodasLasCaracteristicas() {
		e := empresaCon(c)
		assert.Equal(t, c == entity.CaracTeletrabajo, aplicabilidad.Evaluate(e, norma), "perfil %s", c)
	}
}

// Basta una característica compartida (OR lógico).
func TestEvaluate_CualquierCaracteristicaCompartida(t *testing.T) {
	norma := normaCon("C", false, entity.CaracTrabajoAlturas, entity.CaracRiesgoElectrico)
	assert.True(t, aplicabilidad.Evaluate(empresaCon(entity.CaracRiesgoElectrico, entity.CaracConductores), norma))
	assert.False(t, aplicabilidad.Evaluate(empresaCon(entity.CaracConductores), norma))
}

// Una norma sin banderas nunca aplica, ni siquiera a una empresa con todas las características.
func TestEvaluate_SinBanderasNuncaAplica(t *testing.T) {
	norma := normaCon("D", false)
	assert.False(t, aplicabilidad.Evaluate(empresaCon(entity.TodasLasCaracteristicas()...), norma))
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeApplicableSet
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeApplicableSet_ExcluyeDerogadasYMarcaSinPredicado(t *testing.T) {
	derogada := normaCon("X", true)
	derogada.Estado = entity.EstadoNormaDerogada
	modificada := normaCon("M", false, entity.CaracTeletrabajo)
	modificada.Estado = entity.EstadoNormaModificada

	catalogo := []*entity.Norma{
		normaCon("A", true),
		normaCon("B", false, entity.CaracTeletrabajo),
		normaCon("C", false, entity.CaracTrabajoAlturas),
		normaCon("D", false),
		derogada,
		modificada,
		nil,
	}
	res := aplicabilidad.ComputeApplicableSet(empresaCon(entity.CaracTeletrabajo), catalogo)

	assert.Len(t, res.Aplicables, 3)
	assert.True(t, res.Contiene("A"))
	assert.True(t, res.Contiene("B"))
	assert.True(t, res.Contiene("M"), "modificada sigue siendo evaluable")
	assert.False(t, res.Contiene("C"))
	assert.False(t, res.Contiene("X"), "derogada nunca entra al conjunto")
	assert.Equal(t, []string{"D"}, res.SinPredicado)
}

// Determinismo y ausencia de estado: invocaciones repetidas y concurrentes dan el mismo resultado.
func TestComputeApplicableSet_DeterministaEnParalelo(t *testing.T) {
	catalogo := []*entity.Norma{
		normaCon("A", true),
		normaCon("B", false, entity.CaracTeletrabajo),
		normaCon("C", false, entity.CaracConductores),
	}
	e1 := empresaCon(entity.CaracTeletrabajo)
	e2 := empresaCon(entity.CaracConductores)
	want1 := aplicabilidad.ComputeApplicableSet(e1, catalogo)
	want2 := aplicabilidad.ComputeApplicableSet(e2, catalogo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.Equal(t, want1, aplicabilidad.ComputeApplicableSet(e1, catalogo))
		}()
		go func() {
			defer wg.Done()
			assert.Equal(t, want2, aplicabilidad.ComputeApplicableSet(e2, catalogo))
		}()
	}
	wg.Wait()
}

func TestMotivos(t *testing.T) {
	norma := normaCon("C", false, entity.CaracTrabajoAlturas, entity.CaracRiesgoElectrico)
	motivos := aplicabilidad.Motivos(empresaCon(entity.CaracRiesgoElectrico, entity.CaracTeletrabajo), norma)
	require.Len(t, motivos, 1)
	assert.Equal(t, entity.CaracRiesgoElectrico, motivos[0])
}
