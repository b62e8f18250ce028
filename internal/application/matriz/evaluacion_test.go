package matriz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

func TestActualizarCumplimiento_CreaRegistroSiNoExiste(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	e := f.empresa(t)

	out := f.evaluar(t, e.ID, n.ID, dto.UpdateCumplimientoRequest{
		Estado:          ptr(entity.EstadoNoCumple),
		PlanAccion:      ptr("elaborar procedimiento"),
		FechaCompromiso: ptr("2024-09-30"),
	})
	assert.Equal(t, entity.EstadoNoCumple, out.Estado)
	assert.True(t, out.AplicaEmpresa)
	require.NotNil(t, out.FechaCompromiso)
	assert.Equal(t, "2024-09-30", *out.FechaCompromiso)
	require.NotNil(t, out.EvaluadoPor)
	assert.Equal(t, "auditor-1", *out.EvaluadoPor)
	require.NotNil(t, out.FechaUltimaEvaluacion)
	assert.Equal(t, hoy, *out.FechaUltimaEvaluacion)

	hist, err := f.svc.Historial(f.ctx, e.ID, out.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Nil(t, hist[0].EstadoAnterior)
	assert.Equal(t, entity.EstadoNoCumple, hist[0].EstadoNuevo)
}

func TestActualizarCumplimiento_HistorialSoloEnCambioDeEstado(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	e := f.empresa(t)
	_, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)

	out := f.evaluar(t, e.ID, n.ID, dto.UpdateCumplimientoRequest{Estado: ptr(entity.EstadoEnProceso)})
	f.evaluar(t, e.ID, n.ID, dto.UpdateCumplimientoRequest{Observaciones: ptr("sin cambio de estado")})
	f.evaluar(t, e.ID, n.ID, dto.UpdateCumplimientoRequest{Estado: ptr(entity.EstadoCumple)})

	hist, err := f.svc.Historial(f.ctx, e.ID, out.ID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.EstadoCumple, hist[0].EstadoNuevo)
	require.NotNil(t, hist[0].EstadoAnterior)
	assert.Equal(t, entity.EstadoEnProceso, *hist[0].EstadoAnterior)
	assert.Equal(t, entity.EstadoPendiente, *hist[1].EstadoAnterior)
}

func TestActualizarCumplimiento_NoAplicaExigeJustificacion(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	e := f.empresa(t)
	_, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)

	_, err = f.svc.ActualizarCumplimiento(f.ctx, e.ID, n.ID, dto.UpdateCumplimientoRequest{AplicaEmpresa: ptr(false)}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	c := f.registro(t, e.ID, n.ID)
	assert.True(t, c.AplicaEmpresa)
	assert.Equal(t, entity.EstadoPendiente, c.Estado)

	out := f.evaluar(t, e.ID, n.ID, dto.UpdateCumplimientoRequest{
		AplicaEmpresa:         ptr(false),
		JustificacionNoAplica: ptr("no hay trabajadores en la sede"),
	})
	assert.False(t, out.AplicaEmpresa)
	assert.Equal(t, entity.EstadoNoAplica, out.Estado)

	// Reactivar sin estado vuelve a pendiente.
	out = f.evaluar(t, e.ID, n.ID, dto.UpdateCumplimientoRequest{AplicaEmpresa: ptr(true)})
	assert.True(t, out.AplicaEmpresa)
	assert.Equal(t, entity.EstadoPendiente, out.Estado)
}

func TestActualizarCumplimiento_NoAplicaConEstadoDistinto(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	e := f.empresa(t)

	_, err := f.svc.ActualizarCumplimiento(f.ctx, e.ID, n.ID, dto.UpdateCumplimientoRequest{
		AplicaEmpresa:         ptr(false),
		JustificacionNoAplica: ptr("x"),
		Estado:                ptr(entity.EstadoCumple),
	}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestActualizarCumplimiento_EntradaInvalidaNoEscribeNada(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	e := f.empresa(t)

	casos := map[string]dto.UpdateCumplimientoRequest{
		"estado desconocido": {Estado: ptr("terminado"), Observaciones: ptr("x")},
		"fecha inválida":     {Estado: ptr(entity.EstadoCumple), FechaCompromiso: ptr("31/12/2024")},
	}
	for nombre, in := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := f.svc.ActualizarCumplimiento(f.ctx, e.ID, n.ID, in, "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			c, err := f.repos.Cumplimientos.GetByEmpresaNorma(f.ctx, e.ID, n.ID)
			require.NoError(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestActualizarCumplimiento_NormaDerogadaSinRegistro(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	n.Estado = entity.EstadoNormaDerogada
	require.NoError(t, f.repos.Normas.Update(f.ctx, n))
	e := f.empresa(t)

	_, err := f.svc.ActualizarCumplimiento(f.ctx, e.ID, n.ID, dto.UpdateCumplimientoRequest{Estado: ptr(entity.EstadoCumple)}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestActualizarCumplimiento_NoEncontrados(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	e := f.empresa(t)

	_, err := f.svc.ActualizarCumplimiento(f.ctx, "otra", n.ID, dto.UpdateCumplimientoRequest{}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.ActualizarCumplimiento(f.ctx, e.ID, "otra", dto.UpdateCumplimientoRequest{}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistorial_RegistroDeOtraEmpresa(t *testing.T) {
	f := nuevoFixture(t)
	n := f.norma(t, "0312", true)
	e1 := f.empresa(t)
	e2 := f.empresa(t)
	out := f.evaluar(t, e1.ID, n.ID, dto.UpdateCumplimientoRequest{Estado: ptr(entity.EstadoCumple)})

	_, err := f.svc.Historial(f.ctx, e2.ID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
