package matriz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

func TestBulkUpdate_FallosPorRegistro(t *testing.T) {
	f := nuevoFixture(t)
	a := f.norma(t, "1", true)
	b := f.norma(t, "2", true)
	e := f.empresa(t)
	otra := f.empresa(t)
	for _, id := range []string{e.ID, otra.ID} {
		_, err := f.svc.Sync(f.ctx, id)
		require.NoError(t, err)
	}
	ra := f.registro(t, e.ID, a.ID)
	rb := f.registro(t, e.ID, b.ID)
	ajeno := f.registro(t, otra.ID, a.ID)

	out, err := f.svc.BulkUpdate(f.ctx, e.ID, dto.BulkCumplimientoRequest{
		CumplimientoIDs: []string{ra.ID, ajeno.ID, rb.ID, "no-existe"},
		Estado:          entity.EstadoCumple,
	}, "auditor-1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.UpdatedCount)
	require.Len(t, out.Failures, 2)
	assert.Equal(t, dto.BulkFailure{ID: ajeno.ID, Reason: "el registro pertenece a otra empresa"}, out.Failures[0])
	assert.Equal(t, dto.BulkFailure{ID: "no-existe", Reason: "registro no encontrado"}, out.Failures[1])

	assert.Equal(t, entity.EstadoCumple, f.registro(t, e.ID, a.ID).Estado)
	assert.Equal(t, entity.EstadoCumple, f.registro(t, e.ID, b.ID).Estado)
	assert.Equal(t, entity.EstadoPendiente, f.registro(t, otra.ID, a.ID).Estado)

	hist, err := f.svc.Historial(f.ctx, e.ID, ra.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.EstadoPendiente, *hist[0].EstadoAnterior)
}

func TestBulkUpdate_MismoEstadoCuentaSinHistorial(t *testing.T) {
	f := nuevoFixture(t)
	a := f.norma(t, "1", true)
	e := f.empresa(t)
	_, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	r := f.registro(t, e.ID, a.ID)

	out, err := f.svc.BulkUpdate(f.ctx, e.ID, dto.BulkCumplimientoRequest{
		CumplimientoIDs: []string{r.ID},
		Estado:          entity.EstadoPendiente,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, out.UpdatedCount)

	hist, err := f.svc.Historial(f.ctx, e.ID, r.ID)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestBulkUpdate_Validaciones(t *testing.T) {
	f := nuevoFixture(t)
	e := f.empresa(t)

	_, err := f.svc.BulkUpdate(f.ctx, e.ID, dto.BulkCumplimientoRequest{CumplimientoIDs: []string{"x"}, Estado: "hecho"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.BulkUpdate(f.ctx, e.ID, dto.BulkCumplimientoRequest{Estado: entity.EstadoCumple}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.BulkUpdate(f.ctx, "no-existe", dto.BulkCumplimientoRequest{CumplimientoIDs: []string{"x"}, Estado: entity.EstadoCumple}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkUpdate_RespetaOverrideNoAplica(t *testing.T) {
	f := nuevoFixture(t)
	a := f.norma(t, "1", true)
	b := f.norma(t, "2", true)
	e := f.empresa(t)
	_, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	f.evaluar(t, e.ID, a.ID, dto.UpdateCumplimientoRequest{
		AplicaEmpresa:         ptr(false),
		JustificacionNoAplica: ptr("la empresa no opera en alturas"),
	})
	ra := f.registro(t, e.ID, a.ID)
	rb := f.registro(t, e.ID, b.ID)

	out, err := f.svc.BulkUpdate(f.ctx, e.ID, dto.BulkCumplimientoRequest{
		CumplimientoIDs: []string{ra.ID, rb.ID},
		Estado:          entity.EstadoCumple,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, out.UpdatedCount)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, ra.ID, out.Failures[0].ID)
	assert.Contains(t, out.Failures[0].Reason, "no aplicable")

	ra = f.registro(t, e.ID, a.ID)
	assert.False(t, ra.AplicaEmpresa)
	assert.Equal(t, entity.EstadoNoAplica, ra.Estado)
	assert.Equal(t, entity.EstadoCumple, f.registro(t, e.ID, b.ID).Estado)

	out, err = f.svc.BulkUpdate(f.ctx, e.ID, dto.BulkCumplimientoRequest{
		CumplimientoIDs: []string{ra.ID},
		Estado:          entity.EstadoNoAplica,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, out.UpdatedCount)
	assert.Empty(t, out.Failures)
}
