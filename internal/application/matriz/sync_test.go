package matriz_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sync
// ──────────────────────────────────────────────────────────────────────────────

func TestSync_CreaPendientesParaNormasAplicables(t *testing.T) {
	f := nuevoFixture(t)
	a := f.norma(t, "0312", true)
	b := f.norma(t, "0001", false, entity.CaracTeletrabajo)
	f.norma(t, "0002", false, entity.CaracTrabajoAlturas)
	e := f.empresa(t, entity.CaracTeletrabajo)

	res, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.NowInapplicable)
	assert.Equal(t, 0, res.Unchanged)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, res.CreatedNormaIDs)

	for _, n := range []*entity.Norma{a, b} {
		c := f.registro(t, e.ID, n.ID)
		assert.Equal(t, entity.EstadoPendiente, c.Estado)
		assert.True(t, c.AplicaEmpresa)
	}
}

func TestSync_Idempotente(t *testing.T) {
	f := nuevoFixture(t)
	f.norma(t, "0312", true)
	f.norma(t, "0001", false, entity.CaracTeletrabajo)
	e := f.empresa(t, entity.CaracTeletrabajo)

	_, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)

	res, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 2, res.Unchanged)
	assert.Empty(t, res.CreatedNormaIDs)

	registros, err := f.repos.Cumplimientos.ListByEmpresa(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, registros, 2)
}

// Norma A general, B solo teletrabajo: activar y desactivar teletrabajo nunca borra registros.
func TestSync_CambioDePerfilTeletrabajo(t *testing.T) {
	f := nuevoFixture(t)
	a := f.norma(t, "0312", true)
	b := f.norma(t, "0001", false, entity.CaracTeletrabajo)
	e := f.empresa(t)

	res, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, res.CreatedNormaIDs)

	f.perfil(t, e, entity.CaracTeletrabajo)
	res, err = f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, res.CreatedNormaIDs)
	assert.Equal(t, 1, res.Unchanged)

	f.evaluar(t, e.ID, a.ID, dto.UpdateCumplimientoRequest{Estado: ptr(entity.EstadoCumple)})

	f.perfil(t, e)
	res, err = f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.NowInapplicable)
	assert.Equal(t, []string{b.ID}, res.InapplicableIDs)

	// El registro de B sigue existiendo.
	assert.Equal(t, entity.EstadoPendiente, f.registro(t, e.ID, b.ID).Estado)

	st, err := f.svc.Estadisticas(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalNormasAplicables)
	assert.Equal(t, 1, st.PorEstado.Cumple)
	assert.Equal(t, 1, st.NormasNoAplicablesPorPerfil)
	assert.InDelta(t, 100.0, st.PorcentajeCumplimiento, 0.001)
}

func TestSync_NoSobrescribeEvaluaciones(t *testing.T) {
	f := nuevoFixture(t)
	a := f.norma(t, "0312", true)
	e := f.empresa(t)
	_, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)

	f.evaluar(t, e.ID, a.ID, dto.UpdateCumplimientoRequest{
		Estado:                ptr(entity.EstadoEnProceso),
		EvidenciaCumplimiento: ptr("acta 12"),
		PlanAccion:            ptr("capacitar brigada"),
		Responsable:           ptr("Coordinador SST"),
		FechaCompromiso:       ptr("2024-12-31"),
	})
	antes := f.registro(t, e.ID, a.ID)

	_, err = f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, antes, f.registro(t, e.ID, a.ID))
}

func TestSync_RespetaOverrideNoAplica(t *testing.T) {
	f := nuevoFixture(t)
	a := f.norma(t, "0312", true)
	e := f.empresa(t)
	_, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)

	f.evaluar(t, e.ID, a.ID, dto.UpdateCumplimientoRequest{
		AplicaEmpresa:         ptr(false),
		JustificacionNoAplica: ptr("sede sin operación"),
	})

	res, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Unchanged)
	c := f.registro(t, e.ID, a.ID)
	assert.False(t, c.AplicaEmpresa)
	assert.Equal(t, entity.EstadoNoAplica, c.Estado)
}

func TestSync_IgnoraDerogadasEInactivasYReportaSinPredicado(t *testing.T) {
	f := nuevoFixture(t)
	derogada := f.norma(t, "0100", true)
	derogada.Estado = entity.EstadoNormaDerogada
	require.NoError(t, f.repos.Normas.Update(f.ctx, derogada))
	inactiva := f.norma(t, "0101", true)
	inactiva.Activo = false
	require.NoError(t, f.repos.Normas.Update(f.ctx, inactiva))
	f.norma(t, "0102", false)
	e := f.empresa(t, entity.TodasLasCaracteristicas()...)

	res, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.NormasSinPredicado)
}

func TestSync_EmpresaInactiva(t *testing.T) {
	f := nuevoFixture(t)
	f.norma(t, "0312", true)
	e := f.empresa(t)
	e.Activo = false
	require.NoError(t, f.repos.Empresas.Update(f.ctx, e))

	_, err := f.svc.Sync(f.ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	registros, err := f.repos.Cumplimientos.ListByEmpresa(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, registros)
}

func TestSync_EmpresaInexistente(t *testing.T) {
	f := nuevoFixture(t)
	_, err := f.svc.Sync(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSync_CandadoTomadoDevuelveConflict(t *testing.T) {
	f := nuevoFixture(t)
	f.norma(t, "0312", true)
	e := f.empresa(t)

	unlock, err := f.locker.TryLock(f.ctx, matriz.LockKeySync(e.ID))
	require.NoError(t, err)

	_, err = f.svc.Sync(f.ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	unlock()
	res, err := f.svc.Sync(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

// Dos sincronizaciones simultáneas: nunca duplican registros; la perdedora recibe Conflict.
func TestSync_ConcurrenteSinDuplicados(t *testing.T) {
	f := nuevoFixture(t)
	for _, n := range []string{"1", "2", "3", "4", "5"} {
		f.norma(t, n, true)
	}
	e := f.empresa(t)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Sync(f.ctx, e.ID)
		}()
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrConflict), "error inesperado: %v", err)
	}
	assert.GreaterOrEqual(t, exitos, 1)

	registros, err := f.repos.Cumplimientos.ListByEmpresa(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, registros, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// SyncAll
// ──────────────────────────────────────────────────────────────────────────────

func TestSyncAll_SoloEmpresasActivas(t *testing.T) {
	f := nuevoFixture(t)
	f.norma(t, "0312", true)
	f.norma(t, "0001", false, entity.CaracConductores)
	f.empresa(t)
	f.empresa(t, entity.CaracConductores)
	inactiva := f.empresa(t)
	inactiva.Activo = false
	require.NoError(t, f.repos.Empresas.Update(f.ctx, inactiva))

	out, err := f.svc.SyncAll(f.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Empresas)
	assert.Equal(t, 2, out.Exitosas)
	assert.Equal(t, 0, out.Fallidas)
	assert.Equal(t, 3, out.TotalCreated)
}

func TestSyncAll_ConflictoSeReportaPorEmpresa(t *testing.T) {
	f := nuevoFixture(t)
	f.norma(t, "0312", true)
	bloqueada := f.empresa(t)
	f.empresa(t)

	unlock, err := f.locker.TryLock(f.ctx, matriz.LockKeySync(bloqueada.ID))
	require.NoError(t, err)
	defer unlock()

	out, err := f.svc.SyncAll(f.ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Exitosas)
	assert.Equal(t, 1, out.Fallidas)
	for _, it := range out.Items {
		if it.EmpresaID == bloqueada.ID {
			assert.NotEmpty(t, it.Error)
			assert.Nil(t, it.Result)
		}
	}
}
