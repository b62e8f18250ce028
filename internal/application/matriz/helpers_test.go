package matriz_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/lock"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/memory"
)

var hoy = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type hojaFake struct {
	hoja  string
	filas [][]string
}

func (h *hojaFake) Write(_ io.Writer, hoja string, filas [][]string) error {
	h.hoja, h.filas = hoja, filas
	return nil
}

type reporteFake struct{ ultimo *matriz.ReporteEmpresa }

func (r *reporteFake) RenderReporte(_ context.Context, rep *matriz.ReporteEmpresa) ([]byte, error) {
	r.ultimo = rep
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	ctx     context.Context
	repos   *memory.Repos
	locker  *lock.Local
	hojas   *hojaFake
	reporte *reporteFake
	svc     *matriz.Service
}

func nuevoFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		repos:   memory.NewRepos(),
		locker:  lock.NewLocal(),
		hojas:   &hojaFake{},
		reporte: &reporteFake{},
	}
	f.svc = matriz.NewService(matriz.Deps{
		Empresas:      f.repos.Empresas,
		Normas:        f.repos.Normas,
		Cumplimientos: f.repos.Cumplimientos,
		Importaciones: f.repos.Importaciones,
		Tx:            f.repos.Tx,
		Locker:        f.locker,
		Hojas:         f.hojas,
		Reportes:      f.reporte,
		Logger:        zerolog.Nop(),
		Now:           func() time.Time { return hoy },
	})
	return f
}

func (f *fixture) empresa(t *testing.T, cs ...entity.Caracteristica) *entity.Empresa {
	t.Helper()
	e := &entity.Empresa{
		ID:              uuid.New().String(),
		Nombre:          "ACME S.A.S.",
		Caracteristicas: entity.NuevoConjunto(cs...),
		Activo:          true,
		CreatedAt:       hoy,
		UpdatedAt:       hoy,
	}
	require.NoError(t, f.repos.Empresas.Create(f.ctx, e))
	return e
}

func (f *fixture) perfil(t *testing.T, e *entity.Empresa, cs ...entity.Caracteristica) {
	t.Helper()
	e.Caracteristicas = entity.NuevoConjunto(cs...)
	require.NoError(t, f.repos.Empresas.Update(f.ctx, e))
}

func (f *fixture) norma(t *testing.T, numero string, general bool, cs ...entity.Caracteristica) *entity.Norma {
	t.Helper()
	n := &entity.Norma{
		ID:                 uuid.New().String(),
		TipoNorma:          "Resolución",
		NumeroNorma:        numero,
		Anio:               2019,
		ClasificacionNorma: "Resolución",
		TemaGeneral:        "SG-SST",
		DescripcionNorma:   "Norma " + numero,
		AmbitoAplicacion:   entity.AmbitoNacional,
		Estado:             entity.EstadoNormaVigente,
		AplicaGeneral:      general,
		Aplica:             entity.NuevoConjunto(cs...),
		Version:            1,
		Activo:             true,
		CreatedAt:          hoy,
		UpdatedAt:          hoy,
	}
	require.NoError(t, f.repos.Normas.Create(f.ctx, n))
	return n
}

func (f *fixture) registro(t *testing.T, empresaID, normaID string) *entity.Cumplimiento {
	t.Helper()
	c, err := f.repos.Cumplimientos.GetByEmpresaNorma(f.ctx, empresaID, normaID)
	require.NoError(t, err)
	require.NotNil(t, c, "se esperaba registro para norma %s", normaID)
	return c
}

func (f *fixture) evaluar(t *testing.T, empresaID, normaID string, in dto.UpdateCumplimientoRequest) *dto.CumplimientoResponse {
	t.Helper()
	out, err := f.svc.ActualizarCumplimiento(f.ctx, empresaID, normaID, in, "auditor-1")
	require.NoError(t, err)
	return out
}

func ptr[T any](v T) *T { return &v }
