package importacion_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Preview
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_AnioFaltante(t *testing.T) {
	f := nuevoFixture(t, 0)
	data := f.con(fila("Resolución", "0312", "", "", "SI", ""))

	out, err := f.svc.Preview(f.ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalFilas)
	assert.Equal(t, []domain.FilaError{{Fila: 2, Error: "anio requerido"}}, out.ErroresValidacion)
	assert.Equal(t, 0, out.NormasNuevasPreview)
	assert.Equal(t, 0, out.NormasExistentesPreview)
}

func TestPreview_NoEscribeYClasifica(t *testing.T) {
	f := nuevoFixture(t, 0)
	_, err := f.svc.Commit(f.ctx, "base.xlsx", f.con(fila("Decreto", "1072", "2015", "", "SI", "")), false, "")
	require.NoError(t, err)

	data := f.con(
		fila("Decreto", "1072", "2015", "", "SI", ""),
		fila("Resolución", "0312", "2019", "", "SI", ""),
		[]string{"", "", "", "", "", "", "", "", ""},
		fila("Ley", "1562", "2012", "", "", ""),
	)
	out, err := f.svc.Preview(f.ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalFilas)
	assert.Equal(t, 2, out.NormasNuevasPreview)
	assert.Equal(t, 1, out.NormasExistentesPreview)
	assert.Empty(t, out.ErroresValidacion)
	assert.Equal(t, []dto.FilaAdvertencia{{Fila: 5, Advertencia: "la norma no tiene ninguna bandera de aplicabilidad: no aplicará a ninguna empresa"}}, out.Advertencias)
	require.Len(t, out.MuestraDatos, 3)
	assert.Equal(t, 2, out.MuestraDatos[0]["fila"])

	claves, err := f.repos.Normas.Claves(f.ctx)
	require.NoError(t, err)
	assert.Len(t, claves, 1, "preview no escribe")
}

// Variantes de escritura de la misma clave natural dentro del archivo: la primera es nueva, la segunda existente.
func TestPreview_DuplicadoDentroDelArchivo(t *testing.T) {
	f := nuevoFixture(t, 0)
	data := f.con(
		fila("Resolución", "0312", "2019", "Art. 5", "SI", ""),
		fila("resolucion", "312", "2019", "artículo 5", "SI", ""),
	)
	out, err := f.svc.Preview(f.ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NormasNuevasPreview)
	assert.Equal(t, 1, out.NormasExistentesPreview)
}

func TestPreview_DuplicadoConContenidoDistintoAdvierte(t *testing.T) {
	f := nuevoFixture(t, 0)
	data := f.con(
		fila("Resolución", "0312", "2019", "Art. 5", "SI", ""),
		fila("Ley", "1562", "2012", "", "SI", ""),
		fila("resolucion", "312", "2019", "artículo 5", "", "SI"),
	)
	out, err := f.svc.Preview(f.ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NormasNuevasPreview)
	assert.Equal(t, 1, out.NormasExistentesPreview)
	require.Len(t, out.Advertencias, 1)
	assert.Equal(t, 4, out.Advertencias[0].Fila)
	assert.Contains(t, out.Advertencias[0].Advertencia, "fila 2")
}

func TestPreview_ColumnasMapeadas(t *testing.T) {
	f := nuevoFixture(t, 0)
	f.lector.filas = [][]string{
		{"CLASIFICACIÓN", "Tema", "Año", "Norma", "Teletrabajo", "Columna rara", "Tema"},
		{"Ley", "SST", "2012", "Ley 1562 de 2012", "x", "??", "otro"},
	}
	out, err := f.svc.Preview(f.ctx, []byte("x"))
	require.NoError(t, err)
	require.Empty(t, out.ErroresValidacion)
	assert.Equal(t, 1, out.NormasNuevasPreview)

	m := out.ColumnasMapeadas
	require.NotNil(t, m["CLASIFICACIÓN"])
	assert.Equal(t, "clasificacion_norma", *m["CLASIFICACIÓN"])
	assert.Equal(t, "anio", *m["Año"])
	assert.Equal(t, "tipo_numero_raw", *m["Norma"])
	assert.Equal(t, "aplica_teletrabajo", *m["Teletrabajo"])
	assert.Nil(t, m["Columna rara"])
	assert.Equal(t, "tema_general", *m["Tema"], "la primera columna que reclama el campo gana")
}

func TestPreview_ArchivoInvalido(t *testing.T) {
	f := nuevoFixture(t, 2)

	_, err := f.svc.Preview(f.ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.lector.filas = [][]string{}
	_, err = f.svc.Preview(f.ctx, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	data := f.con(
		fila("Ley", "1", "2012", "", "SI", ""),
		fila("Ley", "2", "2012", "", "SI", ""),
		fila("Ley", "3", "2012", "", "SI", ""),
	)
	_, err = f.svc.Preview(f.ctx, data)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_ConteosYReimportacion(t *testing.T) {
	f := nuevoFixture(t, 0)
	filas := [][]string{
		fila("Decreto", "1072", "2015", "", "SI", ""),
		fila("Resolución", "0312", "2019", "", "SI", ""),
		fila("Ley", "2088", "2021", "", "", "SI"),
	}

	res, err := f.svc.Commit(f.ctx, "matriz.xlsx", f.con(filas...), false, "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalFilas)
	assert.Equal(t, 3, res.NormasNuevas)
	assert.Equal(t, entity.ImportacionCompletada, res.Estado)
	require.NotNil(t, res.CreadoPor)

	// Mismo archivo sin sobrescribir: todo se omite.
	res, err = f.svc.Commit(f.ctx, "matriz.xlsx", f.con(filas...), false, "admin")
	require.NoError(t, err)
	assert.Equal(t, 0, res.NormasNuevas)
	assert.Equal(t, 3, res.NormasOmitidas)

	// Sobrescribiendo sin cambios: idempotente.
	res, err = f.svc.Commit(f.ctx, "matriz.xlsx", f.con(filas...), true, "admin")
	require.NoError(t, err)
	assert.Equal(t, 0, res.NormasNuevas)
	assert.Equal(t, 0, res.NormasActualizadas)
	assert.Equal(t, 3, res.NormasSinCambios)

	// Un cambio real sube la versión.
	filas[2] = fila("Ley", "2088", "2021", "", "SI", "SI")
	res, err = f.svc.Commit(f.ctx, "matriz.xlsx", f.con(filas...), true, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, res.NormasActualizadas)
	assert.Equal(t, 2, res.NormasSinCambios)

	n, err := f.repos.Normas.GetByClave(f.ctx, entity.NuevaClaveNatural("Ley", "2088", 2021, ""))
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 2, n.Version)
	assert.True(t, n.AplicaGeneral)
	assert.True(t, n.Aplica.Tiene(entity.CaracTeletrabajo))

	todas, err := f.repos.Normas.ListAll(f.ctx, repository.NormaFilter{})
	require.NoError(t, err)
	assert.Len(t, todas, 3)
}

func TestCommit_ErroresParcialesYBitacora(t *testing.T) {
	f := nuevoFixture(t, 0)
	data := f.con(
		fila("Decreto", "1072", "2015", "", "SI", ""),
		fila("Decreto", "1295", "mil novecientos", "", "SI", ""),
		fila("Decreto", "1443", "2014", "", "quizás", ""),
	)
	res, err := f.svc.Commit(f.ctx, "parcial.csv", data, false, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.NormasNuevas)
	assert.Equal(t, 2, res.Errores)
	assert.Equal(t, entity.ImportacionParcial, res.Estado)
	require.Len(t, res.ErroresDetalle, 2)
	assert.Equal(t, 3, res.ErroresDetalle[0].Fila)
	assert.Equal(t, "anio inválido: mil novecientos", res.ErroresDetalle[0].Error)
	assert.Equal(t, 4, res.ErroresDetalle[1].Fila)
	assert.Contains(t, res.ErroresDetalle[1].Error, "aplica_general")

	page, err := f.svc.Importaciones(f.ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	imp := page.Items[0]
	assert.Equal(t, "parcial.csv", imp.NombreArchivo)
	assert.Equal(t, entity.ImportacionParcial, imp.Estado)
	require.NotNil(t, imp.LogErrores)
	assert.True(t, strings.Contains(*imp.LogErrores, `"fila":3`))
}

func TestCommit_FalloDeEscrituraEnUnaFilaNoAfectaAlResto(t *testing.T) {
	f := nuevoFixtureConTx(t, 0, func(inner importacion.TxRunner) importacion.TxRunner {
		return &txConFallo{inner: inner, numero: "1295"}
	})
	data := f.con(
		fila("Decreto", "1072", "2015", "", "SI", ""),
		fila("Decreto", "1295", "1994", "", "SI", ""),
		fila("Decreto", "1443", "2014", "", "SI", ""),
	)
	res, err := f.svc.Commit(f.ctx, "falla.xlsx", data, false, "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.NormasNuevas)
	assert.Equal(t, 1, res.Errores)
	assert.Equal(t, entity.ImportacionParcial, res.Estado)
	require.Len(t, res.ErroresDetalle, 1)
	assert.Equal(t, 3, res.ErroresDetalle[0].Fila)
	assert.Contains(t, res.ErroresDetalle[0].Error, "conexión reiniciada")

	claves, err := f.repos.Normas.Claves(f.ctx)
	require.NoError(t, err)
	assert.Len(t, claves, 2)
	_, existe := claves[entity.NuevaClaveNatural("Decreto", "1295", 1994, "").String()]
	assert.False(t, existe)
}

func TestCommit_TodoInvalidoEsFallida(t *testing.T) {
	f := nuevoFixture(t, 0)
	res, err := f.svc.Commit(f.ctx, "malo.xlsx", f.con(fila("Decreto", "1072", "", "", "SI", "")), false, "")
	require.NoError(t, err)
	assert.Equal(t, entity.ImportacionFallida, res.Estado)
	assert.Equal(t, 0, res.NormasNuevas)
}

// Exportar el catálogo y volver a importarlo no cambia nada.
func TestExportarCatalogo_Reimportable(t *testing.T) {
	f := nuevoFixture(t, 0)
	_, err := f.svc.Commit(f.ctx, "base.xlsx", f.con(
		fila("Decreto", "1072", "2015", "Art. 2.2.4.6.8", "SI", ""),
		fila("Resolución", "0312", "2019", "", "", "SI"),
	), false, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportarCatalogo(f.ctx, repository.NormaFilter{}, &buf))
	require.Len(t, f.hojas.filas, 3)

	f.lector.filas = f.hojas.filas
	prev, err := f.svc.Preview(f.ctx, []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, prev.ErroresValidacion)
	assert.Equal(t, 2, prev.NormasExistentesPreview)
	for h, campo := range prev.ColumnasMapeadas {
		assert.NotNil(t, campo, "encabezado exportado sin mapear: %s", h)
	}

	res, err := f.svc.Commit(f.ctx, "export.xlsx", []byte("x"), true, "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.NormasSinCambios)
	assert.Equal(t, 0, res.NormasActualizadas)
}
