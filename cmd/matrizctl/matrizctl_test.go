package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/bootstrap"
	"github.com/Bernah2o/sst-matriz-legal/pkg/config"
)

const catalogoCSV = "Clasificación;Tema general;Año;Tipo;Número;Descripción;General;Teletrabajo\n" +
	"Resolución;SG-SST;2019;Resolución;0312;Estándares mínimos;SI;\n" +
	"Ley;Teletrabajo;2008;Ley;1221;Teletrabajo;;SI\n"

func nuevaApp(t *testing.T) *bootstrap.App {
	t.Helper()
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	a, err := bootstrap.New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	return a
}

func ejecutar(t *testing.T, a *bootstrap.App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(func(context.Context) (*bootstrap.App, error) { return a, nil }, &out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func archivo(t *testing.T, nombre, contenido string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), nombre)
	require.NoError(t, os.WriteFile(path, []byte(contenido), 0o600))
	return path
}

func TestImportarSincronizarEstadisticas(t *testing.T) {
	a := nuevaApp(t)
	path := archivo(t, "normas.csv", catalogoCSV)

	out, err := ejecutar(t, a, "preview", path)
	require.NoError(t, err)
	var preview dto.ImportPreview
	require.NoError(t, json.Unmarshal([]byte(out), &preview))
	assert.Equal(t, 2, preview.NormasNuevasPreview)

	out, err = ejecutar(t, a, "importar", path, "--usuario", "operador")
	require.NoError(t, err)
	var res dto.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.NormasNuevas)
	require.NotNil(t, res.CreadoPor)
	assert.Equal(t, "operador", *res.CreadoPor)

	empresa, err := a.Empresas.Create(context.Background(), dto.CreateEmpresaRequest{
		Nombre:                    "ACME",
		CaracteristicasEmpresaDTO: dto.CaracteristicasEmpresaDTO{TieneTeletrabajo: true},
	})
	require.NoError(t, err)

	out, err = ejecutar(t, a, "sincronizar", "--todas")
	require.NoError(t, err)
	var all dto.SyncAllResponse
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Equal(t, 2, all.TotalCreated)

	out, err = ejecutar(t, a, "estadisticas", empresa.ID)
	require.NoError(t, err)
	var stats dto.EstadisticasResponse
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats.TotalNormasAplicables)
	assert.Equal(t, 2, stats.PorEstado.Pendiente)
}

func TestExportarEmpresa(t *testing.T) {
	a := nuevaApp(t)
	_, err := ejecutar(t, a, "importar", archivo(t, "normas.csv", catalogoCSV))
	require.NoError(t, err)
	empresa, err := a.Empresas.Create(context.Background(), dto.CreateEmpresaRequest{Nombre: "ACME"})
	require.NoError(t, err)

	dir := t.TempDir()
	xlsx := filepath.Join(dir, "matriz.xlsx")
	_, err = ejecutar(t, a, "exportar", "empresa", empresa.ID, "--out", xlsx)
	require.NoError(t, err)
	assert.FileExists(t, xlsx)

	pdf := filepath.Join(dir, "reporte.pdf")
	_, err = ejecutar(t, a, "exportar", "empresa", empresa.ID, "--pdf", "--out", pdf)
	require.NoError(t, err)
	doc, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	catalogo := filepath.Join(dir, "catalogo.xlsx")
	_, err = ejecutar(t, a, "exportar", "catalogo", "--out", catalogo)
	require.NoError(t, err)
	assert.FileExists(t, catalogo)
}

func TestSincronizar_FlagsExcluyentes(t *testing.T) {
	a := nuevaApp(t)
	for _, args := range [][]string{
		{"sincronizar"},
		{"sincronizar", "--todas", "--empresa", "x"},
	} {
		_, err := ejecutar(t, a, args...)
		var ee *exitErr
		require.True(t, errors.As(err, &ee), "args %v", args)
		assert.Equal(t, exitUsage, ee.code)
	}
}

func TestArchivoInexistente_CodigoDeUso(t *testing.T) {
	_, err := ejecutar(t, nuevaApp(t), "preview", filepath.Join(t.TempDir(), "no.csv"))
	var ee *exitErr
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, exitUsage, ee.code)
}

func TestOpenerFalla_CodigoDeConfiguracion(t *testing.T) {
	root := newRootCmd(func(context.Context) (*bootstrap.App, error) {
		return nil, errors.New("sin base de datos")
	}, &bytes.Buffer{})
	root.SetArgs([]string{"estadisticas", "x"})
	err := root.ExecuteContext(context.Background())
	var ee *exitErr
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, exitConfig, ee.code)
}
