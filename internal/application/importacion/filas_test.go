package importacion_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

func TestParseTipoNumero(t *testing.T) {
	casos := []struct {
		raw    string
		tipo   string
		numero string
		anio   int
		ok     bool
	}{
		{"Resolución 0312 de 2019", "Resolución", "0312", 2019, true},
		{"Decreto 1072/2015", "Decreto", "1072", 2015, true},
		{"Ley No. 1562 de 2012", "Ley", "1562", 2012, true},
		{"Decreto Único Reglamentario 1072-2015", "Decreto Único Reglamentario", "1072", 2015, true},
		{"Circular 0026", "Circular", "0026", 0, true},
		{"sin numero", "", "", 0, false},
	}
	for _, c := range casos {
		t.Run(c.raw, func(t *testing.T) {
			tipo, numero, anio, ok := importacion.ParseTipoNumero(c.raw)
			assert.Equal(t, c.ok, ok)
			if !c.ok {
				return
			}
			assert.Equal(t, c.tipo, tipo)
			assert.Equal(t, c.numero, numero)
			assert.Equal(t, c.anio, anio)
		})
	}
}

func TestParseFila_DescripcionPorDefectoYAdvertencia(t *testing.T) {
	m := importacion.NuevoMapeo([]string{"clasificacion_norma", "tema_general", "anio", "tipo_norma", "numero_norma", "articulo"}, importacion.AliasPorDefecto())
	n, adv, err := m.ParseFila([]string{"Decreto", "SST", "2015.0", "Decreto", "1072", "2.2.4.6.1"})
	require.NoError(t, err)
	assert.Equal(t, 2015, n.Anio)
	assert.Equal(t, "Decreto 1072 de 2015 Art. 2.2.4.6.1", n.DescripcionNorma)
	assert.Equal(t, entity.EstadoNormaVigente, n.Estado)
	assert.Equal(t, entity.AmbitoNacional, n.AmbitoAplicacion)
	assert.Len(t, adv, 1)
}

func TestParseFila_AnioDistintoAlDelTextoCombinado(t *testing.T) {
	m := importacion.NuevoMapeo([]string{"clasificacion_norma", "tema_general", "anio", "Norma", "aplica_general"}, importacion.AliasPorDefecto())

	n, adv, err := m.ParseFila([]string{"Resolución", "SST", "2018", "Resolución 0312 de 2019", "si"})
	require.NoError(t, err)
	assert.Equal(t, 2018, n.Anio)
	assert.Equal(t, "0312", n.NumeroNorma)
	require.Len(t, adv, 1)
	assert.Contains(t, adv[0], "no coincide")

	_, adv, err = m.ParseFila([]string{"Resolución", "SST", "2019", "Resolución 0312 de 2019", "si"})
	require.NoError(t, err)
	assert.Empty(t, adv)

	_, adv, err = m.ParseFila([]string{"Resolución", "SST", "2019", "Resolución 0312", "si"})
	require.NoError(t, err)
	assert.Empty(t, adv)
}

func TestParseFila_AcumulaErrores(t *testing.T) {
	m := importacion.NuevoMapeo([]string{"anio", "tipo_norma", "numero_norma", "estado"}, importacion.AliasPorDefecto())
	_, _, err := m.ParseFila([]string{"1750", "Ley", "1", "olvidada"})
	require.Error(t, err)
	assert.Equal(t, "clasificacion_norma requerida; tema_general requerido; anio inválido: 1750; estado inválido: olvidada", err.Error())
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"SI", "sí", "X", "1", "true", "Aplica"} {
		b, err := importacion.ParseBool(v)
		require.NoError(t, err, v)
		assert.True(t, b, v)
	}
	for _, v := range []string{"", "NO", "n", "0", "No aplica", "-"} {
		b, err := importacion.ParseBool(v)
		require.NoError(t, err, v)
		assert.False(t, b, v)
	}
	_, err := importacion.ParseBool("tal vez")
	assert.Error(t, err)
}

func TestParseFecha(t *testing.T) {
	esperado := time.Date(2019, 2, 13, 0, 0, 0, 0, time.UTC)
	for _, v := range []string{"2019-02-13", "13/02/2019", "43509"} {
		got, ok := importacion.ParseFecha(v)
		require.True(t, ok, v)
		assert.True(t, esperado.Equal(got), "%s → %s", v, got)
	}
	_, ok := importacion.ParseFecha("febrero")
	assert.False(t, ok)
}

func TestNormalizarEncabezado(t *testing.T) {
	assert.Equal(t, "clasificacion norma", importacion.NormalizarEncabezado(" Clasificación_Norma "))
	assert.Equal(t, "ano", importacion.NormalizarEncabezado("AÑO"))
	assert.Equal(t, "aplica trabajo en alturas", importacion.NormalizarEncabezado("Aplica trabajo en alturas"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Alias
// ──────────────────────────────────────────────────────────────────────────────

func TestAliasPorDefecto_CubreVocabulario(t *testing.T) {
	a := importacion.AliasPorDefecto()
	for _, c := range entity.TodasLasCaracteristicas() {
		assert.Equal(t, c.ColumnaNorma(), a.Resolver(c.ColumnaNorma()))
		assert.Equal(t, c.ColumnaNorma(), a.Resolver(c.Etiqueta()))
		assert.Equal(t, c.ColumnaNorma(), a.Resolver("Aplica "+c.Etiqueta()))
	}
	for _, h := range importacion.EncabezadosCatalogo() {
		assert.NotEmpty(t, a.Resolver(h), "encabezado de exportación sin alias: %s", h)
	}
	assert.Empty(t, a.Resolver("Observaciones"))
}

func TestCargarAlias(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alias.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
alias:
  clasificacion_norma: ["Familia normativa"]
  aplica_teletrabajo: ["Trabajo remoto"]
`), 0o600))

	a, err := importacion.CargarAlias(path)
	require.NoError(t, err)
	assert.Equal(t, "clasificacion_norma", a.Resolver("familia  normativa"))
	assert.Equal(t, "aplica_teletrabajo", a.Resolver("TRABAJO REMOTO"))
	assert.Equal(t, "tema_general", a.Resolver("Tema"), "conserva los alias por defecto")

	malo := filepath.Join(dir, "malo.yaml")
	require.NoError(t, os.WriteFile(malo, []byte("alias:\n  campo_inventado: [\"x\"]\n"), 0o600))
	_, err = importacion.CargarAlias(malo)
	assert.Error(t, err)

	a, err = importacion.CargarAlias("")
	require.NoError(t, err)
	assert.NotEmpty(t, a)
}
