package dto

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// Los DTO deben tener exactamente un campo por característica del vocabulario.
func TestCaracteristicasDTO_CubrenVocabulario(t *testing.T) {
	var emp CaracteristicasEmpresaDTO
	var nor AplicabilidadNormaDTO
	camposEmp := emp.Campos()
	camposNor := nor.Campos()
	for _, c := range entity.TodasLasCaracteristicas() {
		assert.Contains(t, camposEmp, c, "falta tiene_* para %s", c)
		assert.Contains(t, camposNor, c, "falta aplica_* para %s", c)
	}
	assert.Len(t, camposEmp, len(entity.TodasLasCaracteristicas()))
	assert.Equal(t, reflect.TypeOf(emp).NumField(), len(camposEmp))
	// aplica_general no es una característica.
	assert.Equal(t, reflect.TypeOf(nor).NumField()-1, len(camposNor))
}

// El tag JSON de cada campo coincide con la columna declarada en el vocabulario.
func TestCaracteristicasDTO_TagsJSON(t *testing.T) {
	for _, c := range entity.TodasLasCaracteristicas() {
		var emp CaracteristicasEmpresaDTO
		*emp.Campos()[c] = true
		raw, err := json.Marshal(emp)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(raw), `"`+c.ColumnaEmpresa()+`":true`), "%s → %s", c, raw)

		var nor AplicabilidadNormaDTO
		*nor.Campos()[c] = true
		raw, err = json.Marshal(nor)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(raw), `"`+c.ColumnaNorma()+`":true`), "%s → %s", c, raw)
	}
}

func TestCaracteristicasDTO_IdaYVuelta(t *testing.T) {
	set := entity.NuevoConjunto(entity.CaracTeletrabajo, entity.CaracRiesgoBiologico, entity.CaracTrabajoAdministrativo)
	assert.Equal(t, set, CaracteristicasEmpresaDesde(set).Conjunto())

	d := AplicabilidadNormaDesde(true, set)
	assert.True(t, d.AplicaGeneral)
	assert.Equal(t, set, d.Conjunto())
}

func TestNewPaginated(t *testing.T) {
	p := PageRequest{}
	p.DefaultPage(20, 100)
	assert.Equal(t, PageRequest{Page: 1, Size: 20}, p)

	out := NewPaginated([]int{1, 2}, 45, PageRequest{Page: 2, Size: 20})
	assert.Equal(t, 3, out.Pages)
	assert.True(t, out.HasNext)
	assert.True(t, out.HasPrev)

	vacio := NewPaginated[int](nil, 0, PageRequest{Page: 1, Size: 20})
	assert.NotNil(t, vacio.Items)
	assert.Equal(t, 0, vacio.Pages)
}

func TestDefaultPage_PaginaEnormeNoDesborda(t *testing.T) {
	p := PageRequest{Page: 1<<62 + 2, Size: 50}
	p.DefaultPage(20, 100)
	assert.Equal(t, 50, p.Size)
	assert.GreaterOrEqual(t, p.Offset(), 0)

	p = PageRequest{Page: math.MaxInt, Size: 1000}
	p.DefaultPage(20, 100)
	assert.Equal(t, 100, p.Size)
	assert.GreaterOrEqual(t, p.Offset(), 0)
}
