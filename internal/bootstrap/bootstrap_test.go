package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/pkg/config"
)

func TestNew_Memoria(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	out, err := a.Empresas.Create(context.Background(), dto.CreateEmpresaRequest{Nombre: "ACME"})
	require.NoError(t, err)
	res, err := a.Matriz.Sync(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)

	mfs, err := a.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestNew_AliasInexistente(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Import:  config.ImportConfig{HeaderAliasesPath: filepath.Join(t.TempDir(), "no.yaml")},
	}
	_, err := New(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
