package memory

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var (
	_ matriz.TxRunner      = (*TxRunner)(nil)
	_ importacion.TxRunner = (*TxRunner)(nil)
)

// TxRunner sin rollback: cada operación del repositorio ya es atómica bajo el mutex del Store.
type TxRunner struct{ s *Store }

// RunCumplimiento ejecuta fn con el repositorio de cumplimiento en memoria.
func (t *TxRunner) RunCumplimiento(_ context.Context, fn func(repo repository.CumplimientoRepository) error) error {
	return fn(&CumplimientoRepo{s: t.s})
}

// RunImport ejecuta fn con una transacción de importación en memoria.
func (t *TxRunner) RunImport(_ context.Context, fn func(tx importacion.ImportTx) error) error {
	return fn(importTx{repo: &NormaRepo{s: t.s}})
}

type importTx struct{ repo *NormaRepo }

func (tx importTx) Fila(_ context.Context, fn func(repo repository.NormaRepository) error) error {
	return fn(tx.repo)
}
