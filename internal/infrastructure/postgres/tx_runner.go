package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// Ensure TxRunner implements matriz.TxRunner and importacion.TxRunner.
var _ matriz.TxRunner = (*TxRunner)(nil)
var _ importacion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCumplimiento inicia una transacción, ejecuta fn con el repositorio de cumplimiento atado a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunCumplimiento(ctx context.Context, fn func(repo repository.CumplimientoRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCumplimientoRepository(tx))
	})
}

// RunImport una transacción por archivo; cada fila corre en su propio savepoint.
func (r *TxRunner) RunImport(ctx context.Context, fn func(tx importacion.ImportTx) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(importTx{tx: tx})
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.StorageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.StorageError("commit transaction", err)
	}
	return nil
}

type importTx struct {
	tx pgx.Tx
}

// Fila abre un SAVEPOINT (pgx.Tx.Begin anidado): si fn falla solo se revierte la fila.
func (t importTx) Fila(ctx context.Context, fn func(repo repository.NormaRepository) error) error {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return domain.StorageError("savepoint", err)
	}
	if err := fn(NewNormaRepository(sp)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w (rollback savepoint: %v)", err, rbErr)
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return domain.StorageError("release savepoint", err)
	}
	return nil
}
