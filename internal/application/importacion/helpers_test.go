package importacion_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/memory"
)

var ahora = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// lectorFijo devuelve siempre las mismas filas (el contenido del archivo se ignora).
type lectorFijo struct{ filas [][]string }

func (l *lectorFijo) Read([]byte) ([][]string, error) { return l.filas, nil }

type hojaFake struct{ filas [][]string }

func (h *hojaFake) Write(_ io.Writer, _ string, filas [][]string) error {
	h.filas = filas
	return nil
}

// txConFallo delega en el TxRunner en memoria y hace fallar la escritura de las normas con el número dado.
type txConFallo struct {
	inner  importacion.TxRunner
	numero string
}

func (t *txConFallo) RunImport(ctx context.Context, fn func(tx importacion.ImportTx) error) error {
	return t.inner.RunImport(ctx, func(tx importacion.ImportTx) error {
		return fn(filaConFallo{tx: tx, numero: t.numero})
	})
}

type filaConFallo struct {
	tx     importacion.ImportTx
	numero string
}

func (f filaConFallo) Fila(ctx context.Context, fn func(repo repository.NormaRepository) error) error {
	return f.tx.Fila(ctx, func(repo repository.NormaRepository) error {
		return fn(normaRepoConFallo{NormaRepository: repo, numero: f.numero})
	})
}

type normaRepoConFallo struct {
	repository.NormaRepository
	numero string
}

var errEscritura = domain.StorageError("insertar norma", errors.New("conexión reiniciada"))

func (r normaRepoConFallo) Create(ctx context.Context, n *entity.Norma) error {
	if n.NumeroNorma == r.numero {
		return errEscritura
	}
	return r.NormaRepository.Create(ctx, n)
}

type fixture struct {
	ctx    context.Context
	repos  *memory.Repos
	lector *lectorFijo
	hojas  *hojaFake
	svc    *importacion.Service
}

func nuevoFixture(t *testing.T, maxFilas int) *fixture {
	t.Helper()
	return nuevoFixtureConTx(t, maxFilas, nil)
}

// nuevoFixtureConTx permite reemplazar el TxRunner; nil usa el del almacenamiento en memoria.
func nuevoFixtureConTx(t *testing.T, maxFilas int, tx func(importacion.TxRunner) importacion.TxRunner) *fixture {
	t.Helper()
	f := &fixture{
		ctx:    context.Background(),
		repos:  memory.NewRepos(),
		lector: &lectorFijo{},
		hojas:  &hojaFake{},
	}
	var runner importacion.TxRunner = f.repos.Tx
	if tx != nil {
		runner = tx(runner)
	}
	f.svc = importacion.NewService(importacion.Deps{
		Normas:        f.repos.Normas,
		Importaciones: f.repos.Importaciones,
		Tx:            runner,
		Lector:        f.lector,
		Hojas:         f.hojas,
		MaxFilas:      maxFilas,
		Logger:        zerolog.Nop(),
		Now:           func() time.Time { return ahora },
	})
	return f
}

var encabezados = []string{"Clasificación", "Tema general", "Año", "Tipo", "Número", "Artículo", "Descripción", "General", "Teletrabajo"}

// con carga las filas que devolverá el lector; la primera es el encabezado.
func (f *fixture) con(filas ...[]string) []byte {
	f.lector.filas = append([][]string{encabezados}, filas...)
	return []byte("archivo")
}

func fila(tipo, numero, anio, articulo string, general, teletrabajo string) []string {
	return []string{"Resolución", "SG-SST", anio, tipo, numero, articulo, "", general, teletrabajo}
}
