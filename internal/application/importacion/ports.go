package importacion

import (
	"context"
	"io"
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// TablaReader convierte el archivo subido (xlsx o csv) en filas de celdas; la primera es el encabezado.
type TablaReader interface {
	Read(data []byte) ([][]string, error)
}

// HojaWriter serializa filas en una hoja de cálculo.
type HojaWriter interface {
	Write(w io.Writer, hoja string, filas [][]string) error
}

// TxRunner abre una transacción por archivo.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(tx ImportTx) error) error
}

// ImportTx transacción de importación. Fila ejecuta fn en un punto de guardado: si fn falla solo se
// revierte esa fila y el resto del archivo continúa.
type ImportTx interface {
	Fila(ctx context.Context, fn func(repo repository.NormaRepository) error) error
}

// Recorder métricas de importación.
type Recorder interface {
	ObserveImport(start time.Time, estado string, nuevas, actualizadas, errores int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveImport(time.Time, string, int, int, int) {}
