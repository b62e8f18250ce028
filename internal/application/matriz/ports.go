package matriz

import (
	"context"
	"io"
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de cumplimiento atado a ella.
// Cada registro de cumplimiento se escribe en su propia transacción (atomicidad por registro).
type TxRunner interface {
	RunCumplimiento(ctx context.Context, fn func(repo repository.CumplimientoRepository) error) error
}

// Locker exclusión mutua por clave. TryLock no espera: si la clave está tomada devuelve domain.ErrConflict.
// unlock es idempotente.
type Locker interface {
	TryLock(ctx context.Context, key string) (unlock func(), err error)
}

// Recorder métricas de las operaciones con estado. Implementado por infrastructure/metrics.
type Recorder interface {
	ObserveSync(start time.Time, created int, err error)
	ObserveBulk(updated, failed int)
	ObserveEvaluacion(estado string)
}

// HojaWriter serializa filas (la primera es el encabezado) en una hoja de cálculo.
type HojaWriter interface {
	Write(w io.Writer, hoja string, filas [][]string) error
}

// ReporteRenderer genera el documento PDF del reporte de cumplimiento de una empresa.
type ReporteRenderer interface {
	RenderReporte(ctx context.Context, r *ReporteEmpresa) ([]byte, error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSync(time.Time, int, error) {}
func (noopRecorder) ObserveBulk(int, int)              {}
func (noopRecorder) ObserveEvaluacion(string)          {}
