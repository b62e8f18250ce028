// Package metrics expone métricas Prometheus de la matriz legal.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
)

// Metrics implementa matriz.Recorder e importacion.Recorder. Un *Metrics nil no registra nada.
type Metrics struct {
	SyncDuration   *prometheus.HistogramVec
	SyncCreated    prometheus.Counter
	BulkUpdated    prometheus.Counter
	BulkFailed     prometheus.Counter
	Evaluaciones   *prometheus.CounterVec
	ImportDuration *prometheus.HistogramVec
	ImportFilas    *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

// New registra todas las métricas en reg (prometheus.DefaultRegisterer si es nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		SyncDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matriz_sync_duration_seconds",
			Help:    "Duración de la sincronización de normas de una empresa por resultado",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"result"}), // result: "ok", "conflict", "error"

		SyncCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "matriz_sync_created_total",
			Help: "Registros de cumplimiento creados por sincronización",
		}),

		BulkUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "matriz_bulk_updated_total",
			Help: "Registros actualizados por cambio de estado masivo",
		}),

		BulkFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "matriz_bulk_failed_total",
			Help: "Registros rechazados en cambios de estado masivos",
		}),

		Evaluaciones: f.NewCounterVec(prometheus.CounterOpts{
			Name: "matriz_evaluaciones_total",
			Help: "Evaluaciones de cumplimiento guardadas por estado resultante",
		}, []string{"estado"}),

		ImportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matriz_import_duration_seconds",
			Help:    "Duración de la importación del catálogo por estado",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"estado"}),

		ImportFilas: f.NewCounterVec(prometheus.CounterOpts{
			Name: "matriz_import_filas_total",
			Help: "Filas procesadas en importaciones por resultado",
		}, []string{"resultado"}), // resultado: "nueva", "actualizada", "error"

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matriz_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP por ruta y código",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveSync registra una sincronización.
func (m *Metrics) ObserveSync(start time.Time, created int, err error) {
	if m == nil {
		return
	}
	m.SyncDuration.WithLabelValues(resultado(err)).Observe(time.Since(start).Seconds())
	if err == nil {
		m.SyncCreated.Add(float64(created))
	}
}

// ObserveBulk registra el resultado de un cambio masivo.
func (m *Metrics) ObserveBulk(updated, failed int) {
	if m == nil {
		return
	}
	m.BulkUpdated.Add(float64(updated))
	m.BulkFailed.Add(float64(failed))
}

// ObserveEvaluacion cuenta una evaluación guardada.
func (m *Metrics) ObserveEvaluacion(estado string) {
	if m == nil {
		return
	}
	m.Evaluaciones.WithLabelValues(estado).Inc()
}

// ObserveImport registra una importación confirmada.
func (m *Metrics) ObserveImport(start time.Time, estado string, nuevas, actualizadas, errores int) {
	if m == nil {
		return
	}
	m.ImportDuration.WithLabelValues(estado).Observe(time.Since(start).Seconds())
	m.ImportFilas.WithLabelValues("nueva").Add(float64(nuevas))
	m.ImportFilas.WithLabelValues("actualizada").Add(float64(actualizadas))
	m.ImportFilas.WithLabelValues("error").Add(float64(errores))
}

// ObserveHTTP registra la duración de una petición.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func resultado(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
