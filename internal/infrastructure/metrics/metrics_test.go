package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
)

func TestMetrics_Sync(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSync(time.Now(), 3, nil)
	m.ObserveSync(time.Now(), 5, fmt.Errorf("candado: %w", domain.ErrConflict))
	m.ObserveSync(time.Now(), 0, errors.New("db caída"))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SyncCreated))
	assert.Equal(t, 3, testutil.CollectAndCount(m.SyncDuration))
}

func TestMetrics_BulkEvaluacionImport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveBulk(4, 1)
	m.ObserveEvaluacion("cumple")
	m.ObserveEvaluacion("cumple")
	m.ObserveImport(time.Now(), "parcial", 10, 2, 3)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.BulkUpdated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BulkFailed))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Evaluaciones.WithLabelValues("cumple")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.ImportFilas.WithLabelValues("nueva")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ImportFilas.WithLabelValues("error")))
}

func TestMetrics_NilNoPanica(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSync(time.Now(), 1, nil)
		m.ObserveBulk(1, 1)
		m.ObserveEvaluacion("cumple")
		m.ObserveImport(time.Now(), "completada", 1, 0, 0)
		m.ObserveHTTP("GET", "/health", 200, time.Millisecond)
	})
}
