package entity

import "time"

// Estados de cumplimiento de una norma para una empresa.
const (
	EstadoPendiente = "pendiente"
	EstadoCumple    = "cumple"
	EstadoNoCumple  = "no_cumple"
	EstadoEnProceso = "en_proceso"
	EstadoNoAplica  = "no_aplica"
)

// EstadosCumplimiento orden estable para reportes.
var EstadosCumplimiento = []string{EstadoCumple, EstadoNoCumple, EstadoPendiente, EstadoEnProceso, EstadoNoAplica}

// EstadoCumplimientoValido valida el estado.
func EstadoCumplimientoValido(s string) bool {
	switch s {
	case EstadoPendiente, EstadoCumple, EstadoNoCumple, EstadoEnProceso, EstadoNoAplica:
		return true
	}
	return false
}

// Cumplimiento registro reconciliado empresa × norma. Único por (EmpresaID, NormaID).
// AplicaEmpresa=false es un override humano y sobrevive a la sincronización.
type Cumplimiento struct {
	ID                    string
	EmpresaID             string
	NormaID               string
	Estado                string
	AplicaEmpresa         bool
	EvidenciaCumplimiento *string
	Observaciones         *string
	PlanAccion            *string
	Responsable           *string
	FechaCompromiso       *time.Time
	Seguimiento           *string
	JustificacionNoAplica *string
	FechaUltimaEvaluacion *time.Time
	FechaProximaRevision  *time.Time
	EvaluadoPor           *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Vencido informa si la fecha de compromiso pasó y el estado no está cerrado.
func (c *Cumplimiento) Vencido(now time.Time) bool {
	if c.FechaCompromiso == nil {
		return false
	}
	if c.Estado == EstadoCumple || c.Estado == EstadoNoAplica {
		return false
	}
	return c.FechaCompromiso.Before(now)
}

// TienePlanAccion informa si hay un plan de acción no vacío.
func (c *Cumplimiento) TienePlanAccion() bool {
	return c.PlanAccion != nil && *c.PlanAccion != ""
}

// CumplimientoHistorial cambio de estado de un registro de cumplimiento.
type CumplimientoHistorial struct {
	ID             string
	CumplimientoID string
	EstadoAnterior *string
	EstadoNuevo    string
	Observaciones  *string
	CreadoPor      *string
	CreatedAt      time.Time
}
