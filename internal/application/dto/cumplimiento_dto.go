package dto

import "time"

// UpdateCumplimientoRequest evaluación de una norma para una empresa. FechaCompromiso en formato YYYY-MM-DD.
type UpdateCumplimientoRequest struct {
	Estado                *string `json:"estado"`
	EvidenciaCumplimiento *string `json:"evidencia_cumplimiento"`
	Observaciones         *string `json:"observaciones"`
	PlanAccion            *string `json:"plan_accion"`
	Responsable           *string `json:"responsable"`
	FechaCompromiso       *string `json:"fecha_compromiso"`
	Seguimiento           *string `json:"seguimiento"`
	AplicaEmpresa         *bool   `json:"aplica_empresa"`
	JustificacionNoAplica *string `json:"justificacion_no_aplica"`
	FechaProximaRevision  *string `json:"fecha_proxima_revision"`
}

// CumplimientoResponse registro de cumplimiento.
type CumplimientoResponse struct {
	ID                    string     `json:"id"`
	EmpresaID             string     `json:"empresa_id"`
	NormaID               string     `json:"norma_id"`
	Estado                string     `json:"estado"`
	EvidenciaCumplimiento *string    `json:"evidencia_cumplimiento"`
	Observaciones         *string    `json:"observaciones"`
	PlanAccion            *string    `json:"plan_accion"`
	Responsable           *string    `json:"responsable"`
	FechaCompromiso       *string    `json:"fecha_compromiso"`
	Seguimiento           *string    `json:"seguimiento"`
	AplicaEmpresa         bool       `json:"aplica_empresa"`
	JustificacionNoAplica *string    `json:"justificacion_no_aplica"`
	FechaUltimaEvaluacion *time.Time `json:"fecha_ultima_evaluacion"`
	FechaProximaRevision  *string    `json:"fecha_proxima_revision"`
	EvaluadoPor           *string    `json:"evaluado_por"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// BulkCumplimientoRequest cambio de estado masivo.
type BulkCumplimientoRequest struct {
	CumplimientoIDs []string `json:"cumplimiento_ids"`
	Estado          string   `json:"estado"`
}

// BulkFailure registro que no se pudo actualizar.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkCumplimientoResponse resultado parcial: cuántos se actualizaron y cuáles fallaron.
type BulkCumplimientoResponse struct {
	UpdatedCount int           `json:"updated_count"`
	Failures     []BulkFailure `json:"failures"`
	Message      string        `json:"message"`
}

// HistorialResponse cambio de estado de un cumplimiento.
type HistorialResponse struct {
	ID             string    `json:"id"`
	CumplimientoID string    `json:"cumplimiento_id"`
	EstadoAnterior *string   `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	Observaciones  *string   `json:"observaciones"`
	CreatedAt      time.Time `json:"created_at"`
	CreadoPor      *string   `json:"creado_por"`
}

// SyncResponse resultado de la sincronización de normas de una empresa.
type SyncResponse struct {
	EmpresaID          string   `json:"empresa_id"`
	Created            int      `json:"created"`
	NowInapplicable    int      `json:"now_inapplicable"`
	Unchanged          int      `json:"unchanged"`
	CreatedNormaIDs    []string `json:"created_norma_ids"`
	InapplicableIDs    []string `json:"now_inapplicable_norma_ids"`
	NormasSinPredicado int      `json:"normas_sin_predicado"`
	Message            string   `json:"message"`
}

// SyncAllItem resultado por empresa de la sincronización masiva.
type SyncAllItem struct {
	EmpresaID string        `json:"empresa_id"`
	Nombre    string        `json:"nombre"`
	Result    *SyncResponse `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// SyncAllResponse resultado de sincronizar todas las empresas activas.
type SyncAllResponse struct {
	Empresas     int           `json:"empresas"`
	Exitosas     int           `json:"exitosas"`
	Fallidas     int           `json:"fallidas"`
	TotalCreated int           `json:"total_created"`
	Items        []SyncAllItem `json:"items"`
}

// EstadisticasPorEstado conteos por estado de cumplimiento.
type EstadisticasPorEstado struct {
	Cumple    int `json:"cumple"`
	NoCumple  int `json:"no_cumple"`
	Pendiente int `json:"pendiente"`
	EnProceso int `json:"en_proceso"`
	NoAplica  int `json:"no_aplica"`
}

// EstadisticasResponse métricas de cumplimiento recalculadas en cada lectura.
type EstadisticasResponse struct {
	EmpresaID                   string                `json:"empresa_id"`
	EmpresaNombre               string                `json:"empresa_nombre"`
	TotalNormasAplicables       int                   `json:"total_normas_aplicables"`
	PorEstado                   EstadisticasPorEstado `json:"por_estado"`
	PorcentajeCumplimiento      float64               `json:"porcentaje_cumplimiento"`
	NormasConPlanAccion         int                   `json:"normas_con_plan_accion"`
	NormasVencidas              int                   `json:"normas_vencidas"`
	NormasNoAplicablesPorPerfil int                   `json:"normas_no_aplicables_por_perfil"`
}

// UltimaEvaluacion evaluación reciente para el dashboard.
type UltimaEvaluacion struct {
	ID      string    `json:"id"`
	NormaID string    `json:"norma_id"`
	Estado  string    `json:"estado"`
	Fecha   time.Time `json:"fecha"`
}

// DashboardResponse resumen de la matriz legal de una empresa.
type DashboardResponse struct {
	Estadisticas           EstadisticasResponse   `json:"estadisticas"`
	UltimasEvaluaciones    []UltimaEvaluacion     `json:"ultimas_evaluaciones"`
	NormasCriticas         []NormaConCumplimiento `json:"normas_criticas"`
	ProximasRevisiones     []CumplimientoResponse `json:"proximas_revisiones"`
	ImportacionesRecientes []ImportacionResponse  `json:"importaciones_recientes"`
}
