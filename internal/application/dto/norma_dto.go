package dto

import "time"

// NormaResponse entrada del catálogo.
type NormaResponse struct {
	ID                            string  `json:"id"`
	AmbitoAplicacion              string  `json:"ambito_aplicacion"`
	SectorEconomicoID             *string `json:"sector_economico_id"`
	SectorEconomicoTexto          *string `json:"sector_economico_texto"`
	ClasificacionNorma            string  `json:"clasificacion_norma"`
	TemaGeneral                   string  `json:"tema_general"`
	SubtemaRiesgoEspecifico       *string `json:"subtema_riesgo_especifico"`
	Anio                          int     `json:"anio"`
	TipoNorma                     string  `json:"tipo_norma"`
	NumeroNorma                   string  `json:"numero_norma"`
	FechaExpedicion               *string `json:"fecha_expedicion"`
	ExpedidaPor                   *string `json:"expedida_por"`
	DescripcionNorma              string  `json:"descripcion_norma"`
	Articulo                      *string `json:"articulo"`
	Estado                        string  `json:"estado"`
	InfoAdicional                 *string `json:"info_adicional"`
	DescripcionArticuloExigencias *string `json:"descripcion_articulo_exigencias"`
	AplicabilidadNormaDTO
	Version               int       `json:"version"`
	Activo                bool      `json:"activo"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	IdentificadorCompleto string    `json:"identificador_completo"`
}

// UpdateNormaRequest edición manual de una norma. La identidad legal (tipo, número, año, artículo) no se modifica.
type UpdateNormaRequest struct {
	AmbitoAplicacion              *string `json:"ambito_aplicacion"`
	SectorEconomicoID             *string `json:"sector_economico_id"`
	SectorEconomicoTexto          *string `json:"sector_economico_texto"`
	ClasificacionNorma            *string `json:"clasificacion_norma"`
	TemaGeneral                   *string `json:"tema_general"`
	SubtemaRiesgoEspecifico       *string `json:"subtema_riesgo_especifico"`
	FechaExpedicion               *string `json:"fecha_expedicion"`
	ExpedidaPor                   *string `json:"expedida_por"`
	DescripcionNorma              *string `json:"descripcion_norma"`
	Estado                        *string `json:"estado"`
	InfoAdicional                 *string `json:"info_adicional"`
	DescripcionArticuloExigencias *string `json:"descripcion_articulo_exigencias"`
	Activo                        *bool   `json:"activo"`
	*AplicabilidadNormaDTO
}

// NormaFilterRequest filtros del listado del catálogo.
type NormaFilterRequest struct {
	PageRequest
	Q                 string `query:"q"`
	SectorEconomicoID string `query:"sector_economico_id"`
	Clasificacion     string `query:"clasificacion"`
	TemaGeneral       string `query:"tema_general"`
	Anio              *int   `query:"anio"`
	Estado            string `query:"estado"`
	Activo            *bool  `query:"activo"`
}

// NormaConCumplimiento norma del catálogo fusionada con el registro de cumplimiento de la empresa
// (campos de cumplimiento en null si aún no existe registro).
type NormaConCumplimiento struct {
	NormaResponse
	CumplimientoID        *string    `json:"cumplimiento_id"`
	EstadoCumplimiento    *string    `json:"estado_cumplimiento"`
	AplicaEmpresa         bool       `json:"aplica_empresa"`
	EvidenciaCumplimiento *string    `json:"evidencia_cumplimiento"`
	Observaciones         *string    `json:"observaciones"`
	PlanAccion            *string    `json:"plan_accion"`
	Responsable           *string    `json:"responsable"`
	FechaCompromiso       *string    `json:"fecha_compromiso"`
	JustificacionNoAplica *string    `json:"justificacion_no_aplica"`
	FechaUltimaEvaluacion *time.Time `json:"fecha_ultima_evaluacion"`
	// AplicableSegunPerfil resultado actual del motor para el perfil de la empresa.
	AplicableSegunPerfil bool `json:"aplicable_segun_perfil"`
	// MotivosAplicacion características compartidas con la empresa; vacío para normas generales.
	MotivosAplicacion []string `json:"motivos_aplicacion"`
}

// NormasEmpresaFilterRequest filtros de GET /matriz-legal/empresas/:id/normas.
type NormasEmpresaFilterRequest struct {
	PageRequest
	SoloAplicables     bool   `query:"solo_aplicables"`
	EstadoCumplimiento string `query:"estado_cumplimiento"`
	Clasificacion      string `query:"clasificacion"`
	TemaGeneral        string `query:"tema_general"`
	Q                  string `query:"q"`
}

// NormaCalidadResponse norma sin ninguna bandera de aplicabilidad.
type NormaCalidadResponse struct {
	ID                    string `json:"id"`
	IdentificadorCompleto string `json:"identificador_completo"`
	ClasificacionNorma    string `json:"clasificacion_norma"`
	TemaGeneral           string `json:"tema_general"`
	Motivo                string `json:"motivo"`
}
