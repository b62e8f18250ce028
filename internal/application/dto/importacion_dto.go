package dto

import (
	"time"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
)

// FilaAdvertencia condición no fatal detectada en una fila (ej. norma sin banderas de aplicabilidad).
type FilaAdvertencia struct {
	Fila        int    `json:"fila"`
	Advertencia string `json:"advertencia"`
}

// ImportPreview análisis sin escritura de un archivo de normas.
type ImportPreview struct {
	TotalFilas              int                `json:"total_filas"`
	ColumnasDetectadas      []string           `json:"columnas_detectadas"`
	ColumnasMapeadas        map[string]*string `json:"columnas_mapeadas"`
	NormasNuevasPreview     int                `json:"normas_nuevas_preview"`
	NormasExistentesPreview int                `json:"normas_existentes_preview"`
	ErroresValidacion       []domain.FilaError `json:"errores_validacion"`
	Advertencias            []FilaAdvertencia  `json:"advertencias"`
	MuestraDatos            []map[string]any   `json:"muestra_datos"`
}

// ImportResult resultado de un commit (éxito parcial tolerado).
type ImportResult struct {
	ID                 string             `json:"id"`
	NombreArchivo      string             `json:"nombre_archivo"`
	FechaImportacion   time.Time          `json:"fecha_importacion"`
	Estado             string             `json:"estado"`
	TotalFilas         int                `json:"total_filas"`
	NormasNuevas       int                `json:"normas_nuevas"`
	NormasActualizadas int                `json:"normas_actualizadas"`
	NormasSinCambios   int                `json:"normas_sin_cambios"`
	NormasOmitidas     int                `json:"normas_omitidas"`
	Errores            int                `json:"errores"`
	ErroresDetalle     []domain.FilaError `json:"errores_detalle"`
	CreadoPor          *string            `json:"creado_por"`
}

// ImportacionResponse registro de la bitácora de importaciones.
type ImportacionResponse struct {
	ID                 string    `json:"id"`
	NombreArchivo      string    `json:"nombre_archivo"`
	FechaImportacion   time.Time `json:"fecha_importacion"`
	Estado             string    `json:"estado"`
	TotalFilas         int       `json:"total_filas"`
	NormasNuevas       int       `json:"normas_nuevas"`
	NormasActualizadas int       `json:"normas_actualizadas"`
	NormasSinCambios   int       `json:"normas_sin_cambios"`
	Errores            int       `json:"errores"`
	LogErrores         *string   `json:"log_errores"`
	CreadoPor          *string   `json:"creado_por"`
}
