package entity

import "time"

// Estados de una importación de catálogo.
const (
	ImportacionCompletada = "completada"
	ImportacionParcial    = "parcial"
	ImportacionFallida    = "fallida"
)

// Importacion bitácora de un commit de archivo de normas.
type Importacion struct {
	ID                 string
	NombreArchivo      string
	FechaImportacion   time.Time
	Estado             string
	TotalFilas         int
	NormasNuevas       int
	NormasActualizadas int
	NormasSinCambios   int
	Errores            int
	LogErrores         *string
	CreadoPor          *string
}
