package dto

import "time"

// CreateSectorRequest entrada para crear un sector económico.
type CreateSectorRequest struct {
	Codigo             *string `json:"codigo"`
	Nombre             string  `json:"nombre"`
	Descripcion        *string `json:"descripcion"`
	EsTodosLosSectores bool    `json:"es_todos_los_sectores"`
}

// UpdateSectorRequest campos opcionales.
type UpdateSectorRequest struct {
	Codigo             *string `json:"codigo"`
	Nombre             *string `json:"nombre"`
	Descripcion        *string `json:"descripcion"`
	EsTodosLosSectores *bool   `json:"es_todos_los_sectores"`
	Activo             *bool   `json:"activo"`
}

// SectorResponse salida de un sector.
type SectorResponse struct {
	ID                 string    `json:"id"`
	Codigo             *string   `json:"codigo"`
	Nombre             string    `json:"nombre"`
	Descripcion        *string   `json:"descripcion"`
	EsTodosLosSectores bool      `json:"es_todos_los_sectores"`
	Activo             bool      `json:"activo"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SectorSimpleResponse proyección para selectores y anidado en empresa.
type SectorSimpleResponse struct {
	ID                 string `json:"id"`
	Nombre             string `json:"nombre"`
	EsTodosLosSectores bool   `json:"es_todos_los_sectores"`
}
