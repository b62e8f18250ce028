package entity

import "time"

// SectorEconomico sector de actividad. A lo sumo uno tiene EsTodosLosSectores=true: es el centinela
// "aplica a todos los sectores" y no se puede eliminar.
type SectorEconomico struct {
	ID                 string
	Codigo             *string
	Nombre             string
	Descripcion        *string
	EsTodosLosSectores bool
	Activo             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
