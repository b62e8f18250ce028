package entity

import "time"

// Empresa organización regulada cuyo cumplimiento se evalúa contra la matriz legal.
// Caracteristicas es el perfil de riesgo usado por el motor de aplicabilidad.
type Empresa struct {
	ID                string
	Nombre            string
	NIT               *string // NIT colombiano (con o sin dígito de verificación)
	RazonSocial       *string
	Direccion         *string
	Telefono          *string
	Email             *string
	SectorEconomicoID *string
	Caracteristicas   ConjuntoCaracteristicas
	Activo            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
