package dto

import "time"

// CreateEmpresaRequest entrada para crear una empresa con su perfil de características.
type CreateEmpresaRequest struct {
	Nombre            string  `json:"nombre"`
	NIT               *string `json:"nit"`
	RazonSocial       *string `json:"razon_social"`
	Direccion         *string `json:"direccion"`
	Telefono          *string `json:"telefono"`
	Email             *string `json:"email"`
	SectorEconomicoID *string `json:"sector_economico_id"`
	CaracteristicasEmpresaDTO
}

// UpdateEmpresaRequest campos opcionales. Si llega cualquier tiene_*, el perfil completo se reemplaza.
type UpdateEmpresaRequest struct {
	Nombre            *string `json:"nombre"`
	NIT               *string `json:"nit"`
	RazonSocial       *string `json:"razon_social"`
	Direccion         *string `json:"direccion"`
	Telefono          *string `json:"telefono"`
	Email             *string `json:"email"`
	SectorEconomicoID *string `json:"sector_economico_id"`
	Activo            *bool   `json:"activo"`
	*CaracteristicasEmpresaDTO
}

// EmpresaResponse salida de una empresa.
type EmpresaResponse struct {
	ID                string                `json:"id"`
	Nombre            string                `json:"nombre"`
	NIT               *string               `json:"nit"`
	RazonSocial       *string               `json:"razon_social"`
	Direccion         *string               `json:"direccion"`
	Telefono          *string               `json:"telefono"`
	Email             *string               `json:"email"`
	SectorEconomicoID *string               `json:"sector_economico_id"`
	SectorEconomico   *SectorSimpleResponse `json:"sector_economico,omitempty"`
	CaracteristicasEmpresaDTO
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Sincronizacion resultado de la sincronización automática tras un cambio de perfil.
	Sincronizacion *SyncResponse `json:"sincronizacion,omitempty"`
}

// EmpresaResumen fila del listado de empresas con su avance de cumplimiento.
type EmpresaResumen struct {
	ID                     string  `json:"id"`
	Nombre                 string  `json:"nombre"`
	NIT                    *string `json:"nit"`
	SectorEconomicoNombre  *string `json:"sector_economico_nombre"`
	Activo                 bool    `json:"activo"`
	TotalNormasAplicables  int     `json:"total_normas_aplicables"`
	NormasCumple           int     `json:"normas_cumple"`
	NormasNoCumple         int     `json:"normas_no_cumple"`
	NormasPendientes       int     `json:"normas_pendientes"`
	PorcentajeCumplimiento float64 `json:"porcentaje_cumplimiento"`
}

// EmpresaActiva proyección mínima para selectores.
type EmpresaActiva struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	NIT    *string `json:"nit"`
}
