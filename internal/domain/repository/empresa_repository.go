package repository

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// EmpresaFilter filtros opcionales del listado de empresas.
type EmpresaFilter struct {
	Activo *bool
	Q      string // búsqueda por nombre o NIT
}

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
// La implementación vive en infrastructure. GetBy* devuelven (nil, nil) si no existe.
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByNIT(ctx context.Context, nit string) (*entity.Empresa, error)
	Update(ctx context.Context, empresa *entity.Empresa) error
	List(ctx context.Context, filter EmpresaFilter) ([]*entity.Empresa, error)
}
