package repository

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// SectorFilter filtros del listado de sectores.
type SectorFilter struct {
	Activo *bool
	Q      string
}

// SectorRepository define el puerto de persistencia para SectorEconomico.
type SectorRepository interface {
	Create(ctx context.Context, sector *entity.SectorEconomico) error
	GetByID(ctx context.Context, id string) (*entity.SectorEconomico, error)
	// GetTodosLosSectores devuelve el sector centinela o (nil, nil) si no existe.
	GetTodosLosSectores(ctx context.Context) (*entity.SectorEconomico, error)
	Update(ctx context.Context, sector *entity.SectorEconomico) error
	List(ctx context.Context, filter SectorFilter) ([]*entity.SectorEconomico, error)
}
