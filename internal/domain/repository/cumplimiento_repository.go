package repository

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// CumplimientoRepository define el puerto de persistencia para los registros de cumplimiento.
// Create devuelve domain.ErrConflict si ya existe un registro para (empresa, norma).
// No hay Delete: los registros no se eliminan mientras la empresa esté activa.
type CumplimientoRepository interface {
	Create(ctx context.Context, c *entity.Cumplimiento) error
	Update(ctx context.Context, c *entity.Cumplimiento) error
	GetByID(ctx context.Context, id string) (*entity.Cumplimiento, error)
	GetByEmpresaNorma(ctx context.Context, empresaID, normaID string) (*entity.Cumplimiento, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Cumplimiento, error)
	AddHistorial(ctx context.Context, h *entity.CumplimientoHistorial) error
	ListHistorial(ctx context.Context, cumplimientoID string) ([]*entity.CumplimientoHistorial, error)
}
