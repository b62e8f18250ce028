package repository

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// ImportacionRepository bitácora de importaciones del catálogo.
type ImportacionRepository interface {
	Create(ctx context.Context, imp *entity.Importacion) error
	List(ctx context.Context, limit, offset int) ([]*entity.Importacion, int, error)
}
