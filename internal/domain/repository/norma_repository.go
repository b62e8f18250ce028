package repository

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// NormaFilter filtros del catálogo. Campos vacíos/nil no filtran.
type NormaFilter struct {
	Q                 string // texto libre sobre tipo, número, descripción y tema
	SectorEconomicoID string
	Clasificacion     string
	TemaGeneral       string
	Anio              *int
	Estado            string
	Activo            *bool
}

// NormaRepository define el puerto de persistencia del catálogo de normas.
// Create devuelve domain.ErrConflict si la clave natural ya existe.
type NormaRepository interface {
	Create(ctx context.Context, norma *entity.Norma) error
	Update(ctx context.Context, norma *entity.Norma) error
	GetByID(ctx context.Context, id string) (*entity.Norma, error)
	GetByClave(ctx context.Context, clave entity.ClaveNatural) (*entity.Norma, error)
	// Claves devuelve clave natural serializada → ID para todo el catálogo.
	Claves(ctx context.Context) (map[string]string, error)
	List(ctx context.Context, filter NormaFilter, limit, offset int) ([]*entity.Norma, int, error)
	ListAll(ctx context.Context, filter NormaFilter) ([]*entity.Norma, error)
	Clasificaciones(ctx context.Context) ([]string, error)
	Temas(ctx context.Context, clasificacion string) ([]string, error)
	Anios(ctx context.Context) ([]int, error)
}
