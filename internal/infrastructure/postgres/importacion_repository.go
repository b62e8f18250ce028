package postgres

import (
	"context"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.ImportacionRepository = (*ImportacionRepo)(nil)

// ImportacionRepo bitácora de importaciones del catálogo.
type ImportacionRepo struct {
	db Querier
}

// NewImportacionRepository construye el adaptador de la bitácora.
func NewImportacionRepository(db Querier) *ImportacionRepo {
	return &ImportacionRepo{db: db}
}

func (r *ImportacionRepo) Create(ctx context.Context, i *entity.Importacion) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO importaciones (id, nombre_archivo, fecha_importacion, estado, total_filas, normas_nuevas,
			normas_actualizadas, normas_sin_cambios, errores, log_errores, creado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		i.ID, i.NombreArchivo, i.FechaImportacion, i.Estado, i.TotalFilas, i.NormasNuevas,
		i.NormasActualizadas, i.NormasSinCambios, i.Errores, i.LogErrores, i.CreadoPor,
	)
	return writeErr("insert importacion", err)
}

// List página de la bitácora, de la más reciente a la más antigua, y total de registros.
func (r *ImportacionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Importacion, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM importaciones`).Scan(&total); err != nil {
		return nil, 0, domain.StorageError("count importaciones", err)
	}
	if limit <= 0 {
		limit = total
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, nombre_archivo, fecha_importacion, estado, total_filas, normas_nuevas,
			normas_actualizadas, normas_sin_cambios, errores, log_errores, creado_por
		FROM importaciones ORDER BY fecha_importacion DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, domain.StorageError("list importaciones", err)
	}
	defer rows.Close()
	list := []*entity.Importacion{}
	for rows.Next() {
		var i entity.Importacion
		if err := rows.Scan(&i.ID, &i.NombreArchivo, &i.FechaImportacion, &i.Estado, &i.TotalFilas, &i.NormasNuevas,
			&i.NormasActualizadas, &i.NormasSinCambios, &i.Errores, &i.LogErrores, &i.CreadoPor); err != nil {
			return nil, 0, domain.StorageError("scan importacion", err)
		}
		list = append(list, &i)
	}
	return list, total, rows.Err()
}
