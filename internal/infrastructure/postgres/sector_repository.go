package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo sectores económicos. El índice único parcial ux_sectores_todos impide un segundo centinela.
type SectorRepo struct {
	db Querier
}

// NewSectorRepository construye el adaptador de persistencia para sectores.
func NewSectorRepository(db Querier) *SectorRepo {
	return &SectorRepo{db: db}
}

const sectorColumns = `id, codigo, nombre, descripcion, es_todos_los_sectores, activo, created_at, updated_at`

func (r *SectorRepo) Create(ctx context.Context, s *entity.SectorEconomico) error {
	_, err := r.db.Exec(ctx, `INSERT INTO sectores_economicos (`+sectorColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Codigo, s.Nombre, s.Descripcion, s.EsTodosLosSectores, s.Activo, s.CreatedAt, s.UpdatedAt,
	)
	return writeErr("insert sector", err)
}

func (r *SectorRepo) GetByID(ctx context.Context, id string) (*entity.SectorEconomico, error) {
	return r.getOne(ctx, `SELECT `+sectorColumns+` FROM sectores_economicos WHERE id = $1`, id)
}

func (r *SectorRepo) GetTodosLosSectores(ctx context.Context) (*entity.SectorEconomico, error) {
	return r.getOne(ctx, `SELECT `+sectorColumns+` FROM sectores_economicos WHERE es_todos_los_sectores LIMIT 1`)
}

func (r *SectorRepo) getOne(ctx context.Context, query string, args ...any) (*entity.SectorEconomico, error) {
	s, err := scanSector(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageError("get sector", err)
	}
	return s, nil
}

func (r *SectorRepo) Update(ctx context.Context, s *entity.SectorEconomico) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE sectores_economicos SET codigo = $2, nombre = $3, descripcion = $4, es_todos_los_sectores = $5,
			activo = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Codigo, s.Nombre, s.Descripcion, s.EsTodosLosSectores, s.Activo, s.UpdatedAt,
	)
	if err != nil {
		return writeErr("update sector", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("sector %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SectorRepo) List(ctx context.Context, f repository.SectorFilter) ([]*entity.SectorEconomico, error) {
	var w filtro
	if f.Activo != nil {
		w.add("activo = ?", *f.Activo)
	}
	if f.Q != "" {
		w.add("(lower(nombre) LIKE lower(?) OR lower(coalesce(codigo, '')) LIKE lower(?))", likePattern(f.Q))
	}
	rows, err := r.db.Query(ctx, `SELECT `+sectorColumns+` FROM sectores_economicos`+w.where()+` ORDER BY nombre, id`, w.args...)
	if err != nil {
		return nil, domain.StorageError("list sectores", err)
	}
	defer rows.Close()

	list := []*entity.SectorEconomico{}
	for rows.Next() {
		s, err := scanSector(rows)
		if err != nil {
			return nil, domain.StorageError("scan sector", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSector(row pgx.Row) (*entity.SectorEconomico, error) {
	var s entity.SectorEconomico
	if err := row.Scan(&s.ID, &s.Codigo, &s.Nombre, &s.Descripcion, &s.EsTodosLosSectores, &s.Activo, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
