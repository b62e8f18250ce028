package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// Asegura que EmpresaRepo implementa repository.EmpresaRepository.
var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación del puerto EmpresaRepository sobre PostgreSQL.
// El perfil de características se persiste como TEXT[] de códigos.
type EmpresaRepo struct {
	db Querier
}

// NewEmpresaRepository construye el adaptador de persistencia para empresas.
func NewEmpresaRepository(db Querier) *EmpresaRepo {
	return &EmpresaRepo{db: db}
}

const empresaColumns = `id, nombre, nit, razon_social, direccion, telefono, email, sector_economico_id,
	caracteristicas, activo, created_at, updated_at`

// Create persiste una nueva empresa. NIT repetido → domain.ErrConflict.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (` + empresaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.Nombre, e.NIT, e.RazonSocial, e.Direccion, e.Telefono, e.Email, e.SectorEconomicoID,
		e.Caracteristicas.Codigos(), e.Activo, e.CreatedAt, e.UpdatedAt,
	)
	return writeErr("insert empresa", err)
}

// GetByID obtiene una empresa por ID.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	return r.getOne(ctx, `SELECT `+empresaColumns+` FROM empresas WHERE id = $1`, id)
}

// GetByNIT obtiene una empresa por NIT.
func (r *EmpresaRepo) GetByNIT(ctx context.Context, nit string) (*entity.Empresa, error) {
	return r.getOne(ctx, `SELECT `+empresaColumns+` FROM empresas WHERE nit = $1`, nit)
}

func (r *EmpresaRepo) getOne(ctx context.Context, query string, arg any) (*entity.Empresa, error) {
	e, err := scanEmpresa(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageError("get empresa", err)
	}
	return e, nil
}

// Update actualiza una empresa existente.
func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	query := `
		UPDATE empresas SET nombre = $2, nit = $3, razon_social = $4, direccion = $5, telefono = $6,
			email = $7, sector_economico_id = $8, caracteristicas = $9, activo = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		e.ID, e.Nombre, e.NIT, e.RazonSocial, e.Direccion, e.Telefono, e.Email, e.SectorEconomicoID,
		e.Caracteristicas.Codigos(), e.Activo, e.UpdatedAt,
	)
	if err != nil {
		return writeErr("update empresa", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("empresa %s: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

// List devuelve las empresas ordenadas por nombre.
func (r *EmpresaRepo) List(ctx context.Context, f repository.EmpresaFilter) ([]*entity.Empresa, error) {
	var w filtro
	if f.Activo != nil {
		w.add("activo = ?", *f.Activo)
	}
	if f.Q != "" {
		w.add("(lower(nombre) LIKE lower(?) OR nit LIKE ?)", likePattern(f.Q))
	}
	rows, err := r.db.Query(ctx, `SELECT `+empresaColumns+` FROM empresas`+w.where()+` ORDER BY nombre, id`, w.args...)
	if err != nil {
		return nil, domain.StorageError("list empresas", err)
	}
	defer rows.Close()

	list := []*entity.Empresa{}
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, domain.StorageError("scan empresa", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEmpresa(row pgx.Row) (*entity.Empresa, error) {
	var e entity.Empresa
	var codigos []string
	if err := row.Scan(
		&e.ID, &e.Nombre, &e.NIT, &e.RazonSocial, &e.Direccion, &e.Telefono, &e.Email, &e.SectorEconomicoID,
		&codigos, &e.Activo, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Caracteristicas = entity.ConjuntoDesdeCodigos(codigos)
	return &e, nil
}
