package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.NormaRepository = (*NormaRepo)(nil)

// NormaRepo catálogo de normas sobre PostgreSQL. La clave natural normalizada se guarda en
// clave_natural (UNIQUE) y el predicado de aplicabilidad en aplica (TEXT[] de códigos).
type NormaRepo struct {
	db Querier
}

// NewNormaRepository construye el adaptador de persistencia del catálogo.
func NewNormaRepository(db Querier) *NormaRepo {
	return &NormaRepo{db: db}
}

const normaColumns = `id, tipo_norma, numero_norma, anio, articulo, clasificacion_norma, tema_general,
	subtema_riesgo_especifico, descripcion_norma, descripcion_articulo_exigencias, ambito_aplicacion,
	sector_economico_id, sector_economico_texto, expedida_por, fecha_expedicion, estado, info_adicional,
	aplica_general, aplica, version, activo, created_at, updated_at`

const normaOrden = ` ORDER BY clasificacion_norma, tema_general, anio DESC, tipo_norma, numero_norma, coalesce(articulo, ''), id`

// Create persiste una norma. Clave natural repetida → domain.ErrConflict.
func (r *NormaRepo) Create(ctx context.Context, n *entity.Norma) error {
	query := `
		INSERT INTO normas (` + normaColumns + `, clave_natural, busqueda)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.TipoNorma, n.NumeroNorma, n.Anio, n.Articulo, n.ClasificacionNorma, n.TemaGeneral,
		n.SubtemaRiesgoEspecifico, n.DescripcionNorma, n.DescripcionArticuloExigencias, n.AmbitoAplicacion,
		n.SectorEconomicoID, n.SectorEconomicoTexto, n.ExpedidaPor, n.FechaExpedicion, n.Estado, n.InfoAdicional,
		n.AplicaGeneral, n.Aplica.Codigos(), n.Version, n.Activo, n.CreatedAt, n.UpdatedAt,
		n.Clave().String(), n.TextoBusqueda(),
	)
	return writeErr("insert norma", err)
}

// Update reescribe los campos editables. La identidad legal no cambia: si la clave no coincide con
// la guardada devuelve domain.ErrInvalidInput.
func (r *NormaRepo) Update(ctx context.Context, n *entity.Norma) error {
	query := `
		UPDATE normas SET clasificacion_norma = $3, tema_general = $4, subtema_riesgo_especifico = $5,
			descripcion_norma = $6, descripcion_articulo_exigencias = $7, ambito_aplicacion = $8,
			sector_economico_id = $9, sector_economico_texto = $10, expedida_por = $11, fecha_expedicion = $12,
			estado = $13, info_adicional = $14, aplica_general = $15, aplica = $16, version = $17, activo = $18,
			updated_at = $19, busqueda = $20
		WHERE id = $1 AND clave_natural = $2`
	cmd, err := r.db.Exec(ctx, query,
		n.ID, n.Clave().String(), n.ClasificacionNorma, n.TemaGeneral, n.SubtemaRiesgoEspecifico,
		n.DescripcionNorma, n.DescripcionArticuloExigencias, n.AmbitoAplicacion,
		n.SectorEconomicoID, n.SectorEconomicoTexto, n.ExpedidaPor, n.FechaExpedicion,
		n.Estado, n.InfoAdicional, n.AplicaGeneral, n.Aplica.Codigos(), n.Version, n.Activo,
		n.UpdatedAt, n.TextoBusqueda(),
	)
	if err != nil {
		return writeErr("update norma", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	actual, err := r.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	if actual == nil {
		return fmt.Errorf("norma %s: %w", n.ID, domain.ErrNotFound)
	}
	return domain.NewValidationError("clave_natural", "la identidad legal de la norma no se puede modificar")
}

func (r *NormaRepo) GetByID(ctx context.Context, id string) (*entity.Norma, error) {
	return r.getOne(ctx, `SELECT `+normaColumns+` FROM normas WHERE id = $1`, id)
}

func (r *NormaRepo) GetByClave(ctx context.Context, clave entity.ClaveNatural) (*entity.Norma, error) {
	return r.getOne(ctx, `SELECT `+normaColumns+` FROM normas WHERE clave_natural = $1`, clave.String())
}

func (r *NormaRepo) getOne(ctx context.Context, query string, arg any) (*entity.Norma, error) {
	n, err := scanNorma(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageError("get norma", err)
	}
	return n, nil
}

// Claves clave natural serializada → ID de todo el catálogo.
func (r *NormaRepo) Claves(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT clave_natural, id FROM normas`)
	if err != nil {
		return nil, domain.StorageError("list claves", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var clave, id string
		if err := rows.Scan(&clave, &id); err != nil {
			return nil, domain.StorageError("scan clave", err)
		}
		out[clave] = id
	}
	return out, rows.Err()
}

// List página del catálogo y total de coincidencias.
func (r *NormaRepo) List(ctx context.Context, f repository.NormaFilter, limit, offset int) ([]*entity.Norma, int, error) {
	w := normaFiltro(f)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM normas`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, domain.StorageError("count normas", err)
	}
	query := `SELECT ` + normaColumns + ` FROM normas` + w.where() + normaOrden
	if limit > 0 {
		query += ` LIMIT ` + w.placeholder(limit)
	}
	if offset > 0 {
		query += ` OFFSET ` + w.placeholder(offset)
	}
	list, err := r.query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todas las normas que coinciden con el filtro, sin paginar.
func (r *NormaRepo) ListAll(ctx context.Context, f repository.NormaFilter) ([]*entity.Norma, error) {
	w := normaFiltro(f)
	return r.query(ctx, `SELECT `+normaColumns+` FROM normas`+w.where()+normaOrden, w.args...)
}

func (r *NormaRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Norma, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageError("list normas", err)
	}
	defer rows.Close()
	list := []*entity.Norma{}
	for rows.Next() {
		n, err := scanNorma(rows)
		if err != nil {
			return nil, domain.StorageError("scan norma", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func normaFiltro(f repository.NormaFilter) *filtro {
	w := &filtro{}
	if f.Activo != nil {
		w.add("activo = ?", *f.Activo)
	}
	if f.Clasificacion != "" {
		w.add("clasificacion_norma = ?", f.Clasificacion)
	}
	if f.TemaGeneral != "" {
		w.add("tema_general = ?", f.TemaGeneral)
	}
	if f.Anio != nil {
		w.add("anio = ?", *f.Anio)
	}
	if f.Estado != "" {
		w.add("estado = ?", f.Estado)
	}
	if f.SectorEconomicoID != "" {
		w.add("sector_economico_id = ?", f.SectorEconomicoID)
	}
	if q := entity.NormalizarTexto(f.Q); q != "" {
		w.add("busqueda LIKE ?", likePattern(q))
	}
	return w
}

func (r *NormaRepo) Clasificaciones(ctx context.Context) ([]string, error) {
	return r.distintos(ctx, `
		SELECT DISTINCT clasificacion_norma FROM normas
		WHERE activo AND clasificacion_norma <> '' ORDER BY 1`)
}

func (r *NormaRepo) Temas(ctx context.Context, clasificacion string) ([]string, error) {
	return r.distintos(ctx, `
		SELECT DISTINCT tema_general FROM normas
		WHERE activo AND tema_general <> '' AND ($1 = '' OR clasificacion_norma = $1) ORDER BY 1`, clasificacion)
}

func (r *NormaRepo) Anios(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT anio FROM normas WHERE activo AND anio > 0 ORDER BY 1 DESC`)
	if err != nil {
		return nil, domain.StorageError("list anios", err)
	}
	anios, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, domain.StorageError("scan anios", err)
	}
	return anios, nil
}

func (r *NormaRepo) distintos(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageError("list catálogo", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, domain.StorageError("scan catálogo", err)
	}
	return out, nil
}

func scanNorma(row pgx.Row) (*entity.Norma, error) {
	var n entity.Norma
	var aplica []string
	if err := row.Scan(
		&n.ID, &n.TipoNorma, &n.NumeroNorma, &n.Anio, &n.Articulo, &n.ClasificacionNorma, &n.TemaGeneral,
		&n.SubtemaRiesgoEspecifico, &n.DescripcionNorma, &n.DescripcionArticuloExigencias, &n.AmbitoAplicacion,
		&n.SectorEconomicoID, &n.SectorEconomicoTexto, &n.ExpedidaPor, &n.FechaExpedicion, &n.Estado, &n.InfoAdicional,
		&n.AplicaGeneral, &aplica, &n.Version, &n.Activo, &n.CreatedAt, &n.UpdatedAt,
	); err != nil {
		return nil, err
	}
	n.Aplica = entity.ConjuntoDesdeCodigos(aplica)
	return &n, nil
}
