package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var _ repository.CumplimientoRepository = (*CumplimientoRepo)(nil)

// CumplimientoRepo registros empresa × norma y su historial. UNIQUE (empresa_id, norma_id)
// garantiza un solo registro por par aunque dos sincronizaciones compitan.
type CumplimientoRepo struct {
	db Querier
}

// NewCumplimientoRepository construye el adaptador; db puede ser el pool o una transacción.
func NewCumplimientoRepository(db Querier) *CumplimientoRepo {
	return &CumplimientoRepo{db: db}
}

const cumplimientoColumns = `id, empresa_id, norma_id, estado, aplica_empresa, evidencia_cumplimiento, observaciones,
	plan_accion, responsable, fecha_compromiso, seguimiento, justificacion_no_aplica, fecha_ultima_evaluacion,
	fecha_proxima_revision, evaluado_por, created_at, updated_at`

func (r *CumplimientoRepo) Create(ctx context.Context, c *entity.Cumplimiento) error {
	query := `
		INSERT INTO cumplimientos (` + cumplimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.EmpresaID, c.NormaID, c.Estado, c.AplicaEmpresa, c.EvidenciaCumplimiento, c.Observaciones,
		c.PlanAccion, c.Responsable, c.FechaCompromiso, c.Seguimiento, c.JustificacionNoAplica, c.FechaUltimaEvaluacion,
		c.FechaProximaRevision, c.EvaluadoPor, c.CreatedAt, c.UpdatedAt,
	)
	return writeErr("insert cumplimiento", err)
}

// Update reescribe la evaluación. empresa_id, norma_id y created_at no cambian.
func (r *CumplimientoRepo) Update(ctx context.Context, c *entity.Cumplimiento) error {
	query := `
		UPDATE cumplimientos SET estado = $2, aplica_empresa = $3, evidencia_cumplimiento = $4, observaciones = $5,
			plan_accion = $6, responsable = $7, fecha_compromiso = $8, seguimiento = $9, justificacion_no_aplica = $10,
			fecha_ultima_evaluacion = $11, fecha_proxima_revision = $12, evaluado_por = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		c.ID, c.Estado, c.AplicaEmpresa, c.EvidenciaCumplimiento, c.Observaciones,
		c.PlanAccion, c.Responsable, c.FechaCompromiso, c.Seguimiento, c.JustificacionNoAplica,
		c.FechaUltimaEvaluacion, c.FechaProximaRevision, c.EvaluadoPor, c.UpdatedAt,
	)
	if err != nil {
		return writeErr("update cumplimiento", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("cumplimiento %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *CumplimientoRepo) GetByID(ctx context.Context, id string) (*entity.Cumplimiento, error) {
	return r.getOne(ctx, `SELECT `+cumplimientoColumns+` FROM cumplimientos WHERE id = $1`, id)
}

func (r *CumplimientoRepo) GetByEmpresaNorma(ctx context.Context, empresaID, normaID string) (*entity.Cumplimiento, error) {
	return r.getOne(ctx, `SELECT `+cumplimientoColumns+` FROM cumplimientos WHERE empresa_id = $1 AND norma_id = $2`, empresaID, normaID)
}

func (r *CumplimientoRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Cumplimiento, error) {
	c, err := scanCumplimiento(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageError("get cumplimiento", err)
	}
	return c, nil
}

func (r *CumplimientoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Cumplimiento, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cumplimientoColumns+` FROM cumplimientos WHERE empresa_id = $1 ORDER BY created_at, id`, empresaID)
	if err != nil {
		return nil, domain.StorageError("list cumplimientos", err)
	}
	defer rows.Close()
	list := []*entity.Cumplimiento{}
	for rows.Next() {
		c, err := scanCumplimiento(rows)
		if err != nil {
			return nil, domain.StorageError("scan cumplimiento", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// AddHistorial agrega un cambio de estado. Registro inexistente → domain.ErrNotFound.
func (r *CumplimientoRepo) AddHistorial(ctx context.Context, h *entity.CumplimientoHistorial) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cumplimiento_historial (id, cumplimiento_id, estado_anterior, estado_nuevo, observaciones, creado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.CumplimientoID, h.EstadoAnterior, h.EstadoNuevo, h.Observaciones, h.CreadoPor, h.CreatedAt,
	)
	if err != nil && isForeignKeyViolation(err) {
		return fmt.Errorf("cumplimiento %s: %w", h.CumplimientoID, domain.ErrNotFound)
	}
	return writeErr("insert historial", err)
}

// ListHistorial cambios de estado del más reciente al más antiguo.
func (r *CumplimientoRepo) ListHistorial(ctx context.Context, cumplimientoID string) ([]*entity.CumplimientoHistorial, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, cumplimiento_id, estado_anterior, estado_nuevo, observaciones, creado_por, created_at
		FROM cumplimiento_historial WHERE cumplimiento_id = $1 ORDER BY created_at DESC, id DESC`, cumplimientoID)
	if err != nil {
		return nil, domain.StorageError("list historial", err)
	}
	defer rows.Close()
	list := []*entity.CumplimientoHistorial{}
	for rows.Next() {
		var h entity.CumplimientoHistorial
		if err := rows.Scan(&h.ID, &h.CumplimientoID, &h.EstadoAnterior, &h.EstadoNuevo, &h.Observaciones, &h.CreadoPor, &h.CreatedAt); err != nil {
			return nil, domain.StorageError("scan historial", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

func scanCumplimiento(row pgx.Row) (*entity.Cumplimiento, error) {
	var c entity.Cumplimiento
	if err := row.Scan(
		&c.ID, &c.EmpresaID, &c.NormaID, &c.Estado, &c.AplicaEmpresa, &c.EvidenciaCumplimiento, &c.Observaciones,
		&c.PlanAccion, &c.Responsable, &c.FechaCompromiso, &c.Seguimiento, &c.JustificacionNoAplica, &c.FechaUltimaEvaluacion,
		&c.FechaProximaRevision, &c.EvaluadoPor, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
