package matriz

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// Deps dependencias del servicio de matriz legal.
type Deps struct {
	Empresas      repository.EmpresaRepository
	Normas        repository.NormaRepository
	Cumplimientos repository.CumplimientoRepository
	Importaciones repository.ImportacionRepository
	Tx            TxRunner
	Locker        Locker
	Metrics       Recorder
	Hojas         HojaWriter
	Reportes      ReporteRenderer
	Logger        zerolog.Logger
	Now           func() time.Time
}

// Service casos de uso del cumplimiento: sincronización, estadísticas, evaluación y actualización masiva.
type Service struct {
	empresas      repository.EmpresaRepository
	normas        repository.NormaRepository
	cumplimientos repository.CumplimientoRepository
	importaciones repository.ImportacionRepository
	tx            TxRunner
	locker        Locker
	metrics       Recorder
	hojas         HojaWriter
	reportes      ReporteRenderer
	log           zerolog.Logger
	now           func() time.Time
}

// NewService construye el servicio. Metrics y Now son opcionales.
func NewService(d Deps) *Service {
	s := &Service{
		empresas:      d.Empresas,
		normas:        d.Normas,
		cumplimientos: d.Cumplimientos,
		importaciones: d.Importaciones,
		tx:            d.Tx,
		locker:        d.Locker,
		metrics:       d.Metrics,
		hojas:         d.Hojas,
		reportes:      d.Reportes,
		log:           d.Logger.With().Str("component", "matriz").Logger(),
		now:           d.Now,
	}
	if s.metrics == nil {
		s.metrics = noopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Service) empresa(ctx context.Context, id string) (*entity.Empresa, error) {
	if id == "" {
		return nil, domain.NewValidationError("empresa_id", "requerido")
	}
	e, err := s.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// catalogo carga el catálogo (por defecto solo activas) y un índice por ID.
func (s *Service) catalogo(ctx context.Context, filter repository.NormaFilter) ([]*entity.Norma, map[string]*entity.Norma, error) {
	activo := true
	if filter.Activo == nil {
		filter.Activo = &activo
	}
	normas, err := s.normas.ListAll(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar catálogo: %w", err)
	}
	porID := make(map[string]*entity.Norma, len(normas))
	for _, n := range normas {
		porID[n.ID] = n
	}
	return normas, porID, nil
}

func (s *Service) registrosPorNorma(ctx context.Context, empresaID string) ([]*entity.Cumplimiento, map[string]*entity.Cumplimiento, error) {
	registros, err := s.cumplimientos.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar cumplimientos: %w", err)
	}
	porNorma := make(map[string]*entity.Cumplimiento, len(registros))
	for _, c := range registros {
		porNorma[c.NormaID] = c
	}
	return registros, porNorma, nil
}
