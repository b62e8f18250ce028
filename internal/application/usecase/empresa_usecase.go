package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// Sincronizador reconcilia los registros de cumplimiento de una empresa (implementado por matriz.Service).
type Sincronizador interface {
	Sync(ctx context.Context, empresaID string) (*dto.SyncResponse, error)
	Estadisticas(ctx context.Context, empresaID string) (*dto.EstadisticasResponse, error)
}

// EmpresaUseCase aplica reglas de negocio para empresas (casos de uso).
type EmpresaUseCase struct {
	repo         repository.EmpresaRepository
	sectores     repository.SectorRepository
	matriz       Sincronizador
	syncOnCambio bool
	log          zerolog.Logger
}

// NewEmpresaUseCase construye el caso de uso. Con syncOnCambio=true un cambio de perfil dispara Sync.
func NewEmpresaUseCase(repo repository.EmpresaRepository, sectores repository.SectorRepository, matriz Sincronizador, syncOnCambio bool, log zerolog.Logger) *EmpresaUseCase {
	return &EmpresaUseCase{
		repo:         repo,
		sectores:     sectores,
		matriz:       matriz,
		syncOnCambio: syncOnCambio,
		log:          log.With().Str("component", "empresas").Logger(),
	}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el NIT ya existe.
func (uc *EmpresaUseCase) Create(ctx context.Context, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.NewValidationError("nombre", "requerido")
	}
	nit := limpiar(in.NIT)
	if nit != nil {
		existing, err := uc.repo.GetByNIT(ctx, *nit)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("NIT %s: %w", *nit, domain.ErrDuplicate)
		}
	}
	sector, err := uc.sector(ctx, in.SectorEconomicoID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	empresa := &entity.Empresa{
		ID:                uuid.New().String(),
		Nombre:            nombre,
		NIT:               nit,
		RazonSocial:       limpiar(in.RazonSocial),
		Direccion:         limpiar(in.Direccion),
		Telefono:          limpiar(in.Telefono),
		Email:             limpiar(in.Email),
		SectorEconomicoID: limpiar(in.SectorEconomicoID),
		Caracteristicas:   in.CaracteristicasEmpresaDTO.Conjunto(),
		Activo:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, empresa); err != nil {
		return nil, err
	}
	uc.log.Info().Str("empresa_id", empresa.ID).Int("caracteristicas", empresa.Caracteristicas.Len()).Msg("empresa creada")
	return empresaToResponse(empresa, sector), nil
}

// GetByID obtiene una empresa por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *EmpresaUseCase) GetByID(ctx context.Context, id string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	sector, err := uc.sector(ctx, empresa.SectorEconomicoID)
	if err != nil {
		return nil, err
	}
	return empresaToResponse(empresa, sector), nil
}

// Update aplica los campos presentes. Si el perfil de características cambia y la sincronización
// automática está activa, reconcilia los registros de cumplimiento y adjunta el resultado.
func (uc *EmpresaUseCase) Update(ctx context.Context, id string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		nombre := strings.TrimSpace(*in.Nombre)
		if nombre == "" {
			return nil, domain.NewValidationError("nombre", "no puede quedar vacío")
		}
		empresa.Nombre = nombre
	}
	if in.NIT != nil {
		nit := limpiar(in.NIT)
		if nit != nil {
			otra, err := uc.repo.GetByNIT(ctx, *nit)
			if err != nil {
				return nil, err
			}
			if otra != nil && otra.ID != empresa.ID {
				return nil, fmt.Errorf("NIT %s: %w", *nit, domain.ErrDuplicate)
			}
		}
		empresa.NIT = nit
	}
	if in.RazonSocial != nil {
		empresa.RazonSocial = limpiar(in.RazonSocial)
	}
	if in.Direccion != nil {
		empresa.Direccion = limpiar(in.Direccion)
	}
	if in.Telefono != nil {
		empresa.Telefono = limpiar(in.Telefono)
	}
	if in.Email != nil {
		empresa.Email = limpiar(in.Email)
	}
	if in.SectorEconomicoID != nil {
		empresa.SectorEconomicoID = limpiar(in.SectorEconomicoID)
	}
	if in.Activo != nil {
		empresa.Activo = *in.Activo
	}
	perfilCambio := false
	if in.CaracteristicasEmpresaDTO != nil {
		nuevo := in.CaracteristicasEmpresaDTO.Conjunto()
		perfilCambio = nuevo != empresa.Caracteristicas
		empresa.Caracteristicas = nuevo
	}
	sector, err := uc.sector(ctx, empresa.SectorEconomicoID)
	if err != nil {
		return nil, err
	}
	empresa.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, empresa); err != nil {
		return nil, err
	}

	out := empresaToResponse(empresa, sector)
	if perfilCambio && uc.syncOnCambio && empresa.Activo && uc.matriz != nil {
		res, err := uc.matriz.Sync(ctx, empresa.ID)
		if err != nil {
			// El perfil ya quedó guardado; la sincronización se puede repetir a mano.
			uc.log.Warn().Err(err).Str("empresa_id", empresa.ID).Msg("sincronización tras cambio de perfil falló")
		} else {
			out.Sincronizacion = res
		}
	}
	return out, nil
}

// Delete desactiva la empresa. Sus registros de cumplimiento se conservan.
func (uc *EmpresaUseCase) Delete(ctx context.Context, id string) error {
	empresa, err := uc.buscar(ctx, id)
	if err != nil {
		return err
	}
	if !empresa.Activo {
		return nil
	}
	empresa.Activo = false
	empresa.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, empresa)
}

// List devuelve las empresas con su avance de cumplimiento. Las estadísticas se calculan en paralelo.
func (uc *EmpresaUseCase) List(ctx context.Context, filter repository.EmpresaFilter) ([]dto.EmpresaResumen, error) {
	empresas, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sectores, err := uc.nombresSector(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmpresaResumen, len(empresas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, e := range empresas {
		out[i] = dto.EmpresaResumen{ID: e.ID, Nombre: e.Nombre, NIT: e.NIT, Activo: e.Activo}
		if e.SectorEconomicoID != nil {
			if nombre, ok := sectores[*e.SectorEconomicoID]; ok {
				out[i].SectorEconomicoNombre = &nombre
			}
		}
		if uc.matriz == nil {
			continue
		}
		i, e := i, e
		g.Go(func() error {
			st, err := uc.matriz.Estadisticas(gctx, e.ID)
			if err != nil {
				return fmt.Errorf("estadísticas empresa %s: %w", e.ID, err)
			}
			out[i].TotalNormasAplicables = st.TotalNormasAplicables
			out[i].NormasCumple = st.PorEstado.Cumple
			out[i].NormasNoCumple = st.PorEstado.NoCumple
			out[i].NormasPendientes = st.PorEstado.Pendiente
			out[i].PorcentajeCumplimiento = st.PorcentajeCumplimiento
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Activas proyección mínima de las empresas activas.
func (uc *EmpresaUseCase) Activas(ctx context.Context) ([]dto.EmpresaActiva, error) {
	activo := true
	empresas, err := uc.repo.List(ctx, repository.EmpresaFilter{Activo: &activo})
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmpresaActiva, 0, len(empresas))
	for _, e := range empresas {
		out = append(out, dto.EmpresaActiva{ID: e.ID, Nombre: e.Nombre, NIT: e.NIT})
	}
	return out, nil
}

// Caracteristicas códigos de las características activas de la empresa.
func (uc *EmpresaUseCase) Caracteristicas(ctx context.Context, id string) ([]string, error) {
	empresa, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return empresa.Caracteristicas.Codigos(), nil
}

func (uc *EmpresaUseCase) buscar(ctx context.Context, id string) (*entity.Empresa, error) {
	empresa, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	return empresa, nil
}

// sector valida que el sector exista. nil o vacío no es error.
func (uc *EmpresaUseCase) sector(ctx context.Context, id *string) (*entity.SectorEconomico, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	s, err := uc.sectores.GetByID(ctx, strings.TrimSpace(*id))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewValidationError("sector_economico_id", "sector %s no existe", *id)
	}
	return s, nil
}

func (uc *EmpresaUseCase) nombresSector(ctx context.Context) (map[string]string, error) {
	sectores, err := uc.sectores.List(ctx, repository.SectorFilter{})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(sectores))
	for _, s := range sectores {
		out[s.ID] = s.Nombre
	}
	return out, nil
}

func empresaToResponse(e *entity.Empresa, sector *entity.SectorEconomico) *dto.EmpresaResponse {
	out := &dto.EmpresaResponse{
		ID:                        e.ID,
		Nombre:                    e.Nombre,
		NIT:                       e.NIT,
		RazonSocial:               e.RazonSocial,
		Direccion:                 e.Direccion,
		Telefono:                  e.Telefono,
		Email:                     e.Email,
		SectorEconomicoID:         e.SectorEconomicoID,
		CaracteristicasEmpresaDTO: dto.CaracteristicasEmpresaDesde(e.Caracteristicas),
		Activo:                    e.Activo,
		CreatedAt:                 e.CreatedAt,
		UpdatedAt:                 e.UpdatedAt,
	}
	if sector != nil {
		out.SectorEconomico = &dto.SectorSimpleResponse{ID: sector.ID, Nombre: sector.Nombre, EsTodosLosSectores: sector.EsTodosLosSectores}
	}
	return out
}

// limpiar recorta espacios; cadena vacía → nil.
func limpiar(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
