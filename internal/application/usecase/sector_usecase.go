package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// SectorUseCase CRUD de sectores económicos. A lo sumo un sector es el centinela "todos los sectores".
type SectorUseCase struct {
	repo repository.SectorRepository
}

// NewSectorUseCase construye el caso de uso con el puerto de persistencia.
func NewSectorUseCase(repo repository.SectorRepository) *SectorUseCase {
	return &SectorUseCase{repo: repo}
}

// Create crea un sector. Un segundo centinela devuelve domain.ErrConflict.
func (uc *SectorUseCase) Create(ctx context.Context, in dto.CreateSectorRequest) (*dto.SectorResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.NewValidationError("nombre", "requerido")
	}
	if in.EsTodosLosSectores {
		if err := uc.centinelaLibre(ctx, ""); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	s := &entity.SectorEconomico{
		ID:                 uuid.New().String(),
		Codigo:             limpiar(in.Codigo),
		Nombre:             nombre,
		Descripcion:        limpiar(in.Descripcion),
		EsTodosLosSectores: in.EsTodosLosSectores,
		Activo:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return sectorToResponse(s), nil
}

// GetByID obtiene un sector. Devuelve domain.ErrNotFound si no existe.
func (uc *SectorUseCase) GetByID(ctx context.Context, id string) (*dto.SectorResponse, error) {
	s, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return sectorToResponse(s), nil
}

// Update aplica los campos presentes.
func (uc *SectorUseCase) Update(ctx context.Context, id string, in dto.UpdateSectorRequest) (*dto.SectorResponse, error) {
	s, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		nombre := strings.TrimSpace(*in.Nombre)
		if nombre == "" {
			return nil, domain.NewValidationError("nombre", "no puede quedar vacío")
		}
		s.Nombre = nombre
	}
	if in.Codigo != nil {
		s.Codigo = limpiar(in.Codigo)
	}
	if in.Descripcion != nil {
		s.Descripcion = limpiar(in.Descripcion)
	}
	if in.EsTodosLosSectores != nil && *in.EsTodosLosSectores != s.EsTodosLosSectores {
		if *in.EsTodosLosSectores {
			if err := uc.centinelaLibre(ctx, s.ID); err != nil {
				return nil, err
			}
		}
		s.EsTodosLosSectores = *in.EsTodosLosSectores
	}
	if in.Activo != nil {
		if !*in.Activo && s.EsTodosLosSectores {
			return nil, fmt.Errorf("el sector \"todos los sectores\" no se puede desactivar: %w", domain.ErrConflict)
		}
		s.Activo = *in.Activo
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return sectorToResponse(s), nil
}

// Delete desactiva el sector. El centinela no se puede eliminar (domain.ErrConflict).
func (uc *SectorUseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.buscar(ctx, id)
	if err != nil {
		return err
	}
	if s.EsTodosLosSectores {
		return fmt.Errorf("el sector \"todos los sectores\" no se puede eliminar: %w", domain.ErrConflict)
	}
	s.Activo = false
	s.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, s)
}

// List lista sectores con filtros opcionales.
func (uc *SectorUseCase) List(ctx context.Context, filter repository.SectorFilter) ([]dto.SectorResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SectorResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *sectorToResponse(s))
	}
	return out, nil
}

// Activos sectores activos en forma simple.
func (uc *SectorUseCase) Activos(ctx context.Context) ([]dto.SectorSimpleResponse, error) {
	activo := true
	list, err := uc.repo.List(ctx, repository.SectorFilter{Activo: &activo})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SectorSimpleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SectorSimpleResponse{ID: s.ID, Nombre: s.Nombre, EsTodosLosSectores: s.EsTodosLosSectores})
	}
	return out, nil
}

func (uc *SectorUseCase) centinelaLibre(ctx context.Context, propio string) error {
	actual, err := uc.repo.GetTodosLosSectores(ctx)
	if err != nil {
		return err
	}
	if actual != nil && actual.ID != propio {
		return fmt.Errorf("ya existe el sector \"todos los sectores\" (%s): %w", actual.Nombre, domain.ErrConflict)
	}
	return nil
}

func (uc *SectorUseCase) buscar(ctx context.Context, id string) (*entity.SectorEconomico, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("sector %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

func sectorToResponse(s *entity.SectorEconomico) *dto.SectorResponse {
	return &dto.SectorResponse{
		ID:                 s.ID,
		Codigo:             s.Codigo,
		Nombre:             s.Nombre,
		Descripcion:        s.Descripcion,
		EsTodosLosSectores: s.EsTodosLosSectores,
		Activo:             s.Activo,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
