package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

const (
	normasPageSize    = 50
	normasMaxPageSize = 500
)

// NormaUseCase consulta y edición manual del catálogo de normas.
type NormaUseCase struct {
	repo repository.NormaRepository
	log  zerolog.Logger
}

// NewNormaUseCase construye el caso de uso con el puerto de persistencia.
func NewNormaUseCase(repo repository.NormaRepository, log zerolog.Logger) *NormaUseCase {
	return &NormaUseCase{repo: repo, log: log.With().Str("component", "normas").Logger()}
}

// List página del catálogo con filtros.
func (uc *NormaUseCase) List(ctx context.Context, in dto.NormaFilterRequest) (*dto.PaginatedResponse[dto.NormaResponse], error) {
	in.DefaultPage(normasPageSize, normasMaxPageSize)
	if in.Estado != "" && !entity.EstadoNormaValido(in.Estado) {
		return nil, domain.NewValidationError("estado", "valor %q no reconocido", in.Estado)
	}
	filter := repository.NormaFilter{
		Q:                 strings.TrimSpace(in.Q),
		SectorEconomicoID: in.SectorEconomicoID,
		Clasificacion:     in.Clasificacion,
		TemaGeneral:       in.TemaGeneral,
		Anio:              in.Anio,
		Estado:            in.Estado,
		Activo:            in.Activo,
	}
	list, total, err := uc.repo.List(ctx, filter, in.Size, in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.NormaResponse, 0, len(list))
	for _, n := range list {
		items = append(items, matriz.NormaToResponse(n))
	}
	page := dto.NewPaginated(items, total, in.PageRequest)
	return &page, nil
}

// GetByID obtiene una norma. Devuelve domain.ErrNotFound si no existe.
func (uc *NormaUseCase) GetByID(ctx context.Context, id string) (*dto.NormaResponse, error) {
	n, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	out := matriz.NormaToResponse(n)
	return &out, nil
}

// Update aplica los campos presentes. La identidad legal no se modifica; si algo cambia la versión sube.
func (uc *NormaUseCase) Update(ctx context.Context, id string, in dto.UpdateNormaRequest) (*dto.NormaResponse, error) {
	n, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	editada := *n
	set := func(dst *string, v *string, campo string) error {
		if v == nil {
			return nil
		}
		if strings.TrimSpace(*v) == "" {
			return domain.NewValidationError(campo, "no puede quedar vacío")
		}
		*dst = strings.TrimSpace(*v)
		return nil
	}
	if err := set(&editada.ClasificacionNorma, in.ClasificacionNorma, "clasificacion_norma"); err != nil {
		return nil, err
	}
	if err := set(&editada.TemaGeneral, in.TemaGeneral, "tema_general"); err != nil {
		return nil, err
	}
	if err := set(&editada.DescripcionNorma, in.DescripcionNorma, "descripcion_norma"); err != nil {
		return nil, err
	}
	if in.Estado != nil {
		if !entity.EstadoNormaValido(*in.Estado) {
			return nil, domain.NewValidationError("estado", "valor %q no reconocido", *in.Estado)
		}
		editada.Estado = *in.Estado
	}
	if in.AmbitoAplicacion != nil {
		if !entity.AmbitoValido(*in.AmbitoAplicacion) {
			return nil, domain.NewValidationError("ambito_aplicacion", "valor %q no reconocido", *in.AmbitoAplicacion)
		}
		editada.AmbitoAplicacion = *in.AmbitoAplicacion
	}
	opcionales := []struct {
		dst **string
		v   *string
	}{
		{&editada.SubtemaRiesgoEspecifico, in.SubtemaRiesgoEspecifico},
		{&editada.DescripcionArticuloExigencias, in.DescripcionArticuloExigencias},
		{&editada.SectorEconomicoTexto, in.SectorEconomicoTexto},
		{&editada.ExpedidaPor, in.ExpedidaPor},
		{&editada.InfoAdicional, in.InfoAdicional},
	}
	for _, o := range opcionales {
		if o.v != nil {
			*o.dst = limpiar(o.v)
		}
	}
	if in.FechaExpedicion != nil {
		if strings.TrimSpace(*in.FechaExpedicion) == "" {
			editada.FechaExpedicion = nil
		} else {
			f, ok := importacion.ParseFecha(*in.FechaExpedicion)
			if !ok {
				return nil, domain.NewValidationError("fecha_expedicion", "fecha inválida %q", *in.FechaExpedicion)
			}
			editada.FechaExpedicion = &f
		}
	}
	if in.AplicabilidadNormaDTO != nil {
		editada.AplicaGeneral = in.AplicabilidadNormaDTO.AplicaGeneral
		editada.Aplica = in.AplicabilidadNormaDTO.Conjunto()
	}

	cambio := importacion.CopiarCampos(n, &editada)
	if in.SectorEconomicoID != nil {
		sector := limpiar(in.SectorEconomicoID)
		if (sector == nil) != (n.SectorEconomicoID == nil) || (sector != nil && *sector != *n.SectorEconomicoID) {
			n.SectorEconomicoID = sector
			cambio = true
		}
	}
	if in.Activo != nil && *in.Activo != n.Activo {
		n.Activo = *in.Activo
		cambio = true
	}
	if cambio {
		n.Version++
		n.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, n); err != nil {
			return nil, err
		}
		uc.log.Info().Str("norma_id", n.ID).Int("version", n.Version).Msg("norma actualizada")
	}
	out := matriz.NormaToResponse(n)
	return &out, nil
}

// Clasificaciones valores distintos de clasificacion_norma.
func (uc *NormaUseCase) Clasificaciones(ctx context.Context) ([]string, error) {
	return uc.repo.Clasificaciones(ctx)
}

// Temas valores distintos de tema_general, opcionalmente dentro de una clasificación.
func (uc *NormaUseCase) Temas(ctx context.Context, clasificacion string) ([]string, error) {
	return uc.repo.Temas(ctx, clasificacion)
}

// Anios años distintos del catálogo, del más reciente al más antiguo.
func (uc *NormaUseCase) Anios(ctx context.Context) ([]int, error) {
	return uc.repo.Anios(ctx)
}

// Calidad normas activas no derogadas sin ninguna bandera de aplicabilidad: nunca aplican a ninguna empresa.
func (uc *NormaUseCase) Calidad(ctx context.Context) ([]dto.NormaCalidadResponse, error) {
	activo := true
	list, err := uc.repo.ListAll(ctx, repository.NormaFilter{Activo: &activo})
	if err != nil {
		return nil, err
	}
	out := []dto.NormaCalidadResponse{}
	for _, n := range list {
		if n.Estado == entity.EstadoNormaDerogada || !n.SinPredicado() {
			continue
		}
		out = append(out, dto.NormaCalidadResponse{
			ID:                    n.ID,
			IdentificadorCompleto: n.Identificador(),
			ClasificacionNorma:    n.ClasificacionNorma,
			TemaGeneral:           n.TemaGeneral,
			Motivo:                "sin aplica_general ni ninguna característica marcada",
		})
	}
	return out, nil
}

func (uc *NormaUseCase) buscar(ctx context.Context, id string) (*entity.Norma, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("norma %s: %w", id, domain.ErrNotFound)
	}
	return n, nil
}
