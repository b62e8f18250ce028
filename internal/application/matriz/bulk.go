package matriz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

var (
	errOtraEmpresa     = fmt.Errorf("el registro pertenece a otra empresa: %w", domain.ErrInvalidState)
	errMarcadaNoAplica = fmt.Errorf("la norma está marcada como no aplicable: %w", domain.ErrInvalidState)
)

// BulkUpdate aplica el mismo estado a varios registros de la empresa. Cada registro se actualiza en su
// propia transacción: un fallo (no existe, pertenece a otra empresa, error de escritura) no bloquea al resto.
// Nunca crea ni elimina registros.
func (s *Service) BulkUpdate(ctx context.Context, empresaID string, in dto.BulkCumplimientoRequest, usuario string) (*dto.BulkCumplimientoResponse, error) {
	if !entity.EstadoCumplimientoValido(in.Estado) {
		return nil, domain.NewValidationError("estado", "valor inválido %q (use %s)", in.Estado, strings.Join(entity.EstadosCumplimiento, ", "))
	}
	if len(in.CumplimientoIDs) == 0 {
		return nil, domain.NewValidationError("cumplimiento_ids", "debe incluir al menos un registro")
	}
	if _, err := s.empresa(ctx, empresaID); err != nil {
		return nil, err
	}

	out := &dto.BulkCumplimientoResponse{Failures: []dto.BulkFailure{}}
	for _, id := range in.CumplimientoIDs {
		if err := s.actualizarEstado(ctx, empresaID, id, in.Estado, usuario); err != nil {
			out.Failures = append(out.Failures, dto.BulkFailure{ID: id, Reason: razonFallo(err)})
			continue
		}
		out.UpdatedCount++
	}
	out.Message = fmt.Sprintf("%d registros actualizados, %d fallidos", out.UpdatedCount, len(out.Failures))
	s.metrics.ObserveBulk(out.UpdatedCount, len(out.Failures))
	s.log.Info().
		Str("empresa_id", empresaID).
		Str("estado", in.Estado).
		Int("updated", out.UpdatedCount).
		Int("failed", len(out.Failures)).
		Msg("actualización masiva de cumplimiento")
	return out, nil
}

func (s *Service) actualizarEstado(ctx context.Context, empresaID, id, estado, usuario string) error {
	return s.tx.RunCumplimiento(ctx, func(repo repository.CumplimientoRepository) error {
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("cumplimiento %s: %w", id, domain.ErrNotFound)
		}
		if c.EmpresaID != empresaID {
			return errOtraEmpresa
		}
		if !c.AplicaEmpresa && estado != entity.EstadoNoAplica {
			return errMarcadaNoAplica
		}
		if c.Estado == estado {
			return nil
		}
		anterior := c.Estado
		now := s.now()
		c.Estado = estado
		c.FechaUltimaEvaluacion = &now
		c.EvaluadoPor = strPtr(usuario)
		c.UpdatedAt = now
		if err := repo.Update(ctx, c); err != nil {
			return err
		}
		return repo.AddHistorial(ctx, &entity.CumplimientoHistorial{
			ID:             uuid.New().String(),
			CumplimientoID: c.ID,
			EstadoAnterior: &anterior,
			EstadoNuevo:    estado,
			CreadoPor:      strPtr(usuario),
			CreatedAt:      now,
		})
	})
}

func razonFallo(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "registro no encontrado"
	case errors.Is(err, errOtraEmpresa):
		return "el registro pertenece a otra empresa"
	case errors.Is(err, errMarcadaNoAplica):
		return "la norma está marcada como no aplicable, cambie aplica_empresa desde la evaluación individual"
	case errors.Is(err, domain.ErrStorage):
		return "fallo de persistencia, reintente"
	default:
		return err.Error()
	}
}
