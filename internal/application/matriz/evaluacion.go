package matriz

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

// ActualizarCumplimiento registra la evaluación de una norma para la empresa. Si aún no existe registro
// se crea (la norma debe existir y no estar derogada). aplica_empresa=false exige justificación y deja
// el estado en no_aplica. Todo o nada: un campo inválido rechaza la petición completa.
func (s *Service) ActualizarCumplimiento(ctx context.Context, empresaID, normaID string, in dto.UpdateCumplimientoRequest, usuario string) (*dto.CumplimientoResponse, error) {
	cambios, err := validarEvaluacion(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.empresa(ctx, empresaID); err != nil {
		return nil, err
	}
	norma, err := s.normas.GetByID(ctx, normaID)
	if err != nil {
		return nil, err
	}
	if norma == nil {
		return nil, fmt.Errorf("norma %s: %w", normaID, domain.ErrNotFound)
	}

	var out *entity.Cumplimiento
	err = s.tx.RunCumplimiento(ctx, func(repo repository.CumplimientoRepository) error {
		c, err := repo.GetByEmpresaNorma(ctx, empresaID, normaID)
		if err != nil {
			return err
		}
		now := s.now()
		nuevo := c == nil
		if nuevo {
			if norma.Estado == entity.EstadoNormaDerogada {
				return fmt.Errorf("norma %s derogada: %w", normaID, domain.ErrInvalidState)
			}
			c = &entity.Cumplimiento{
				ID:            uuid.New().String(),
				EmpresaID:     empresaID,
				NormaID:       normaID,
				Estado:        entity.EstadoPendiente,
				AplicaEmpresa: true,
				CreatedAt:     now,
			}
		}
		anterior := c.Estado
		if err := cambios.aplicar(c); err != nil {
			return err
		}
		c.FechaUltimaEvaluacion = &now
		c.EvaluadoPor = strPtr(usuario)
		c.UpdatedAt = now

		if nuevo {
			err = repo.Create(ctx, c)
		} else {
			err = repo.Update(ctx, c)
		}
		if err != nil {
			return err
		}
		if nuevo || anterior != c.Estado {
			h := &entity.CumplimientoHistorial{
				ID:             uuid.New().String(),
				CumplimientoID: c.ID,
				EstadoNuevo:    c.Estado,
				Observaciones:  c.Observaciones,
				CreadoPor:      strPtr(usuario),
				CreatedAt:      now,
			}
			if !nuevo {
				h.EstadoAnterior = &anterior
			}
			if err := repo.AddHistorial(ctx, h); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveEvaluacion(out.Estado)
	resp := CumplimientoToResponse(out)
	return &resp, nil
}

// evaluacion cambios ya validados y parseados de una UpdateCumplimientoRequest.
type evaluacion struct {
	in              dto.UpdateCumplimientoRequest
	fechaCompromiso *time.Time
	proximaRevision *time.Time
}

func validarEvaluacion(in dto.UpdateCumplimientoRequest) (*evaluacion, error) {
	ev := &evaluacion{in: in}
	if in.Estado != nil && !entity.EstadoCumplimientoValido(*in.Estado) {
		return nil, domain.NewValidationError("estado", "valor inválido %q (use %s)", *in.Estado, strings.Join(entity.EstadosCumplimiento, ", "))
	}
	var err error
	if ev.fechaCompromiso, err = parseFechaOpcional("fecha_compromiso", in.FechaCompromiso); err != nil {
		return nil, err
	}
	if ev.proximaRevision, err = parseFechaOpcional("fecha_proxima_revision", in.FechaProximaRevision); err != nil {
		return nil, err
	}
	if in.AplicaEmpresa != nil && !*in.AplicaEmpresa && in.Estado != nil && *in.Estado != entity.EstadoNoAplica {
		return nil, domain.NewValidationError("estado", "una norma marcada como no aplicable solo admite estado no_aplica")
	}
	return ev, nil
}

func parseFechaOpcional(campo string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(fechaLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, domain.NewValidationError(campo, "fecha inválida %q (formato YYYY-MM-DD)", *s)
	}
	return &t, nil
}

// aplicar escribe los cambios sobre el registro. Campos nil no se tocan.
func (ev *evaluacion) aplicar(c *entity.Cumplimiento) error {
	in := ev.in
	if in.EvidenciaCumplimiento != nil {
		c.EvidenciaCumplimiento = in.EvidenciaCumplimiento
	}
	if in.Observaciones != nil {
		c.Observaciones = in.Observaciones
	}
	if in.PlanAccion != nil {
		c.PlanAccion = in.PlanAccion
	}
	if in.Responsable != nil {
		c.Responsable = in.Responsable
	}
	if in.FechaCompromiso != nil {
		c.FechaCompromiso = ev.fechaCompromiso
	}
	if in.FechaProximaRevision != nil {
		c.FechaProximaRevision = ev.proximaRevision
	}
	if in.Seguimiento != nil {
		c.Seguimiento = in.Seguimiento
	}
	if in.JustificacionNoAplica != nil {
		c.JustificacionNoAplica = in.JustificacionNoAplica
	}
	if in.Estado != nil {
		c.Estado = *in.Estado
	}
	if in.AplicaEmpresa != nil {
		if !*in.AplicaEmpresa {
			if c.JustificacionNoAplica == nil || strings.TrimSpace(*c.JustificacionNoAplica) == "" {
				return domain.NewValidationError("justificacion_no_aplica", "requerida cuando aplica_empresa es false")
			}
			c.Estado = entity.EstadoNoAplica
		} else if !c.AplicaEmpresa && in.Estado == nil {
			c.Estado = entity.EstadoPendiente
		}
		c.AplicaEmpresa = *in.AplicaEmpresa
	}
	if !c.AplicaEmpresa && c.Estado != entity.EstadoNoAplica {
		return domain.NewValidationError("estado", "una norma marcada como no aplicable solo admite estado no_aplica")
	}
	return nil
}

// Historial devuelve los cambios de estado de un registro de la empresa, del más reciente al más antiguo.
func (s *Service) Historial(ctx context.Context, empresaID, cumplimientoID string) ([]dto.HistorialResponse, error) {
	c, err := s.cumplimientos.GetByID(ctx, cumplimientoID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.EmpresaID != empresaID {
		return nil, fmt.Errorf("cumplimiento %s: %w", cumplimientoID, domain.ErrNotFound)
	}
	hs, err := s.cumplimientos.ListHistorial(ctx, cumplimientoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, historialToResponse(h))
	}
	return out, nil
}
