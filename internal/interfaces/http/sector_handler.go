package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/usecase"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// SectorHandler maneja las peticiones HTTP para sectores económicos.
type SectorHandler struct {
	uc *usecase.SectorUseCase
}

// NewSectorHandler construye el handler inyectando el caso de uso.
func NewSectorHandler(uc *usecase.SectorUseCase) *SectorHandler {
	return &SectorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sector económico
// @Tags         sectores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSectorRequest  true  "Datos del sector"
// @Success      201   {object}  dto.SectorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sectores-economicos [post]
func (h *SectorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sector por ID
// @Tags         sectores
// @Produce      json
// @Param        id   path  string  true  "ID del sector"
// @Success      200  {object}  dto.SectorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sectores-economicos/{id} [get]
func (h *SectorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sector
// @Tags         sectores
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del sector"
// @Param        body  body  dto.UpdateSectorRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SectorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sectores-economicos/{id} [put]
func (h *SectorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar sector
// @Description  Borrado lógico. El sector "todos los sectores" no se puede eliminar.
// @Tags         sectores
// @Param        id   path  string  true  "ID del sector"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sectores-economicos/{id} [delete]
func (h *SectorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar sectores
// @Tags         sectores
// @Produce      json
// @Param        activo  query  bool    false  "Filtrar por estado"
// @Param        q       query  string  false  "Búsqueda por nombre o código"
// @Success      200     {array}  dto.SectorResponse
// @Router       /api/sectores-economicos [get]
func (h *SectorHandler) List(c *fiber.Ctx) error {
	filter := repository.SectorFilter{Activo: queryBool(c, "activo"), Q: c.Query("q")}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activos godoc
// @Summary      Sectores activos (selectores)
// @Tags         sectores
// @Produce      json
// @Success      200  {array}  dto.SectorSimpleResponse
// @Router       /api/sectores-economicos/activos [get]
func (h *SectorHandler) Activos(c *fiber.Ctx) error {
	out, err := h.uc.Activos(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
