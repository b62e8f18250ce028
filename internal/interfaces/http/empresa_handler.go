package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/usecase"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

// EmpresaHandler maneja las peticiones HTTP para empresas y su sincronización de normas.
type EmpresaHandler struct {
	uc     *usecase.EmpresaUseCase
	matriz *matriz.Service
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase, svc *matriz.Service) *EmpresaHandler {
	return &EmpresaHandler{uc: uc, matriz: svc}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmpresaRequest  true  "Datos y perfil de la empresa"
// @Success      201   {object}  dto.EmpresaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empresas [post]
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
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
// @Summary      Obtener empresa por ID
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [get]
func (h *EmpresaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Description  Si cambia el perfil de características se sincronizan las normas (SYNC_ON_PROFILE_CHANGE).
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.UpdateEmpresaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmpresaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [put]
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmpresaRequest
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
// @Summary      Desactivar empresa
// @Description  Los registros de cumplimiento se conservan.
// @Tags         empresas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [delete]
func (h *EmpresaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar empresas con su avance de cumplimiento
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        activo  query  bool    false  "Filtrar por estado"
// @Param        q       query  string  false  "Búsqueda por nombre o NIT"
// @Success      200     {array}  dto.EmpresaResumen
// @Router       /api/empresas [get]
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	filter := repository.EmpresaFilter{Activo: queryBool(c, "activo"), Q: c.Query("q")}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activas godoc
// @Summary      Empresas activas (selectores)
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmpresaActiva
// @Router       /api/empresas/activas [get]
func (h *EmpresaHandler) Activas(c *fiber.Ctx) error {
	out, err := h.uc.Activas(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Caracteristicas godoc
// @Summary      Características activas del perfil
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/caracteristicas [get]
func (h *EmpresaHandler) Caracteristicas(c *fiber.Ctx) error {
	out, err := h.uc.Caracteristicas(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sincronizar godoc
// @Summary      Sincronizar normas aplicables de la empresa
// @Description  Crea registros pendientes para las normas que ahora aplican. No borra ni modifica evaluaciones.
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.SyncResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/sincronizar-normas [post]
func (h *EmpresaHandler) Sincronizar(c *fiber.Ctx) error {
	out, err := h.matriz.Sync(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
