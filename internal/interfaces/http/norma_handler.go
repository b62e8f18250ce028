package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/usecase"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// NormaHandler catálogo de normas: listado, edición, catálogos de filtros y exportación.
type NormaHandler struct {
	uc          *usecase.NormaUseCase
	importacion *importacion.Service
}

// NewNormaHandler construye el handler.
func NewNormaHandler(uc *usecase.NormaUseCase, imp *importacion.Service) *NormaHandler {
	return &NormaHandler{uc: uc, importacion: imp}
}

// List godoc
// @Summary      Listar normas del catálogo
// @Tags         normas
// @Security     Bearer
// @Produce      json
// @Param        q                    query  string  false  "Texto libre"
// @Param        sector_economico_id  query  string  false  "Sector"
// @Param        clasificacion        query  string  false  "Clasificación"
// @Param        tema_general         query  string  false  "Tema general"
// @Param        anio                 query  int     false  "Año"
// @Param        estado               query  string  false  "vigente|derogada|modificada"
// @Param        page                 query  int     false  "Página"  default(1)
// @Param        size                 query  int     false  "Tamaño"  default(50)
// @Success      200  {object}  dto.PaginatedResponse[dto.NormaResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/normas [get]
func (h *NormaHandler) List(c *fiber.Ctx) error {
	var in dto.NormaFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener norma
// @Tags         normas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la norma"
// @Success      200  {object}  dto.NormaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/normas/{id} [get]
func (h *NormaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar norma
// @Description  La identidad legal (tipo, número, año, artículo) no se puede cambiar.
// @Tags         normas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la norma"
// @Param        body  body  dto.UpdateNormaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.NormaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/normas/{id} [put]
func (h *NormaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNormaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clasificaciones godoc
// @Summary      Clasificaciones distintas
// @Tags         normas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/matriz-legal/normas/catalogos/clasificaciones [get]
func (h *NormaHandler) Clasificaciones(c *fiber.Ctx) error {
	out, err := h.uc.Clasificaciones(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Temas godoc
// @Summary      Temas generales distintos
// @Tags         normas
// @Security     Bearer
// @Produce      json
// @Param        clasificacion  query  string  false  "Restringe a una clasificación"
// @Success      200  {array}  string
// @Router       /api/matriz-legal/normas/catalogos/temas [get]
func (h *NormaHandler) Temas(c *fiber.Ctx) error {
	out, err := h.uc.Temas(c.UserContext(), c.Query("clasificacion"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Anios godoc
// @Summary      Años distintos
// @Tags         normas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  int
// @Router       /api/matriz-legal/normas/catalogos/anios [get]
func (h *NormaHandler) Anios(c *fiber.Ctx) error {
	out, err := h.uc.Anios(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calidad godoc
// @Summary      Normas sin ninguna bandera de aplicabilidad
// @Tags         normas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NormaCalidadResponse
// @Router       /api/matriz-legal/normas/calidad [get]
func (h *NormaHandler) Calidad(c *fiber.Ctx) error {
	out, err := h.uc.Calidad(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Exportar godoc
// @Summary      Exportar catálogo a Excel
// @Description  Usa los encabezados de importación: el archivo se puede volver a importar.
// @Tags         normas
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        clasificacion        query  string  false  "Clasificación"
// @Param        sector_economico_id  query  string  false  "Sector"
// @Success      200
// @Router       /api/matriz-legal/normas/export/excel [get]
func (h *NormaHandler) Exportar(c *fiber.Ctx) error {
	filter := repository.NormaFilter{
		Clasificacion:     c.Query("clasificacion"),
		SectorEconomicoID: c.Query("sector_economico_id"),
		TemaGeneral:       c.Query("tema_general"),
	}
	var buf bytes.Buffer
	if err := h.importacion.ExportarCatalogo(c.UserContext(), filter, &buf); err != nil {
		return respondError(c, err)
	}
	c.Attachment("catalogo_normas.xlsx")
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(buf.Bytes())
}
