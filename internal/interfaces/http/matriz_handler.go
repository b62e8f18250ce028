package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
)

// MatrizHandler matriz legal por empresa: normas con cumplimiento, evaluación, estadísticas y reportes.
type MatrizHandler struct {
	svc              *matriz.Service
	syncConcurrencia int
}

// NewMatrizHandler construye el handler. syncConcurrencia acota la sincronización masiva.
func NewMatrizHandler(svc *matriz.Service, syncConcurrencia int) *MatrizHandler {
	return &MatrizHandler{svc: svc, syncConcurrencia: syncConcurrencia}
}

// NormasEmpresa godoc
// @Summary      Normas de la empresa con su cumplimiento
// @Tags         matriz-legal
// @Security     Bearer
// @Produce      json
// @Param        id                   path   string  true   "ID de la empresa"
// @Param        solo_aplicables      query  bool    false  "Solo normas aplicables"
// @Param        estado_cumplimiento  query  string  false  "Estado de cumplimiento"
// @Param        clasificacion        query  string  false  "Clasificación"
// @Param        tema_general         query  string  false  "Tema general"
// @Param        q                    query  string  false  "Texto libre"
// @Param        page                 query  int     false  "Página"  default(1)
// @Param        size                 query  int     false  "Tamaño"  default(50)
// @Success      200  {object}  dto.PaginatedResponse[dto.NormaConCumplimiento]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/normas [get]
func (h *MatrizHandler) NormasEmpresa(c *fiber.Ctx) error {
	var in dto.NormasEmpresaFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.svc.NormasEmpresa(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Estadisticas godoc
// @Summary      Estadísticas de cumplimiento
// @Tags         matriz-legal
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.EstadisticasResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/estadisticas [get]
func (h *MatrizHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.svc.Estadisticas(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen de la matriz legal de la empresa
// @Tags         matriz-legal
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/dashboard [get]
func (h *MatrizHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.svc.Dashboard(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ActualizarCumplimiento godoc
// @Summary      Evaluar una norma para la empresa
// @Description  Crea el registro si no existe. aplica_empresa=false exige justificacion_no_aplica.
// @Tags         matriz-legal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID de la empresa"
// @Param        normaID  path  string  true  "ID de la norma"
// @Param        body     body  dto.UpdateCumplimientoRequest  true  "Evaluación"
// @Success      200  {object}  dto.CumplimientoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/cumplimiento/{normaID} [put]
func (h *MatrizHandler) ActualizarCumplimiento(c *fiber.Ctx) error {
	var in dto.UpdateCumplimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.ActualizarCumplimiento(c.UserContext(), c.Params("id"), c.Params("normaID"), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Bulk godoc
// @Summary      Cambio de estado masivo
// @Description  Cada registro se procesa por separado; los fallos se reportan sin bloquear al resto.
// @Tags         matriz-legal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.BulkCumplimientoRequest  true  "Registros y estado"
// @Success      200   {object}  dto.BulkCumplimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/cumplimiento/bulk [post]
func (h *MatrizHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkCumplimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.BulkUpdate(c.UserContext(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Historial godoc
// @Summary      Historial de estados de un cumplimiento
// @Tags         matriz-legal
// @Security     Bearer
// @Produce      json
// @Param        id              path  string  true  "ID de la empresa"
// @Param        cumplimientoID  path  string  true  "ID del registro de cumplimiento"
// @Success      200  {array}  dto.HistorialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/cumplimiento/{cumplimientoID}/historial [get]
func (h *MatrizHandler) Historial(c *fiber.Ctx) error {
	out, err := h.svc.Historial(c.UserContext(), c.Params("id"), c.Params("cumplimientoID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SincronizarTodas godoc
// @Summary      Sincronizar todas las empresas activas
// @Tags         matriz-legal
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncAllResponse
// @Router       /api/matriz-legal/sincronizar-todas [post]
func (h *MatrizHandler) SincronizarTodas(c *fiber.Ctx) error {
	out, err := h.svc.SyncAll(c.UserContext(), h.syncConcurrencia)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportarExcel godoc
// @Summary      Exportar la matriz legal de la empresa a Excel
// @Tags         matriz-legal
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id                     path   string  true   "ID de la empresa"
// @Param        incluir_no_aplicables  query  bool    false  "Incluir normas que ya no aplican"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/export/excel [get]
func (h *MatrizHandler) ExportarExcel(c *fiber.Ctx) error {
	var buf bytes.Buffer
	nombre, err := h.svc.ExportarEmpresa(c.UserContext(), c.Params("id"), c.QueryBool("incluir_no_aplicables", false), &buf)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(nombre)
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(buf.Bytes())
}

// ExportarPDF godoc
// @Summary      Reporte PDF de cumplimiento de la empresa
// @Tags         matriz-legal
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/empresas/{id}/export/pdf [get]
func (h *MatrizHandler) ExportarPDF(c *fiber.Ctx) error {
	doc, nombre, err := h.svc.ReportePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(nombre)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}
