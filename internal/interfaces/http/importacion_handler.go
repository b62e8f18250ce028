package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
)

// ImportacionHandler importación de normas desde Excel/CSV en dos fases.
type ImportacionHandler struct {
	svc *importacion.Service
}

// NewImportacionHandler construye el handler.
func NewImportacionHandler(svc *importacion.Service) *ImportacionHandler {
	return &ImportacionHandler{svc: svc}
}

// Preview godoc
// @Summary      Analizar archivo de normas sin escribir
// @Tags         importacion
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx o .csv"
// @Success      200   {object}  dto.ImportPreview
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/importar/preview [post]
func (h *ImportacionHandler) Preview(c *fiber.Ctx) error {
	_, data, err := leerArchivo(c)
	if err != nil {
		return badRequest(c, "INVALID_FILE", err.Error())
	}
	out, err := h.svc.Preview(c.UserContext(), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Importar normas
// @Description  Éxito parcial: las filas inválidas se reportan y el resto se escribe.
// @Tags         importacion
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file                     formData  file  true   "Archivo .xlsx o .csv"
// @Param        sobrescribir_existentes  query     bool  false  "Actualizar normas existentes"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/matriz-legal/importar [post]
func (h *ImportacionHandler) Commit(c *fiber.Ctx) error {
	nombre, data, err := leerArchivo(c)
	if err != nil {
		return badRequest(c, "INVALID_FILE", err.Error())
	}
	sobrescribir := c.QueryBool("sobrescribir_existentes", false)
	if v := c.FormValue("sobrescribir_existentes"); v != "" {
		if b, perr := strconv.ParseBool(v); perr == nil {
			sobrescribir = b
		}
	}
	out, err := h.svc.Commit(c.UserContext(), nombre, data, sobrescribir, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Bitácora de importaciones
// @Tags         importacion
// @Security     Bearer
// @Produce      json
// @Param        page  query  int  false  "Página"  default(1)
// @Param        size  query  int  false  "Tamaño"  default(20)
// @Success      200   {object}  dto.PaginatedResponse[dto.ImportacionResponse]
// @Router       /api/matriz-legal/importaciones [get]
func (h *ImportacionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.svc.Importaciones(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func leerArchivo(c *fiber.Ctx) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "campo multipart \"file\" requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
