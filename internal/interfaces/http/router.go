package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SectorUC         *usecase.SectorUseCase
	EmpresaUC        *usecase.EmpresaUseCase
	NormaUC          *usecase.NormaUseCase
	Matriz           *matriz.Service
	Importacion      *importacion.Service
	SyncConcurrencia int
	JWTSecret        string
	JWTIssuer        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Con JWT_SECRET vacío el middleware deja pasar sin identidad.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Sectores económicos
	sectores := api.Group("/sectores-economicos")
	sectorHandler := NewSectorHandler(deps.SectorUC)
	sectores.Get("/", sectorHandler.List)
	sectores.Get("/activos", sectorHandler.Activos)
	sectores.Post("/", sectorHandler.Create)
	sectores.Get("/:id", sectorHandler.GetByID)
	sectores.Put("/:id", sectorHandler.Update)
	sectores.Delete("/:id", sectorHandler.Delete)

	// Empresas
	empresas := api.Group("/empresas")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC, deps.Matriz)
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/activas", empresaHandler.Activas)
	empresas.Post("/", empresaHandler.Create)
	empresas.Get("/:id", empresaHandler.GetByID)
	empresas.Put("/:id", empresaHandler.Update)
	empresas.Delete("/:id", empresaHandler.Delete)
	empresas.Get("/:id/caracteristicas", empresaHandler.Caracteristicas)
	empresas.Post("/:id/sincronizar-normas", empresaHandler.Sincronizar)

	ml := api.Group("/matriz-legal")

	// Importación
	importHandler := NewImportacionHandler(deps.Importacion)
	ml.Post("/importar/preview", importHandler.Preview)
	ml.Post("/importar", importHandler.Commit)
	ml.Get("/importaciones", importHandler.List)

	// Catálogo de normas (rutas fijas antes de /:id)
	normaHandler := NewNormaHandler(deps.NormaUC, deps.Importacion)
	normas := ml.Group("/normas")
	normas.Get("/", normaHandler.List)
	normas.Get("/catalogos/clasificaciones", normaHandler.Clasificaciones)
	normas.Get("/catalogos/temas", normaHandler.Temas)
	normas.Get("/catalogos/anios", normaHandler.Anios)
	normas.Get("/calidad", normaHandler.Calidad)
	normas.Get("/export/excel", normaHandler.Exportar)
	normas.Get("/:id", normaHandler.GetByID)
	normas.Put("/:id", normaHandler.Update)

	// Matriz por empresa
	matrizHandler := NewMatrizHandler(deps.Matriz, deps.SyncConcurrencia)
	ml.Post("/sincronizar-todas", matrizHandler.SincronizarTodas)
	me := ml.Group("/empresas/:id")
	me.Get("/normas", matrizHandler.NormasEmpresa)
	me.Get("/estadisticas", matrizHandler.Estadisticas)
	me.Get("/dashboard", matrizHandler.Dashboard)
	me.Post("/cumplimiento/bulk", matrizHandler.Bulk)
	me.Put("/cumplimiento/:normaID", matrizHandler.ActualizarCumplimiento)
	me.Get("/cumplimiento/:cumplimientoID/historial", matrizHandler.Historial)
	me.Get("/export/excel", matrizHandler.ExportarExcel)
	me.Get("/export/pdf", matrizHandler.ExportarPDF)
}
