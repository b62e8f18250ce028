package importacion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/dto"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

const muestraFilas = 5

// Deps dependencias del pipeline.
type Deps struct {
	Normas        repository.NormaRepository
	Importaciones repository.ImportacionRepository
	Tx            TxRunner
	Lector        TablaReader
	Hojas         HojaWriter
	Alias         Alias
	MaxFilas      int
	Metrics       Recorder
	Logger        zerolog.Logger
	Now           func() time.Time
}

// Service flujo de importación en dos fases: Preview (sin escritura) y Commit.
type Service struct {
	normas        repository.NormaRepository
	importaciones repository.ImportacionRepository
	tx            TxRunner
	lector        TablaReader
	hojas         HojaWriter
	alias         Alias
	maxFilas      int
	metrics       Recorder
	log           zerolog.Logger
	now           func() time.Time
}

// NewService construye el pipeline. Sin Alias usa AliasPorDefecto.
func NewService(d Deps) *Service {
	s := &Service{
		normas:        d.Normas,
		importaciones: d.Importaciones,
		tx:            d.Tx,
		lector:        d.Lector,
		hojas:         d.Hojas,
		alias:         d.Alias,
		maxFilas:      d.MaxFilas,
		metrics:       d.Metrics,
		log:           d.Logger.With().Str("component", "importacion").Logger(),
		now:           d.Now,
	}
	if s.alias == nil {
		s.alias = AliasPorDefecto()
	}
	if s.metrics == nil {
		s.metrics = noopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// filaValida fila parseada sin errores. Numero es 1-based contando el encabezado como fila 1.
type filaValida struct {
	numero int
	norma  *entity.Norma
}

type analisis struct {
	mapeo        *Mapeo
	total        int
	validas      []filaValida
	errores      []domain.FilaError
	advertencias []dto.FilaAdvertencia
}

// analizar lee y valida el archivo completo sin tocar el almacenamiento.
func (s *Service) analizar(data []byte) (*analisis, error) {
	if len(data) == 0 {
		return nil, domain.NewValidationError("file", "archivo vacío")
	}
	filas, err := s.lector.Read(data)
	if err != nil {
		return nil, domain.NewValidationError("file", "no se pudo leer el archivo: %v", err)
	}
	if len(filas) == 0 || FilaVacia(filas[0]) {
		return nil, domain.NewValidationError("file", "el archivo no tiene fila de encabezados")
	}
	a := &analisis{
		mapeo:        NuevoMapeo(filas[0], s.alias),
		errores:      []domain.FilaError{},
		advertencias: []dto.FilaAdvertencia{},
	}
	primeras := make(map[string]filaValida)
	for i, fila := range filas[1:] {
		if FilaVacia(fila) {
			continue
		}
		a.total++
		if s.maxFilas > 0 && a.total > s.maxFilas {
			return nil, domain.NewValidationError("file", "el archivo supera el máximo de %d filas", s.maxFilas)
		}
		numero := i + 2
		n, adv, err := a.mapeo.ParseFila(fila)
		if err != nil {
			a.errores = append(a.errores, domain.FilaError{Fila: numero, Error: err.Error()})
			continue
		}
		for _, msg := range adv {
			a.advertencias = append(a.advertencias, dto.FilaAdvertencia{Fila: numero, Advertencia: msg})
		}
		fv := filaValida{numero: numero, norma: n}
		k := n.Clave().String()
		if primera, ok := primeras[k]; !ok {
			primeras[k] = fv
		} else if cp := *primera.norma; CopiarCampos(&cp, n) {
			a.advertencias = append(a.advertencias, dto.FilaAdvertencia{
				Fila:        numero,
				Advertencia: fmt.Sprintf("norma repetida con contenido distinto al de la fila %d: con sobrescribir prevalece la última", primera.numero),
			})
		}
		a.validas = append(a.validas, fv)
	}
	return a, nil
}

// Preview analiza el archivo y clasifica cada fila válida como nueva o existente contra el catálogo.
// Las filas con errores se excluyen de los conteos.
func (s *Service) Preview(ctx context.Context, data []byte) (*dto.ImportPreview, error) {
	a, err := s.analizar(data)
	if err != nil {
		return nil, err
	}
	claves, err := s.normas.Claves(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar claves del catálogo: %w", err)
	}
	out := &dto.ImportPreview{
		TotalFilas:         a.total,
		ColumnasDetectadas: a.mapeo.Encabezados,
		ColumnasMapeadas:   a.mapeo.Columnas,
		ErroresValidacion:  a.errores,
		Advertencias:       a.advertencias,
		MuestraDatos:       []map[string]any{},
	}
	vistas := make(map[string]bool, len(a.validas))
	for _, f := range a.validas {
		k := f.norma.Clave().String()
		if _, existe := claves[k]; existe || vistas[k] {
			out.NormasExistentesPreview++
		} else {
			out.NormasNuevasPreview++
		}
		vistas[k] = true
		if len(out.MuestraDatos) < muestraFilas {
			m := ValoresNorma(f.norma)
			m["fila"] = f.numero
			out.MuestraDatos = append(out.MuestraDatos, m)
		}
	}
	return out, nil
}

type resultadoFila int

const (
	filaNueva resultadoFila = iota
	filaActualizada
	filaSinCambios
	filaOmitida
)

// Commit vuelve a analizar el archivo y escribe cada fila válida en su propio punto de guardado dentro de
// una transacción por archivo. Errores de fila se acumulan; el lote nunca se aborta por una fila.
func (s *Service) Commit(ctx context.Context, nombreArchivo string, data []byte, sobrescribir bool, usuario string) (*dto.ImportResult, error) {
	start := time.Now()
	a, err := s.analizar(data)
	if err != nil {
		return nil, err
	}
	res := &dto.ImportResult{
		ID:               uuid.New().String(),
		NombreArchivo:    nombreArchivo,
		FechaImportacion: s.now(),
		TotalFilas:       a.total,
		ErroresDetalle:   append([]domain.FilaError{}, a.errores...),
	}
	if usuario != "" {
		res.CreadoPor = &usuario
	}

	err = s.tx.RunImport(ctx, func(tx ImportTx) error {
		for _, f := range a.validas {
			var r resultadoFila
			err := tx.Fila(ctx, func(repo repository.NormaRepository) error {
				var err error
				r, err = s.escribirFila(ctx, repo, f.norma, sobrescribir)
				return err
			})
			if err != nil {
				res.ErroresDetalle = append(res.ErroresDetalle, domain.FilaError{Fila: f.numero, Error: err.Error()})
				continue
			}
			switch r {
			case filaNueva:
				res.NormasNuevas++
			case filaActualizada:
				res.NormasActualizadas++
			case filaSinCambios:
				res.NormasSinCambios++
			case filaOmitida:
				res.NormasOmitidas++
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveImport(start, entity.ImportacionFallida, 0, 0, len(a.validas)+len(a.errores))
		return nil, fmt.Errorf("importar %s: %w", nombreArchivo, err)
	}
	res.Errores = len(res.ErroresDetalle)
	res.Estado = estadoImportacion(res)

	if err := s.registrar(ctx, res); err != nil {
		s.log.Error().Err(err).Str("archivo", nombreArchivo).Msg("registrar importación")
	}
	s.metrics.ObserveImport(start, res.Estado, res.NormasNuevas, res.NormasActualizadas, res.Errores)
	s.log.Info().
		Str("archivo", nombreArchivo).
		Str("estado", res.Estado).
		Int("total_filas", res.TotalFilas).
		Int("nuevas", res.NormasNuevas).
		Int("actualizadas", res.NormasActualizadas).
		Int("sin_cambios", res.NormasSinCambios).
		Int("omitidas", res.NormasOmitidas).
		Int("errores", res.Errores).
		Bool("sobrescribir", sobrescribir).
		Dur("duration", time.Since(start)).
		Msg("importación de normas")
	return res, nil
}

// escribirFila inserta la norma si la clave natural es nueva; si existe la actualiza solo con sobrescribir.
func (s *Service) escribirFila(ctx context.Context, repo repository.NormaRepository, n *entity.Norma, sobrescribir bool) (resultadoFila, error) {
	existente, err := repo.GetByClave(ctx, n.Clave())
	if err != nil {
		return 0, err
	}
	now := s.now()
	if existente == nil {
		nueva := *n
		nueva.ID = uuid.New().String()
		nueva.CreatedAt = now
		nueva.UpdatedAt = now
		if err := repo.Create(ctx, &nueva); err != nil {
			return 0, err
		}
		return filaNueva, nil
	}
	if !sobrescribir {
		return filaOmitida, nil
	}
	if !CopiarCampos(existente, n) {
		return filaSinCambios, nil
	}
	existente.Version++
	existente.UpdatedAt = now
	if err := repo.Update(ctx, existente); err != nil {
		return 0, err
	}
	return filaActualizada, nil
}

func estadoImportacion(r *dto.ImportResult) string {
	escritas := r.NormasNuevas + r.NormasActualizadas + r.NormasSinCambios + r.NormasOmitidas
	switch {
	case r.Errores == 0:
		return entity.ImportacionCompletada
	case escritas > 0:
		return entity.ImportacionParcial
	default:
		return entity.ImportacionFallida
	}
}

func (s *Service) registrar(ctx context.Context, r *dto.ImportResult) error {
	if s.importaciones == nil {
		return nil
	}
	imp := &entity.Importacion{
		ID:                 r.ID,
		NombreArchivo:      r.NombreArchivo,
		FechaImportacion:   r.FechaImportacion,
		Estado:             r.Estado,
		TotalFilas:         r.TotalFilas,
		NormasNuevas:       r.NormasNuevas,
		NormasActualizadas: r.NormasActualizadas,
		NormasSinCambios:   r.NormasSinCambios + r.NormasOmitidas,
		Errores:            r.Errores,
		CreadoPor:          r.CreadoPor,
	}
	if len(r.ErroresDetalle) > 0 {
		raw, err := json.Marshal(r.ErroresDetalle)
		if err != nil {
			return err
		}
		log := string(raw)
		imp.LogErrores = &log
	}
	return s.importaciones.Create(ctx, imp)
}

// Importaciones lista la bitácora de importaciones, más recientes primero.
func (s *Service) Importaciones(ctx context.Context, page dto.PageRequest) (*dto.PaginatedResponse[dto.ImportacionResponse], error) {
	page.DefaultPage(20, 100)
	list, total, err := s.importaciones.List(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ImportacionResponse, 0, len(list))
	for _, i := range list {
		items = append(items, dto.ImportacionResponse{
			ID:                 i.ID,
			NombreArchivo:      i.NombreArchivo,
			FechaImportacion:   i.FechaImportacion,
			Estado:             i.Estado,
			TotalFilas:         i.TotalFilas,
			NormasNuevas:       i.NormasNuevas,
			NormasActualizadas: i.NormasActualizadas,
			NormasSinCambios:   i.NormasSinCambios,
			Errores:            i.Errores,
			LogErrores:         i.LogErrores,
			CreadoPor:          i.CreadoPor,
		})
	}
	resp := dto.NewPaginated(items, total, page)
	return &resp, nil
}
