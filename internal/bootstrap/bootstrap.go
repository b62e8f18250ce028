// Package bootstrap arma los servicios de la matriz legal a partir de la configuración. Lo comparten el
// servidor HTTP y la CLI para que ambos usen el mismo almacenamiento, candado y métricas.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Bernah2o/sst-matriz-legal/internal/application/importacion"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/matriz"
	"github.com/Bernah2o/sst-matriz-legal/internal/application/usecase"
	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/lock"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/memory"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/metrics"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/pdf"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/postgres"
	"github.com/Bernah2o/sst-matriz-legal/internal/infrastructure/spreadsheet"
	"github.com/Bernah2o/sst-matriz-legal/pkg/config"
)

// App servicios listos para usar. Close libera pool y cliente Redis.
type App struct {
	Matriz      *matriz.Service
	Importacion *importacion.Service
	Empresas    *usecase.EmpresaUseCase
	Sectores    *usecase.SectorUseCase
	Normas      *usecase.NormaUseCase
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry

	closers []func()
}

// Close libera los recursos en orden inverso a su apertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type storage struct {
	empresas      repository.EmpresaRepository
	sectores      repository.SectorRepository
	normas        repository.NormaRepository
	cumplimientos repository.CumplimientoRepository
	importaciones repository.ImportacionRepository
	tx            interface {
		matriz.TxRunner
		importacion.TxRunner
	}
}

// New construye la aplicación. Con STORAGE_DRIVER=postgres abre el pool y aplica migraciones si
// DB_AUTO_MIGRATE está activo; con REDIS_URL usa el candado distribuido.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Registry: prometheus.NewRegistry()}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(a.Registry)

	st, err := a.abrirStorage(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	locker, err := a.abrirLocker(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	alias, err := importacion.CargarAlias(cfg.Import.HeaderAliasesPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	hojas := spreadsheet.NewXLSXWriter()
	a.Matriz = matriz.NewService(matriz.Deps{
		Empresas:      st.empresas,
		Normas:        st.normas,
		Cumplimientos: st.cumplimientos,
		Importaciones: st.importaciones,
		Tx:            st.tx,
		Locker:        locker,
		Metrics:       a.Metrics,
		Hojas:         hojas,
		Reportes:      pdf.NewMarotoReporte(),
		Logger:        log,
	})
	a.Importacion = importacion.NewService(importacion.Deps{
		Normas:        st.normas,
		Importaciones: st.importaciones,
		Tx:            st.tx,
		Lector:        spreadsheet.NewReader(),
		Hojas:         hojas,
		Alias:         alias,
		MaxFilas:      cfg.Import.MaxRows,
		Metrics:       a.Metrics,
		Logger:        log,
	})
	a.Empresas = usecase.NewEmpresaUseCase(st.empresas, st.sectores, a.Matriz, cfg.Sync.OnProfileChange, log)
	a.Sectores = usecase.NewSectorUseCase(st.sectores)
	a.Normas = usecase.NewNormaUseCase(st.normas, log)
	return a, nil
}

func (a *App) abrirStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		r := memory.NewRepos()
		return &storage{
			empresas: r.Empresas, sectores: r.Sectores, normas: r.Normas,
			cumplimientos: r.Cumplimientos, importaciones: r.Importaciones, tx: r.Tx,
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
	}
	return &storage{
		empresas:      postgres.NewEmpresaRepository(pool),
		sectores:      postgres.NewSectorRepository(pool),
		normas:        postgres.NewNormaRepository(pool),
		cumplimientos: postgres.NewCumplimientoRepository(pool),
		importaciones: postgres.NewImportacionRepository(pool),
		tx:            postgres.NewTxRunner(pool),
	}, nil
}

func (a *App) abrirLocker(ctx context.Context, cfg *config.Config, log zerolog.Logger) (matriz.Locker, error) {
	if cfg.Redis.URL == "" {
		return lock.NewLocal(), nil
	}
	client, err := lock.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("conexión a Redis: %w", err)
	}
	a.closers = append(a.closers, func() { closeRedis(client, log) })
	return lock.NewRedis(client, cfg.Redis.LockTTL, log), nil
}

func closeRedis(client *redis.Client, log zerolog.Logger) {
	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("cerrar cliente Redis")
	}
}
