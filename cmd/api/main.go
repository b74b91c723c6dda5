package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Lelo88/catalog-query-golang/internal/catalog"
	"github.com/Lelo88/catalog-query-golang/internal/config"
	"github.com/Lelo88/catalog-query-golang/internal/db"
	"github.com/Lelo88/catalog-query-golang/internal/docs"
	"github.com/Lelo88/catalog-query-golang/internal/health"
	"github.com/Lelo88/catalog-query-golang/internal/httpx"
	"github.com/Lelo88/catalog-query-golang/internal/logger"
)

// appPool es lo que el wiring necesita del pool: ping para readiness,
// ejecución para el repositorio y el provisioner, y cierre ordenado.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// appDeps agrupa las dependencias de run para poder testearlo sin
// red ni DB.
type appDeps struct {
	loadConfig     func() (config.Config, error)
	newLogger      func(level string) (*logger.Logger, error)
	newPool        func(ctx context.Context, url string) (appPool, error)
	listenAndServe func(addr string, handler http.Handler) error
}

var (
	loadConfigFn = config.Load
	newLoggerFn  = logger.NewLogger
	newPoolFn    = func(ctx context.Context, url string) (appPool, error) {
		return db.NewPool(ctx, url)
	}
	listenAndServeFn = http.ListenAndServe
	fatalf           = log.Fatal
)

func main() {
	deps := appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		newPool:        newPoolFn,
		listenAndServe: listenAndServeFn,
	}

	if err := run(context.Background(), deps); err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	appLogger, err := deps.newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	pool, err := deps.newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Aprovisionamiento idempotente, una sola vez por proceso.
	provisioner := db.NewProvisioner(pool, cfg.CatalogTable)
	if err := provisioner.Ensure(ctx); err != nil {
		return err
	}

	router := newRouter(pool, cfg, appLogger)

	addr := ":" + cfg.Port
	appLogger.Info("listening", zap.String("addr", addr))
	return deps.listenAndServe(addr, router)
}

// newRouter arma el router con middlewares base y todas las rutas.
// Todas las dependencias se construyen acá, una vez por proceso.
func newRouter(pool appPool, cfg config.Config, appLogger *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.SessionID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.Fail(w, req, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.Fail(w, req, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(r)

	repository := catalog.NewRepository(pool, cfg.CatalogTable)
	service := catalog.NewService(repository, appLogger)
	catalog.RegisterRoutes(r, catalog.NewHandler(service, appLogger))

	return r
}
