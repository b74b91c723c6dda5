package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Lelo88/catalog-query-golang/internal/config"
	"github.com/Lelo88/catalog-query-golang/internal/httpx"
	"github.com/Lelo88/catalog-query-golang/internal/logger"
)

type fakePool struct {
	pingCalled  bool
	closeCalled bool
	execCalled  bool
	lastExecSQL string
}

func (pool *fakePool) Ping(ctx context.Context) error {
	pool.pingCalled = true
	return nil
}

func (pool *fakePool) Close() {
	pool.closeCalled = true
}

func (pool *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool.execCalled = true
	pool.lastExecSQL = sql
	return pgconn.CommandTag{}, nil
}

func (pool *fakePool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query call")
}

func (pool *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Port:         "8080",
		DatabaseURL:  "postgres://example",
		LogLevel:     "info",
		CatalogTable: "catalog_items",
	}
}

func testDeps(pool *fakePool) appDeps {
	return appDeps{
		loadConfig: func() (config.Config, error) {
			return testConfig(), nil
		},
		newLogger: func(level string) (*logger.Logger, error) {
			return &logger.Logger{}, nil
		},
		newPool: func(ctx context.Context, url string) (appPool, error) {
			return pool, nil
		},
		listenAndServe: func(addr string, handler http.Handler) error {
			return nil
		},
	}
}

func TestMain_FatalOnError(t *testing.T) {
	originalLoad := loadConfigFn
	originalFatal := fatalf
	defer func() {
		loadConfigFn = originalLoad
		fatalf = originalFatal
	}()

	expectedErr := errors.New("config failed")
	loadConfigFn = func() (config.Config, error) {
		return config.Config{}, expectedErr
	}

	fatalCalled := false
	var fatalArg any
	fatalf = func(args ...any) {
		fatalCalled = true
		if len(args) > 0 {
			fatalArg = args[0]
		}
	}

	main()

	require.True(t, fatalCalled)
	require.Equal(t, expectedErr, fatalArg)
}

func TestRun_ConfigError(t *testing.T) {
	deps := testDeps(&fakePool{})
	deps.loadConfig = func() (config.Config, error) {
		return config.Config{}, errors.New("load failed")
	}

	err := run(context.Background(), deps)

	require.Error(t, err)
}

func TestRun_LoggerError(t *testing.T) {
	deps := testDeps(&fakePool{})
	deps.newLogger = func(level string) (*logger.Logger, error) {
		return nil, errors.New("bad level")
	}

	err := run(context.Background(), deps)

	require.Error(t, err)
}

func TestRun_NewPoolError(t *testing.T) {
	deps := testDeps(nil)
	deps.newPool = func(ctx context.Context, url string) (appPool, error) {
		return nil, errors.New("new pool failed")
	}

	err := run(context.Background(), deps)

	require.Error(t, err)
}

func TestRun_ListenError(t *testing.T) {
	pool := &fakePool{}
	deps := testDeps(pool)
	deps.listenAndServe = func(addr string, handler http.Handler) error {
		return errors.New("listen failed")
	}

	err := run(context.Background(), deps)

	require.Error(t, err)
	require.True(t, pool.closeCalled)
}

func TestRun_Success(t *testing.T) {
	pool := &fakePool{}
	var listenAddr string
	deps := testDeps(pool)
	deps.listenAndServe = func(addr string, handler http.Handler) error {
		listenAddr = addr
		return nil
	}

	err := run(context.Background(), deps)

	require.NoError(t, err)
	require.Equal(t, ":8080", listenAddr)
	require.True(t, pool.closeCalled)
	// el schema se aprovisiona una sola vez en el arranque
	require.True(t, pool.execCalled)
	require.Contains(t, pool.lastExecSQL, "CREATE TABLE IF NOT EXISTS")
}

func TestNewRouter_HealthReady(t *testing.T) {
	pool := &fakePool{}
	router := newRouter(pool, testConfig(), &logger.Logger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := asMap(t, resp.Data)
	require.Equal(t, "ok", data["status"])

	req = httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	data = asMap(t, resp.Data)
	require.Equal(t, "ready", data["status"])
	require.True(t, pool.pingCalled)
}

func TestNewRouter_NotFound(t *testing.T) {
	router := newRouter(&fakePool{}, testConfig(), &logger.Logger{})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	require.Equal(t, "not_found", resp.Error.Code)
}

func TestNewRouter_MethodNotAllowed(t *testing.T) {
	router := newRouter(&fakePool{}, testConfig(), &logger.Logger{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	require.Equal(t, "method_not_allowed", resp.Error.Code)
}

func TestNewRouter_SessionHeader(t *testing.T) {
	router := newRouter(&fakePool{}, testConfig(), &logger.Logger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.NotEmpty(t, rec.Header().Get(httpx.SessionHeader))
}

func TestNewRouter_UpsertValidation(t *testing.T) {
	// Wiring completo: un upsert inválido corta en validación sin tocar
	// el pool.
	pool := &fakePool{}
	router := newRouter(pool, testConfig(), &logger.Logger{})

	body := `{"name":"","category":"Stationary","price":1.5}`
	req := httptest.NewRequest(http.MethodPost, "/items/upsert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	require.Equal(t, "validation_error", resp.Error.Code)
	require.False(t, pool.execCalled)
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpx.Response {
	t.Helper()

	var response httpx.Response
	decoder := json.NewDecoder(bytes.NewReader(recorder.Body.Bytes()))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&response))
	return response
}

func asMap(t *testing.T, value any) map[string]any {
	t.Helper()

	out, ok := value.(map[string]any)
	require.True(t, ok, "expected map, got %T", value)
	return out
}
