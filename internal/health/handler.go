package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Lelo88/catalog-query-golang/internal/httpx"
)

// Pinger define lo que el handler necesita del pool para readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler encapsula endpoints de health.
type Handler struct {
	pool Pinger
}

// New crea un handler de health.
func New(pool Pinger) *Handler {
	return &Handler{pool: pool}
}

// Health indica si el proceso está vivo. NO chequea base de datos.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready indica si la app puede atender tráfico: pinguea la DB con un
// timeout corto.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.pool == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database pool not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := handler.pool.Ping(ctx); err != nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database is not reachable")
		return
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
