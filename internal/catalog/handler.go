package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Lelo88/catalog-query-golang/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	Upsert(ctx context.Context, request UpsertRequest) (UpsertResult, error)
	Query(ctx context.Context, request RangedQueryRequest) (RangedQueryResult, error)
	AdvancedQuery(ctx context.Context, request AdvancedQueryRequest) (AdvancedQueryResult, error)
}

// Handler HTTP del catálogo.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
	log     Log
}

// NewHandler crea un handler de catálogo.
func NewHandler(service ServiceAPI, log Log) *Handler {
	return &Handler{service: service, log: log}
}

// Upsert maneja POST /items/upsert.
func (handler *Handler) Upsert(writer http.ResponseWriter, request *http.Request) {
	var payload UpsertRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	result, err := handler.service.Upsert(request.Context(), payload)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, result)
}

// Query maneja POST /items/query.
func (handler *Handler) Query(writer http.ResponseWriter, request *http.Request) {
	payload := RangedQueryRequest{}
	// Body vacío = consulta sin filtros; solo JSON malformado falla.
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	result, err := handler.service.Query(request.Context(), payload)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, result)
}

// AdvancedQuery maneja POST /items/query/advanced.
func (handler *Handler) AdvancedQuery(writer http.ResponseWriter, request *http.Request) {
	var payload AdvancedQueryRequest
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	result, err := handler.service.AdvancedQuery(request.Context(), payload)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, result)
}

// fail mapea errores de dominio a status HTTP.
// El detalle del store va al log, nunca al cliente.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	var validationError *ValidationError
	var storeError *StoreError

	switch {
	case errors.As(err, &validationError):
		httpx.Fail(writer, request, http.StatusBadRequest, "validation_error", validationError.Field+": "+validationError.Message)
	case errors.As(err, &storeError):
		handler.log.Error("store operation failed", zap.Error(storeError.Err))
		httpx.Fail(writer, request, http.StatusBadRequest, "store_error", "the store could not complete the operation")
	default:
		handler.log.Error("unexpected error", zap.Error(err))
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
