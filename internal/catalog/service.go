package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Log define lo que el service necesita del logger.
type Log interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// RepositoryAPI define lo que el service necesita del repositorio.
// Permite testear el service con fakes sin tocar DB.
type RepositoryAPI interface {
	Upsert(ctx context.Context, input UpsertInput) (int64, error)
	Ranged(ctx context.Context, input RangedQueryInput) ([]ItemRow, error)
	Advanced(ctx context.Context, input AdvancedQueryInput) ([]ItemRow, error)
}

// Service orquesta cada operación: validar, ejecutar, empaquetar.
// Las etapas de validación y empaquetado son puras; el único punto
// bloqueante es el round trip a la DB dentro del repositorio.
type Service struct {
	repository RepositoryAPI
	log        Log
}

// NewService crea el service del catálogo.
func NewService(repository RepositoryAPI, log Log) *Service {
	return &Service{repository: repository, log: log}
}

// Upsert valida y ejecuta el insert-or-update, devolviendo el id.
func (service *Service) Upsert(ctx context.Context, request UpsertRequest) (UpsertResult, error) {
	input, err := ValidateUpsert(request)
	if err != nil {
		return UpsertResult{}, err
	}

	service.log.Info("upserting item", zap.String("name", input.Name))

	id, err := service.repository.Upsert(ctx, input)
	if err != nil {
		return UpsertResult{}, err
	}

	service.log.Info("completed upsert", zap.Int64("id", id))
	return PackageUpsert(id), nil
}

// Query valida y ejecuta la consulta por ventana temporal.
func (service *Service) Query(ctx context.Context, request RangedQueryRequest) (RangedQueryResult, error) {
	input, err := ValidateRangedQuery(request)
	if err != nil {
		return RangedQueryResult{}, err
	}

	service.log.Info("running ranged query")

	rows, err := service.repository.Ranged(ctx, input)
	if err != nil {
		return RangedQueryResult{}, err
	}

	result, err := PackageRanged(rows)
	if err != nil {
		return RangedQueryResult{}, err
	}

	service.log.Info("completed ranged query", zap.Int("items", len(result.Items)))
	return result, nil
}

// AdvancedQuery valida y ejecuta la consulta avanzada.
func (service *Service) AdvancedQuery(ctx context.Context, request AdvancedQueryRequest) (AdvancedQueryResult, error) {
	input, err := ValidateAdvancedQuery(request)
	if err != nil {
		return AdvancedQueryResult{}, err
	}

	service.log.Info("running advanced query",
		zap.String("sort_field", input.SortField),
		zap.String("sort_order", input.SortOrder),
		zap.Int("page", input.Page),
		zap.Int("limit", input.Limit),
	)

	rows, err := service.repository.Advanced(ctx, input)
	if err != nil {
		return AdvancedQueryResult{}, err
	}

	result, err := PackageAdvanced(rows, input)
	if err != nil {
		return AdvancedQueryResult{}, err
	}

	service.log.Info("completed advanced query", zap.Int("count", result.Count))
	return result, nil
}
