package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Capa de validación: transforma payloads crudos en valores tipados e
// internamente consistentes, o falla con ValidationError. No hace I/O
// ni tiene efectos; ningún estado parcialmente validado pasa de acá.

// Formatos de fecha aceptados en dt_from/dt_to.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidateUpsert aplica las reglas del upsert:
// name y category no vacíos, price coercible a un decimal no negativo.
func ValidateUpsert(request UpsertRequest) (UpsertInput, error) {
	name, err := requiredString("name", request.Name)
	if err != nil {
		return UpsertInput{}, err
	}

	category, err := requiredString("category", request.Category)
	if err != nil {
		return UpsertInput{}, err
	}

	if len(request.Price) == 0 || string(request.Price) == "null" {
		return UpsertInput{}, newValidationError("price", "price is required")
	}

	// decimal acepta número JSON o string numérico ("99.99").
	var price decimal.Decimal
	if err := price.UnmarshalJSON(request.Price); err != nil {
		return UpsertInput{}, newValidationError("price", "price must be a number")
	}
	if price.IsNegative() {
		return UpsertInput{}, newValidationError("price", "price cannot be negative")
	}

	return UpsertInput{Name: name, Category: category, Price: price}, nil
}

// ValidateRangedQuery aplica las reglas de la consulta por rango.
// Regla de fechas: cada límite es opcional por separado; si vienen los
// dos, dt_from debe ser <= dt_to. category presente pero vacía se
// rechaza (distinto de omitida o null).
func ValidateRangedQuery(request RangedQueryRequest) (RangedQueryInput, error) {
	dtFrom, err := optionalDate("dt_from", request.DtFrom)
	if err != nil {
		return RangedQueryInput{}, err
	}

	dtTo, err := optionalDate("dt_to", request.DtTo)
	if err != nil {
		return RangedQueryInput{}, err
	}

	if dtFrom != nil && dtTo != nil && dtFrom.After(*dtTo) {
		return RangedQueryInput{}, newValidationError("dt_from", "dt_from must be before dt_to")
	}

	category, err := optionalString("category", request.Category)
	if err != nil {
		return RangedQueryInput{}, err
	}

	return RangedQueryInput{DtFrom: dtFrom, DtTo: dtTo, Category: category}, nil
}

// ValidateAdvancedQuery aplica las reglas de la consulta avanzada:
// las tres secciones son obligatorias, price_range es un par ascendente,
// sort está restringido al conjunto enumerado y la paginación es positiva.
func ValidateAdvancedQuery(request AdvancedQueryRequest) (AdvancedQueryInput, error) {
	if request.Filters == nil {
		return AdvancedQueryInput{}, newValidationError("filters", "filters is required")
	}
	if request.Pagination == nil {
		return AdvancedQueryInput{}, newValidationError("pagination", "pagination is required")
	}
	if request.Sort == nil {
		return AdvancedQueryInput{}, newValidationError("sort", "sort is required")
	}

	name, err := optionalString("filters.name", request.Filters.Name)
	if err != nil {
		return AdvancedQueryInput{}, err
	}

	category, err := optionalString("filters.category", request.Filters.Category)
	if err != nil {
		return AdvancedQueryInput{}, err
	}

	if len(request.Filters.PriceRange) != 2 {
		return AdvancedQueryInput{}, newValidationError("filters.price_range", "price_range must have exactly two elements")
	}

	// Normalizamos a dos decimales antes de comparar: el storage es
	// decimal-estable y el rango tiene que compararse igual.
	priceMin := request.Filters.PriceRange[0].Round(2)
	priceMax := request.Filters.PriceRange[1].Round(2)
	if priceMin.GreaterThan(priceMax) {
		return AdvancedQueryInput{}, newValidationError("filters.price_range", "price_range must be ascending")
	}

	switch request.Sort.Field {
	case SortByName, SortByCategory, SortByPrice:
	default:
		return AdvancedQueryInput{}, newValidationError("sort.field", "sort field must be one of: name, category, price")
	}

	switch request.Sort.Order {
	case OrderAsc, OrderDesc:
	default:
		return AdvancedQueryInput{}, newValidationError("sort.order", "sort order must be asc or desc")
	}

	if request.Pagination.Page < 1 {
		return AdvancedQueryInput{}, newValidationError("pagination.page", "page must be a positive integer")
	}
	if request.Pagination.Limit < 1 {
		return AdvancedQueryInput{}, newValidationError("pagination.limit", "limit must be a positive integer")
	}

	return AdvancedQueryInput{
		Name:      name,
		Category:  category,
		PriceMin:  priceMin,
		PriceMax:  priceMax,
		Page:      request.Pagination.Page,
		Limit:     request.Pagination.Limit,
		SortField: request.Sort.Field,
		SortOrder: request.Sort.Order,
	}, nil
}

// requiredString exige presencia y contenido no vacío.
func requiredString(field string, value *string) (string, error) {
	if value == nil {
		return "", newValidationError(field, field+" is required")
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "", newValidationError(field, field+" cannot be empty")
	}
	return trimmed, nil
}

// optionalString distingue "ausente" (nil, sin filtro) de "vacío"
// (string vacío presente, rechazado).
func optionalString(field string, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, newValidationError(field, field+" cannot be an empty string; send null or omit the key")
	}
	return &trimmed, nil
}

// optionalDate parsea una fecha opcional probando los formatos admitidos.
func optionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*value)
	if raw == "" {
		return nil, newValidationError(field, field+" cannot be an empty string; send null or omit the key")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, newValidationError(field, field+" is not a valid datetime")
}
