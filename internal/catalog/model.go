package catalog

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ItemRow es un registro tal como sale de la DB.
// Price viaja como string exacto (DB: numeric(10,2)) para evitar
// errores de precisión con float en comparaciones y almacenamiento.
type ItemRow struct {
	ID       int64
	Name     string
	Category string
	Price    string
}

// ItemOut es la forma del item en la respuesta.
// Recién acá el precio se convierte a float: el contrato externo
// expone números comunes.
type ItemOut struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// UpsertRequest es el payload crudo de POST /items/upsert.
// Price queda como RawMessage: acepta número o string numérico,
// y el validador decide si es coercible.
type UpsertRequest struct {
	Name     *string         `json:"name"`
	Category *string         `json:"category"`
	Price    json.RawMessage `json:"price"`
}

// UpsertInput es el upsert ya validado.
type UpsertInput struct {
	Name     string
	Category string
	Price    decimal.Decimal
}

// RangedQueryRequest es el payload crudo de POST /items/query.
// Las fechas llegan como string para poder devolver un error de
// validación con campo en lugar de un error genérico de JSON.
type RangedQueryRequest struct {
	DtFrom   *string `json:"dt_from"`
	DtTo     *string `json:"dt_to"`
	Category *string `json:"category"`
}

// RangedQueryInput es la consulta por rango ya validada.
// Los punteros nil representan "sin filtro".
type RangedQueryInput struct {
	DtFrom   *time.Time
	DtTo     *time.Time
	Category *string
}

// AdvancedQueryRequest es el payload crudo de POST /items/query/advanced.
type AdvancedQueryRequest struct {
	Filters    *AdvancedFilters `json:"filters"`
	Pagination *PageSpec        `json:"pagination"`
	Sort       *SortSpec        `json:"sort"`
}

// AdvancedFilters agrupa los filtros de la consulta avanzada.
type AdvancedFilters struct {
	Name       *string           `json:"name"`
	Category   *string           `json:"category"`
	PriceRange []decimal.Decimal `json:"price_range"`
}

// PageSpec es la paginación pedida por el cliente.
type PageSpec struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// SortSpec es el ordenamiento pedido por el cliente.
type SortSpec struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Campos y órdenes admitidos por SortSpec.
const (
	SortByName     = "name"
	SortByCategory = "category"
	SortByPrice    = "price"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// AdvancedQueryInput es la consulta avanzada ya validada.
// El rango de precios viene normalizado a dos decimales.
type AdvancedQueryInput struct {
	Name      *string
	Category  *string
	PriceMin  decimal.Decimal
	PriceMax  decimal.Decimal
	Page      int
	Limit     int
	SortField string
	SortOrder string
}

// Offset deriva el corrimiento de la página pedida: (page-1) * limit.
func (input AdvancedQueryInput) Offset() int {
	return (input.Page - 1) * input.Limit
}

// UpsertResult es la respuesta del upsert.
type UpsertResult struct {
	ID int64 `json:"id"`
}

// RangedQueryResult es la respuesta de la consulta por rango.
type RangedQueryResult struct {
	Items      []ItemOut `json:"items"`
	TotalPrice float64   `json:"total_price"`
}

// AdvancedQueryResult es la respuesta de la consulta avanzada.
// Count es el largo de la página devuelta, no el total de filas.
type AdvancedQueryResult struct {
	Items []ItemOut `json:"items"`
	Count int       `json:"count"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
