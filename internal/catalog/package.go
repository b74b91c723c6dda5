package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Empaquetador de resultados: reacomoda filas crudas (precio string) en
// la lista tipada de la respuesta y calcula los agregados derivados.
// El precio se parsea a float recién en este borde de salida.

// PackageUpsert arma la respuesta del upsert.
func PackageUpsert(id int64) UpsertResult {
	return UpsertResult{ID: id}
}

// PackageRanged arma la respuesta de la consulta por rango con
// total_price: la suma decimal de los precios devueltos, redondeada a
// dos decimales. Una lista vacía suma 0.
func PackageRanged(rows []ItemRow) (RangedQueryResult, error) {
	items := make([]ItemOut, 0, len(rows))
	total := decimal.Zero

	for _, row := range rows {
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return RangedQueryResult{}, fmt.Errorf("malformed price %q for item %d: %w", row.Price, row.ID, err)
		}
		total = total.Add(price)
		items = append(items, ItemOut{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Price:    price.InexactFloat64(),
		})
	}

	return RangedQueryResult{
		Items:      items,
		TotalPrice: total.Round(2).InexactFloat64(),
	}, nil
}

// PackageAdvanced arma la respuesta de la consulta avanzada: los items,
// el count (largo de la página devuelta, no el total de filas que
// matchean) y el page/limit del request, ecoados tal cual.
func PackageAdvanced(rows []ItemRow, input AdvancedQueryInput) (AdvancedQueryResult, error) {
	items := make([]ItemOut, 0, len(rows))

	for _, row := range rows {
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return AdvancedQueryResult{}, fmt.Errorf("malformed price %q for item %d: %w", row.Price, row.ID, err)
		}
		items = append(items, ItemOut{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Price:    price.InexactFloat64(),
		})
	}

	return AdvancedQueryResult{
		Items: items,
		Count: len(items),
		Page:  input.Page,
		Limit: input.Limit,
	}, nil
}
