package catalog

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Traductor de consultas: mapea un pedido validado a un template SQL y
// una secuencia ordenada de parámetros. Nunca se interpola dato del
// usuario en el SQL; el único identificador interpolado es el nombre de
// la tabla, que viene de configuración confiable.

// Fechas centinela para los límites abiertos del rango temporal.
const (
	sentinelMinDate = "1000-01-01"
	sentinelMaxDate = "9999-12-31"
)

// Plan es un template con sus parámetros ya ligados en orden.
type Plan struct {
	SQL  string
	Args []any
}

// Translator arma los planes contra una tabla fija.
type Translator struct {
	table string
}

// NewTranslator crea un traductor para la tabla dada.
// El identificador se escapa una sola vez acá.
func NewTranslator(table string) *Translator {
	return &Translator{table: pgx.Identifier{table}.Sanitize()}
}

// Upsert devuelve el par de planes del insert-or-update: un único
// statement atómico (sin read-then-write, el conflicto lo resuelve la
// DB) y el lookup posterior del id por name. En el conflicto se pisa
// price y se refresca last_updated; category queda como estaba.
func (translator *Translator) Upsert(input UpsertInput) (upsert Plan, lookup Plan) {
	upsertSQL := fmt.Sprintf(`
		INSERT INTO %s (name, category, price)
		VALUES ($1, $2, $3::numeric)
		ON CONFLICT (name) DO UPDATE SET
			price = EXCLUDED.price,
			last_updated = NOW();
	`, translator.table)

	lookupSQL := fmt.Sprintf(`
		SELECT id FROM %s WHERE name = $1;
	`, translator.table)

	// Precio formateado a exactamente dos decimales antes de ligar:
	// así storage y comparaciones quedan decimal-estables.
	upsert = Plan{
		SQL:  upsertSQL,
		Args: []any{input.Name, input.Category, input.Price.StringFixed(2)},
	}
	lookup = Plan{
		SQL:  lookupSQL,
		Args: []any{input.Name},
	}
	return upsert, lookup
}

// Ranged devuelve el plan de la consulta por ventana temporal con
// categoría opcional. El patrón "match-or-null" liga la categoría dos
// veces (comparación + chequeo de null) para que el mismo template
// exprese "sin filtro" sin ramas.
func (translator *Translator) Ranged(input RangedQueryInput) Plan {
	querySQL := fmt.Sprintf(`
		SELECT id, name, category, price::text
		FROM %s
		WHERE
			last_updated BETWEEN
				COALESCE($1::timestamptz, '%s') AND
				COALESCE($2::timestamptz, '%s')
			AND (category = $3 OR $4::text IS NULL);
	`, translator.table, sentinelMinDate, sentinelMaxDate)

	return Plan{
		SQL:  querySQL,
		Args: []any{input.DtFrom, input.DtTo, input.Category, input.Category},
	}
}

// Advanced devuelve el plan de la consulta avanzada: filtros opcionales
// por name/category, rango de precio obligatorio, orden y paginación.
//
// El ORDER BY usa una clave compuesta de tres términos CASE, uno por
// campo ordenable, que se activan solo cuando coinciden con el campo
// pedido; un solo template sirve para los tres sin armar SQL por campo.
// El precio (numérico) se ordena multiplicando por +1/-1 con un único
// ASC; los dos campos de texto usan la palabra clave ASC/DESC elegida
// entre dos constantes, nunca texto del request.
func (translator *Translator) Advanced(input AdvancedQueryInput) Plan {
	sign := "1"
	direction := "ASC"
	if input.SortOrder == OrderDesc {
		sign = "-1"
		direction = "DESC"
	}

	querySQL := fmt.Sprintf(`
		SELECT id, name, category, price::text
		FROM %s
		WHERE
			($1::text IS NULL OR name = $2)
			AND ($3::text IS NULL OR category = $4)
			AND price BETWEEN $5::numeric AND $6::numeric
		ORDER BY
			CASE WHEN $7::text = 'price' THEN price END * %s,
			CASE WHEN $8::text = 'category' THEN category END %s,
			CASE WHEN $9::text = 'name' THEN name END %s
		LIMIT $10 OFFSET $11;
	`, translator.table, sign, direction, direction)

	return Plan{
		SQL: querySQL,
		Args: []any{
			input.Name, input.Name,
			input.Category, input.Category,
			input.PriceMin.StringFixed(2), input.PriceMax.StringFixed(2),
			input.SortField, input.SortField, input.SortField,
			input.Limit, input.Offset(),
		},
	}
}
