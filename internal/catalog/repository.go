package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB define lo que el repositorio necesita de la conexión.
// Lo implementa *pgxpool.Pool; en tests se cubre con un fake.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository es el agente de ejecución: corre los planes del traductor
// contra la DB y devuelve filas crudas. Es la única etapa con estado e
// I/O; toda falla del store se envuelve en StoreError.
type Repository struct {
	database   DB
	translator *Translator
}

// NewRepository crea un repositorio sobre la tabla dada.
func NewRepository(database DB, table string) *Repository {
	return &Repository{
		database:   database,
		translator: NewTranslator(table),
	}
}

// Upsert ejecuta el insert-or-update y devuelve el id del item,
// buscándolo por name después del commit. Bajo contención alta el
// lookup puede observar la fila de otro writer concurrente sobre el
// mismo name; modelo de consistencia aceptado con conexiones
// independientes por request.
func (repository *Repository) Upsert(ctx context.Context, input UpsertInput) (int64, error) {
	upsert, lookup := repository.translator.Upsert(input)

	if _, err := repository.database.Exec(ctx, upsert.SQL, upsert.Args...); err != nil {
		return 0, &StoreError{Err: err}
	}

	var id int64
	if err := repository.database.QueryRow(ctx, lookup.SQL, lookup.Args...).Scan(&id); err != nil {
		return 0, &StoreError{Err: err}
	}

	return id, nil
}

// Ranged ejecuta la consulta por ventana temporal.
func (repository *Repository) Ranged(ctx context.Context, input RangedQueryInput) ([]ItemRow, error) {
	plan := repository.translator.Ranged(input)
	return repository.queryRows(ctx, plan)
}

// Advanced ejecuta la consulta avanzada con orden y paginación.
func (repository *Repository) Advanced(ctx context.Context, input AdvancedQueryInput) ([]ItemRow, error) {
	plan := repository.translator.Advanced(input)
	return repository.queryRows(ctx, plan)
}

// queryRows corre un plan de lectura y escanea todas las filas.
// rows se cierra en todo camino de salida.
func (repository *Repository) queryRows(ctx context.Context, plan Plan) ([]ItemRow, error) {
	rows, err := repository.database.Query(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	defer rows.Close()

	results := []ItemRow{}
	for rows.Next() {
		var row ItemRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Category, &row.Price); err != nil {
			return nil, &StoreError{Err: err}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &StoreError{Err: err}
	}

	return results, nil
}
