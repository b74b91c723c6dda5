package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor define lo que el provisioner necesita de la conexión.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// DDL idempotente de la tabla del catálogo. El identificador se
// interpola solo desde configuración confiable, ya escapado.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS %s (
	id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	category     TEXT NOT NULL,
	price        NUMERIC(10,2) NOT NULL,
	last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Provisioner garantiza que la tabla exista antes del primer uso.
// El aprovisionamiento corre una sola vez por proceso, en el arranque,
// no en cada request.
type Provisioner struct {
	database Executor
	table    string

	once sync.Once
	err  error
}

// NewProvisioner crea un provisioner para la tabla dada.
func NewProvisioner(database Executor, table string) *Provisioner {
	return &Provisioner{database: database, table: table}
}

// Ensure ejecuta el DDL idempotente la primera vez que se llama;
// las llamadas siguientes devuelven el resultado memorizado.
func (provisioner *Provisioner) Ensure(ctx context.Context) error {
	provisioner.once.Do(func() {
		ddl := fmt.Sprintf(schemaDDL, pgx.Identifier{provisioner.table}.Sanitize())
		_, provisioner.err = provisioner.database.Exec(ctx, ddl)
	})
	return provisioner.err
}
