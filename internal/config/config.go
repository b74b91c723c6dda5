package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port         string
	DatabaseURL  string
	LogLevel     string
	CatalogTable string
}

// El nombre de la tabla es el único identificador que se interpola en
// SQL; aunque venga de configuración confiable lo restringimos a un
// identificador simple.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Load lee variables de entorno (con soporte .env opcional) y valida
// lo mínimo indispensable.
func Load() (Config, error) {
	// Si no hay .env seguimos con el entorno del proceso.
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	// Normalizamos por si alguien manda ":8080"
	port = strings.TrimPrefix(port, ":")

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	logLevel := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	catalogTable := strings.TrimSpace(os.Getenv("CATALOG_TABLE"))
	if catalogTable == "" {
		catalogTable = "catalog_items"
	}
	if !tableNamePattern.MatchString(catalogTable) {
		return Config{}, fmt.Errorf("invalid CATALOG_TABLE: %q", catalogTable)
	}

	return Config{
		Port:         port,
		DatabaseURL:  databaseURL,
		LogLevel:     logLevel,
		CatalogTable: catalogTable,
	}, nil
}
