package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func RunMigrations(dsn string, migrationsPath string) error {
	if dsn == "" {
		return errors.New("el DSN de migraciones no puede estar vacío")
	}
	if migrationsPath == "" {
		return errors.New("la ruta de los archivos de migración no puede estar vacía")
	}

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("no se pudo crear el migrador: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("error al ejecutar las migraciones: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("error al consultar la versión de migraciones: %w", err)
	}
	if dirty {
		return fmt.Errorf("migración sucia en la versión %d, corrija manualmente", version)
	}

	return nil
}
