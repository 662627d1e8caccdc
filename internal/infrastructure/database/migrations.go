package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/hugohenrick/billing-dashboard/migrations"
)

// Direction indica o sentido da migração
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ErrUnknownDirection ocorre quando a direção não é up nem down
var ErrUnknownDirection = errors.New("direção de migração desconhecida")

// RunMigrations aplica (ou reverte) as migrações do esquema. Com path vazio usa
// os arquivos embutidos no binário.
func RunMigrations(dbURL, path string, direction Direction) error {
	m, err := newMigrate(dbURL, path)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirection, direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações (%s): %w", direction, err)
	}
	return nil
}

// MigrationVersion retorna a versão atual do esquema
func MigrationVersion(dbURL, path string) (uint, bool, error) {
	m, err := newMigrate(dbURL, path)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("erro ao consultar versão: %w", err)
	}
	return version, dirty, nil
}

func newMigrate(dbURL, path string) (*migrate.Migrate, error) {
	if path != "" {
		sourceURL := path
		if !strings.HasPrefix(sourceURL, "file://") {
			sourceURL = "file://" + sourceURL
		}
		m, err := migrate.New(sourceURL, dbURL)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar migrate: %w", err)
		}
		return m, nil
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir migrações embutidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar migrate: %w", err)
	}
	return m, nil
}
