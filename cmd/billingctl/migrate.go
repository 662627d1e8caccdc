package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugohenrick/billing-dashboard/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|version]",
	Short:     "Aplica, reverte ou consulta as migrações do PostgreSQL",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().String("path", "", "diretório das migrações (padrão: embutidas)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = cfg.MigrationsPath
	}
	dbURL := cfg.PostgresURL()

	if args[0] != "version" {
		direction := database.Direction(args[0])
		if err := database.RunMigrations(dbURL, path, direction); err != nil {
			return err
		}
		log.Info("migrações executadas", "direction", args[0])
	}

	version, dirty, err := database.MigrationVersion(dbURL, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "versão: %d (dirty: %t)\n", version, dirty)
	return nil
}
