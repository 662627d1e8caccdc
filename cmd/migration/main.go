package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/billing-dashboard/internal/config"
	"github.com/hugohenrick/billing-dashboard/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	down := flag.Bool("down", false, "reverte as migrações em vez de aplicá-las")
	path := flag.String("path", "", "diretório das migrações (padrão: migrações embutidas)")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg := config.FromEnv()
	if *path == "" {
		*path = cfg.MigrationsPath
	}

	direction := database.Up
	if *down {
		direction = database.Down
	}

	dbURL := cfg.PostgresURL()
	if err := database.RunMigrations(dbURL, *path, direction); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	version, dirty, err := database.MigrationVersion(dbURL, *path)
	if err != nil {
		log.Fatalf("Erro ao consultar versão das migrações: %v", err)
	}

	log.Printf("Migrações executadas com sucesso! Versão: %d (dirty: %t)", version, dirty)
}
