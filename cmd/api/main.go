package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/billing-dashboard/internal/config"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

func main() {
	// Carregar configuração (.env é opcional)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	appLogger, err := logger.Setup(cfg.LoggerConfig())
	if err != nil {
		log.Fatalf("Erro ao configurar logger: %v", err)
	}

	// Valores monetários saem como números no JSON
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("erro ao iniciar aplicação", "error", err)
		log.Fatalf("Erro ao iniciar aplicação: %v", err)
	}
	defer app.Close()

	if err := app.Start(ctx); err != nil {
		appLogger.Error("servidor encerrado com erro", "error", err)
		log.Fatalf("Erro no servidor: %v", err)
	}
}
