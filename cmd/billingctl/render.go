package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/repository"
	"github.com/hugohenrick/billing-dashboard/internal/adapter/repository/memory"
	"github.com/hugohenrick/billing-dashboard/internal/config"
	"github.com/hugohenrick/billing-dashboard/internal/infrastructure/database"
	"github.com/hugohenrick/billing-dashboard/internal/render"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

var renderCmd = &cobra.Command{
	Use:   "render [invoice-id]",
	Short: "Gera o documento de uma fatura em HTML ou PDF",
	Long: `Gera o documento imprimível de uma fatura. Com STORE_DRIVER=postgres
a fatura é lida do banco (use --owner); caso contrário são usados os
dados de demonstração em memória.

O documento depende apenas dos dados da fatura: gerar duas vezes a
mesma fatura produz o mesmo arquivo.`,
	Example: `  # HTML da fatura de demonstração INV-001 no stdout
  billingctl render inv1

  # PDF salvo em arquivo
  billingctl render inv1 --format pdf -o INV-001.pdf

  # Fatura do banco
  STORE_DRIVER=postgres billingctl render 6f1c... --owner user-1 --format pdf -o out.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("owner", "", "dono da fatura (PostgreSQL)")
	renderCmd.Flags().StringP("format", "f", render.FormatHTML, "formato do documento (html ou pdf)")
	renderCmd.Flags().StringP("output", "o", "", "arquivo de saída (padrão: stdout)")
	renderCmd.Flags().Int("timeout", 30, "tempo máximo em segundos")
}

func runRender(cmd *cobra.Command, args []string) error {
	ownerID, _ := cmd.Flags().GetString("owner")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	timeout, _ := cmd.Flags().GetInt("timeout")

	renderer, err := render.ForFormat(format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()
	if ownerID != "" {
		ctx = owner.WithOwner(ctx, ownerID)
	}

	src, closeStore, err := openSources(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	in, err := render.LoadInput(ctx, src, args[0])
	if err != nil {
		return fmt.Errorf("erro ao carregar fatura %s: %w", args[0], err)
	}

	out, err := renderer.Render(in)
	if err != nil {
		return fmt.Errorf("erro ao gerar documento: %w", err)
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("erro ao salvar %s: %w", output, err)
	}

	log.Info("documento gerado",
		"invoice", in.Invoice.Number,
		"format", renderer.Extension()[1:],
		"bytes", len(out),
		"output", output,
	)
	return nil
}

// openSources abre o armazenamento configurado em STORE_DRIVER
func openSources(ctx context.Context) (render.Sources, func(), error) {
	if cfg.StoreDriver != config.StorePostgres {
		store := memory.NewSeededStore()
		return render.Sources{
			Invoices: store.Invoices(),
			Clients:  store.Clients(),
			Payments: store.Payments(),
			Profile:  store.Profile(),
		}, func() {}, nil
	}

	pool, err := database.NewPostgresDB(ctx, database.PostgresConfig{
		URL:            cfg.PostgresURL(),
		MaxConnections: 2,
		MinConnections: 1,
	})
	if err != nil {
		return render.Sources{}, nil, err
	}

	repos := repository.NewRepositories(pool)
	return render.Sources{
		Invoices: repos.Invoices,
		Clients:  repos.Clients,
		Payments: repos.Payments,
		Profile:  repos.Profile,
	}, pool.Close, nil
}
