package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hugohenrick/billing-dashboard/internal/config"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

var version = "1.0.0"

var (
	cfg *config.Config
	log = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "billingctl",
	Short: "billingctl - ferramentas de linha de comando do billing dashboard",
	Long: `billingctl reúne tarefas administrativas do billing dashboard:
emitir tokens de acesso, gerar o documento de uma fatura e aplicar
as migrações do banco de dados.

A configuração vem das mesmas variáveis de ambiente da API
(arquivo .env opcional).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && cmd.Flags().Changed("env-file") {
			return fmt.Errorf("erro ao carregar %s: %w", envFile, err)
		}

		cfg = config.FromEnv()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.LogLevel = "debug"
		}
		cfg.LogOutput = "stderr"

		l, err := logger.Setup(cfg.LoggerConfig())
		if err != nil {
			return err
		}
		log = l.With("component", "billingctl")
		return nil
	},
}

// Execute executa o comando raiz
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("falha na execução do comando", "error", err)
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "arquivo de variáveis de ambiente")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log detalhado")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(migrateCmd)
}
